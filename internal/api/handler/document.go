package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quantive/kb-catalog/internal/api/response"
	"github.com/quantive/kb-catalog/internal/domain"
	"github.com/quantive/kb-catalog/internal/service"
)

// DocumentHandler handles document catalog endpoints
type DocumentHandler struct {
	catalog  *service.CatalogService
	deletion *service.DeletionService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(catalog *service.CatalogService, deletion *service.DeletionService) *DocumentHandler {
	return &DocumentHandler{catalog: catalog, deletion: deletion}
}

type textDocumentRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type qnaDocumentRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type websiteDocumentRequest struct {
	Sitemap      bool     `json:"sitemap"`
	Address      string   `json:"address" validate:"required"`
	FollowLinks  bool     `json:"followLinks"`
	Limit        int      `json:"limit"`
	ContentTypes []string `json:"contentTypes"`
}

type rssFeedDocumentRequest struct {
	Address      string   `json:"address" validate:"required"`
	Title        string   `json:"title"`
	FollowLinks  bool     `json:"followLinks"`
	Limit        int      `json:"limit"`
	ContentTypes []string `json:"contentTypes"`
}

type rssFeedUpdateRequest struct {
	DocumentType string   `json:"documentType" validate:"required"`
	FollowLinks  bool     `json:"followLinks"`
	Limit        int      `json:"limit"`
	ContentTypes []string `json:"contentTypes"`
}

// createdResponse is the public create contract: just the identifiers.
type createdResponse struct {
	WorkspaceID string `json:"workspaceId"`
	DocumentID  string `json:"documentId"`
}

// AddText handles text document creation
func (h *DocumentHandler) AddText(w http.ResponseWriter, r *http.Request) {
	var req textDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	doc, err := h.catalog.CreateDocument(r.Context(), domain.DocumentCreate{
		WorkspaceID:  chi.URLParam(r, "workspaceID"),
		DocumentType: domain.DocumentTypeText,
		Title:        req.Title,
		Content:      req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, createdResponse{WorkspaceID: doc.WorkspaceID, DocumentID: doc.DocumentID})
}

// AddQnA handles question/answer document creation. The question doubles as
// title and content, the answer is the content complement.
func (h *DocumentHandler) AddQnA(w http.ResponseWriter, r *http.Request) {
	var req qnaDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	doc, err := h.catalog.CreateDocument(r.Context(), domain.DocumentCreate{
		WorkspaceID:       chi.URLParam(r, "workspaceID"),
		DocumentType:      domain.DocumentTypeQnA,
		Title:             req.Question,
		Content:           req.Question,
		ContentComplement: req.Answer,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, createdResponse{WorkspaceID: doc.WorkspaceID, DocumentID: doc.DocumentID})
}

// AddWebsite handles website document creation
func (h *DocumentHandler) AddWebsite(w http.ResponseWriter, r *http.Request) {
	var req websiteDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	subType := ""
	if req.Sitemap {
		subType = domain.SubTypeSitemap
	}

	doc, err := h.catalog.CreateDocument(r.Context(), domain.DocumentCreate{
		WorkspaceID:     chi.URLParam(r, "workspaceID"),
		DocumentType:    domain.DocumentTypeWebsite,
		DocumentSubType: subType,
		Path:            req.Address,
		CrawlerProperties: &domain.CrawlerProperties{
			FollowLinks:  req.FollowLinks,
			Limit:        req.Limit,
			ContentTypes: req.ContentTypes,
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, createdResponse{WorkspaceID: doc.WorkspaceID, DocumentID: doc.DocumentID})
}

// AddRSSFeed handles rss feed document creation
func (h *DocumentHandler) AddRSSFeed(w http.ResponseWriter, r *http.Request) {
	var req rssFeedDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	doc, err := h.catalog.CreateDocument(r.Context(), domain.DocumentCreate{
		WorkspaceID:  chi.URLParam(r, "workspaceID"),
		DocumentType: domain.DocumentTypeRSSFeed,
		Title:        req.Title,
		Path:         req.Address,
		CrawlerProperties: &domain.CrawlerProperties{
			FollowLinks:  req.FollowLinks,
			Limit:        req.Limit,
			ContentTypes: req.ContentTypes,
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, createdResponse{WorkspaceID: doc.WorkspaceID, DocumentID: doc.DocumentID})
}

// List handles paginated document listing by type
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docType := r.URL.Query().Get("documentType")
	if docType == "" {
		response.BadRequest(w, "documentType is required")
		return
	}

	page, err := h.catalog.ListDocuments(
		r.Context(),
		chi.URLParam(r, "workspaceID"),
		domain.DocumentType(docType),
		r.URL.Query().Get("lastDocumentId"),
		"",
	)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, page)
}

// ListRSSPosts lists the rsspost documents belonging to one feed
func (h *DocumentHandler) ListRSSPosts(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.ListDocuments(
		r.Context(),
		chi.URLParam(r, "workspaceID"),
		domain.DocumentTypeRSSPost,
		r.URL.Query().Get("lastDocumentId"),
		chi.URLParam(r, "documentID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, page)
}

// Get handles a point document lookup
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.catalog.GetDocument(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "documentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if doc == nil {
		response.NotFound(w, "document not found")
		return
	}

	response.OK(w, doc)
}

// Update handles rss feed crawl setting updates
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req rssFeedUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	docType, ok := domain.ParseDocumentType(req.DocumentType)
	if !ok {
		response.BadRequest(w, "unknown document type: "+req.DocumentType)
		return
	}

	doc, err := h.catalog.UpdateDocument(
		r.Context(),
		chi.URLParam(r, "workspaceID"),
		chi.URLParam(r, "documentID"),
		docType,
		&domain.CrawlerProperties{
			FollowLinks:  req.FollowLinks,
			Limit:        req.Limit,
			ContentTypes: req.ContentTypes,
		},
	)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, doc)
}

// Delete handles single document deletion
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.deletion.DeleteDocument(r.Context(), chi.URLParam(r, "workspaceID"), chi.URLParam(r, "documentID"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

// DeleteWorkspace handles workspace-wide deletion
func (h *DocumentHandler) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	err := h.deletion.DeleteWorkspace(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}
