package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/quantive/kb-catalog/internal/domain"
	"github.com/rs/zerolog/log"
)

// Caps applied to free-form input at creation time, matching the public
// contract. Oversized input is truncated, not rejected.
const (
	maxTitleLen      = 1000
	maxContentLen    = 10000
	maxComplementLen = 1000
	maxAddressLen    = 10000
)

// DocumentCache is the read-through cache in front of the metadata store.
type DocumentCache interface {
	Get(ctx context.Context, workspaceID, documentID string) (*domain.Document, error)
	Set(ctx context.Context, doc *domain.Document) error
	Invalidate(ctx context.Context, workspaceID, documentID string) error
	InvalidateWorkspace(ctx context.Context, workspaceID string) (int64, error)
}

// CatalogService owns the document data model: creation, lookup, listing and
// field updates. Deletion is delegated to the DeletionService.
type CatalogService struct {
	docRepo          domain.DocumentRepository
	wsRepo           domain.WorkspaceRepository
	cache            DocumentCache
	objects          domain.ObjectStore
	processingBucket string
	pageSize         int
}

// NewCatalogService creates a new catalog service
func NewCatalogService(docRepo domain.DocumentRepository, wsRepo domain.WorkspaceRepository, cache DocumentCache, objects domain.ObjectStore, processingBucket string, pageSize int) *CatalogService {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &CatalogService{
		docRepo:          docRepo,
		wsRepo:           wsRepo,
		cache:            cache,
		objects:          objects,
		processingBucket: processingBucket,
		pageSize:         pageSize,
	}
}

// truncate trims and caps by character count, never splitting a multi-byte
// rune at the boundary.
func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// CreateDocument validates per-type required fields, generates the document
// id and persists the record in the initial pending state.
func (s *CatalogService) CreateDocument(ctx context.Context, input domain.DocumentCreate) (*domain.Document, error) {
	input.Title = truncate(input.Title, maxTitleLen)
	input.Content = truncate(input.Content, maxContentLen)
	input.ContentComplement = truncate(input.ContentComplement, maxComplementLen)
	input.Path = truncate(input.Path, maxAddressLen)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.CrawlerProperties != nil {
		input.CrawlerProperties.Limit = domain.ClampCrawlerLimit(input.CrawlerProperties.Limit)
	}

	ws, err := s.wsRepo.Get(ctx, input.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if ws == nil {
		return nil, &domain.NotFoundError{Resource: "workspace", WorkspaceID: input.WorkspaceID}
	}

	now := time.Now().UTC()
	status := domain.StatusSubmitted
	if input.DocumentType == domain.DocumentTypeRSSFeed {
		// Feeds are born with an active subscription; the crawler picks them
		// up from this state.
		status = domain.StatusEnabled
	}

	doc := &domain.Document{
		WorkspaceID:       input.WorkspaceID,
		DocumentID:        uuid.NewString(),
		DocumentType:      input.DocumentType,
		DocumentSubType:   input.DocumentSubType,
		Status:            status,
		Title:             input.Title,
		Path:              input.Path,
		CrawlerProperties: input.CrawlerProperties,
		RSSFeedID:         input.RSSFeedID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.docRepo.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	// The record goes first so an interrupted creation is discoverable; the
	// content blob is written under the record's processing prefix where the
	// ingestion pipeline picks it up.
	if err := s.storeContent(ctx, doc, input); err != nil {
		return nil, fmt.Errorf("failed to store document content: %w", err)
	}

	log.Info().
		Str("workspace_id", doc.WorkspaceID).
		Str("document_id", doc.DocumentID).
		Str("document_type", string(doc.DocumentType)).
		Msg("Document created")

	return doc, nil
}

// storeContent writes inline content to the processing store. Only text and
// qna documents carry content at creation time; crawled types are fetched by
// the pipeline.
func (s *CatalogService) storeContent(ctx context.Context, doc *domain.Document, input domain.DocumentCreate) error {
	prefix := doc.WorkspaceID + "/" + doc.DocumentID

	switch doc.DocumentType {
	case domain.DocumentTypeText:
		return s.objects.PutObject(ctx, s.processingBucket, prefix+"/content.txt", []byte(input.Content), "text/plain")
	case domain.DocumentTypeQnA:
		payload, err := json.Marshal(map[string]string{
			"question": input.Content,
			"answer":   input.ContentComplement,
		})
		if err != nil {
			return err
		}
		return s.objects.PutObject(ctx, s.processingBucket, prefix+"/content.json", payload, "application/json")
	default:
		return nil
	}
}

// GetDocument is a point lookup. Returns (nil, nil) when no such document
// exists; callers distinguish that from transport errors.
func (s *CatalogService) GetDocument(ctx context.Context, workspaceID, documentID string) (*domain.Document, error) {
	if cached, err := s.cache.Get(ctx, workspaceID, documentID); err == nil && cached != nil {
		return cached, nil
	}

	doc, err := s.docRepo.Get(ctx, workspaceID, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	if err := s.cache.Set(ctx, doc); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Str("document_id", documentID).Msg("Failed to cache document")
	}

	return doc, nil
}

// ListDocuments returns one page of documents of a type, resuming after the
// exclusive cursor. ParentID narrows rsspost listings to one feed.
func (s *CatalogService) ListDocuments(ctx context.Context, workspaceID string, docType domain.DocumentType, lastDocumentID, parentID string) (*domain.DocumentPage, error) {
	if _, ok := domain.ParseDocumentType(string(docType)); !ok {
		return nil, domain.NewValidationError("unknown document type: %s", docType)
	}

	page, err := s.docRepo.Query(ctx, domain.DocumentQuery{
		WorkspaceID:    workspaceID,
		DocumentType:   docType,
		LastDocumentID: lastDocumentID,
		ParentID:       parentID,
		PageSize:       s.pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return page, nil
}

// UpdateDocument updates the declared fields of a document of the given
// type. Only rssfeed documents expose updatable crawl settings.
func (s *CatalogService) UpdateDocument(ctx context.Context, workspaceID, documentID string, docType domain.DocumentType, props *domain.CrawlerProperties) (*domain.Document, error) {
	doc, err := s.docRepo.Get(ctx, workspaceID, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if doc == nil {
		return nil, &domain.NotFoundError{Resource: "document", WorkspaceID: workspaceID, DocumentID: documentID}
	}
	if doc.DocumentType != docType {
		return nil, &domain.TypeMismatchError{
			WorkspaceID: workspaceID,
			DocumentID:  documentID,
			Want:        docType,
			Got:         doc.DocumentType,
		}
	}

	if docType != domain.DocumentTypeRSSFeed {
		return nil, domain.NewValidationError("%s documents have no updatable fields", docType)
	}
	if props == nil {
		return nil, domain.NewValidationError("crawler properties are required")
	}

	props.Limit = domain.ClampCrawlerLimit(props.Limit)
	now := time.Now().UTC()
	if err := s.docRepo.SetCrawlerProperties(ctx, workspaceID, documentID, props, now); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if err := s.cache.Invalidate(ctx, workspaceID, documentID); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Str("document_id", documentID).Msg("Failed to invalidate cached document")
	}

	doc.CrawlerProperties = props
	doc.UpdatedAt = now
	return doc, nil
}

// EnableSubscription turns a crawler document's subscription on.
func (s *CatalogService) EnableSubscription(ctx context.Context, workspaceID, documentID string) (string, error) {
	return s.setSubscription(ctx, workspaceID, documentID, domain.StatusEnabled)
}

// DisableSubscription turns a crawler document's subscription off.
func (s *CatalogService) DisableSubscription(ctx context.Context, workspaceID, documentID string) (string, error) {
	return s.setSubscription(ctx, workspaceID, documentID, domain.StatusDisabled)
}

// setSubscription flips the subscription state. A no-op when the document is
// already in the requested state.
func (s *CatalogService) setSubscription(ctx context.Context, workspaceID, documentID, status string) (string, error) {
	doc, err := s.docRepo.Get(ctx, workspaceID, documentID)
	if err != nil {
		return "", fmt.Errorf("failed to get document: %w", err)
	}
	if doc == nil {
		return "", &domain.NotFoundError{Resource: "document", WorkspaceID: workspaceID, DocumentID: documentID}
	}
	if !doc.DocumentType.IsCrawler() {
		return "", &domain.InvalidDocumentTypeError{DocumentID: documentID, DocumentType: doc.DocumentType}
	}

	if doc.Status == status {
		return status, nil
	}

	if err := s.docRepo.SetStatus(ctx, workspaceID, documentID, status, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("failed to set subscription status: %w", err)
	}

	if err := s.cache.Invalidate(ctx, workspaceID, documentID); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Str("document_id", documentID).Msg("Failed to invalidate cached document")
	}

	return status, nil
}
