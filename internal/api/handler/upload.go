package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quantive/kb-catalog/internal/api/response"
	"github.com/quantive/kb-catalog/internal/service"
)

// UploadHandler handles upload URL minting
type UploadHandler struct {
	upload *service.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(upload *service.UploadService) *UploadHandler {
	return &UploadHandler{upload: upload}
}

type fileUploadRequest struct {
	FileName string `json:"fileName" validate:"required"`
}

// GetUploadURL validates the extension and returns a presigned POST
// descriptor for the upload store.
func (h *UploadHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	var req fileUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	descriptor, err := h.upload.GetUploadFileURL(r.Context(), chi.URLParam(r, "workspaceID"), req.FileName)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, descriptor)
}
