package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quantive/kb-catalog/internal/api/response"
	"github.com/quantive/kb-catalog/internal/service"
)

// SubscriptionHandler handles crawl subscription endpoints
type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptions *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

type subscriptionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetStatus handles enabling or disabling a crawl subscription
func (h *SubscriptionHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req subscriptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.subscriptions.SetSubscriptionStatus(
		r.Context(),
		chi.URLParam(r, "workspaceID"),
		chi.URLParam(r, "documentID"),
		req.Status,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, result)
}
