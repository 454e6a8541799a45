package service

import (
	"context"

	"github.com/quantive/kb-catalog/internal/domain"
)

// SubscriptionStatus echoes the resulting state back alongside the
// identifiers. A convenience read-after-write, not a separate source of
// truth.
type SubscriptionStatus struct {
	WorkspaceID string `json:"workspaceId"`
	DocumentID  string `json:"documentId"`
	Status      string `json:"status"`
}

// SubscriptionService toggles crawl subscriptions on rss feeds and websites.
type SubscriptionService struct {
	catalog *CatalogService
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(catalog *CatalogService) *SubscriptionService {
	return &SubscriptionService{catalog: catalog}
}

// SetSubscriptionStatus validates the requested status literal and delegates
// to the catalog's enable/disable operations.
func (s *SubscriptionService) SetSubscriptionStatus(ctx context.Context, workspaceID, documentID, status string) (*SubscriptionStatus, error) {
	var result string
	var err error

	switch status {
	case domain.StatusEnabled:
		result, err = s.catalog.EnableSubscription(ctx, workspaceID, documentID)
	case domain.StatusDisabled:
		result, err = s.catalog.DisableSubscription(ctx, workspaceID, documentID)
	default:
		return nil, domain.NewValidationError("invalid status %q: must be %q or %q", status, domain.StatusEnabled, domain.StatusDisabled)
	}
	if err != nil {
		return nil, err
	}

	return &SubscriptionStatus{
		WorkspaceID: workspaceID,
		DocumentID:  documentID,
		Status:      result,
	}, nil
}
