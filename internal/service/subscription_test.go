package service

import (
	"context"
	"testing"

	"github.com/quantive/kb-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionService_SetSubscriptionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid status literal", func(t *testing.T) {
		svc := NewSubscriptionService(newCatalogForTest(new(MockDocumentRepository), new(MockDocumentCache)))

		_, err := svc.SetSubscriptionStatus(ctx, "ws-1", "feed-1", "paused")
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("enable echoes identifiers and status", func(t *testing.T) {
		docRepo := new(MockDocumentRepository)
		cache := new(MockDocumentCache)
		svc := NewSubscriptionService(newCatalogForTest(docRepo, cache))

		stored := &domain.Document{
			WorkspaceID:  "ws-1",
			DocumentID:   "feed-1",
			DocumentType: domain.DocumentTypeRSSFeed,
			Status:       domain.StatusDisabled,
		}
		docRepo.On("Get", ctx, "ws-1", "feed-1").Return(stored, nil)
		docRepo.On("SetStatus", ctx, "ws-1", "feed-1", domain.StatusEnabled, mock.AnythingOfType("time.Time")).Return(nil)
		cache.On("Invalidate", ctx, "ws-1", "feed-1").Return(nil)

		result, err := svc.SetSubscriptionStatus(ctx, "ws-1", "feed-1", domain.StatusEnabled)
		require.NoError(t, err)
		assert.Equal(t, "ws-1", result.WorkspaceID)
		assert.Equal(t, "feed-1", result.DocumentID)
		assert.Equal(t, domain.StatusEnabled, result.Status)
	})

	t.Run("disable on text document", func(t *testing.T) {
		docRepo := new(MockDocumentRepository)
		svc := NewSubscriptionService(newCatalogForTest(docRepo, new(MockDocumentCache)))

		stored := &domain.Document{WorkspaceID: "ws-1", DocumentID: "doc-1", DocumentType: domain.DocumentTypeText}
		docRepo.On("Get", ctx, "ws-1", "doc-1").Return(stored, nil)

		_, err := svc.SetSubscriptionStatus(ctx, "ws-1", "doc-1", domain.StatusDisabled)
		var invalidTypeErr *domain.InvalidDocumentTypeError
		assert.ErrorAs(t, err, &invalidTypeErr)
	})
}
