package storage

import (
	"context"
	"testing"
	"time"

	"github.com/quantive/kb-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore captures prefix deletes without touching a real bucket.
type recordingStore struct {
	prefixes []string
}

func (s *recordingStore) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	return nil
}

func (s *recordingStore) DeleteObject(ctx context.Context, bucket, key string) error {
	return nil
}

func (s *recordingStore) DeletePrefix(ctx context.Context, bucket, prefix string) error {
	s.prefixes = append(s.prefixes, prefix)
	return nil
}

func (s *recordingStore) PresignedUploadPost(ctx context.Context, bucket, key string, expiry time.Duration) (*domain.UploadDescriptor, error) {
	return &domain.UploadDescriptor{}, nil
}

func TestSearchIndex_DeleteDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("text derives content and metadata keys", func(t *testing.T) {
		store := &recordingStore{}
		index := NewSearchIndex(store, "datasource")

		require.NoError(t, index.DeleteDocument(ctx, "ws-1", "doc-1", domain.DocumentTypeText))
		assert.Equal(t, []string{
			"documents/ws-1/doc-1/content.txt",
			"metadata/documents/ws-1/doc-1/content.txt.metadata.json",
		}, store.prefixes)
	})

	t.Run("types without an index entry are skipped", func(t *testing.T) {
		store := &recordingStore{}
		index := NewSearchIndex(store, "datasource")

		require.NoError(t, index.DeleteDocument(ctx, "ws-1", "site-1", domain.DocumentTypeWebsite))
		assert.Empty(t, store.prefixes)
	})
}

func TestSearchIndex_DeleteWorkspace(t *testing.T) {
	store := &recordingStore{}
	index := NewSearchIndex(store, "datasource")

	require.NoError(t, index.DeleteWorkspace(context.Background(), "ws-1"))
	assert.Equal(t, []string{
		"documents/ws-1",
		"metadata/documents/ws-1",
	}, store.prefixes)
}
