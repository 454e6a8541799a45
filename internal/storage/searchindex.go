package storage

import (
	"context"
	"fmt"

	"github.com/quantive/kb-catalog/internal/domain"
)

// SearchIndex removes indexed content and metadata sidecars from the index's
// backing bucket. Index keys are derived per document type from the
// processing path; types without an indexed representation are skipped.
type SearchIndex struct {
	store  domain.ObjectStore
	bucket string
}

// NewSearchIndex creates a new search index adapter over the data source
// bucket.
func NewSearchIndex(store domain.ObjectStore, bucket string) *SearchIndex {
	return &SearchIndex{store: store, bucket: bucket}
}

// indexKeys derives the content key and metadata sidecar key for a document.
// The type set is closed; missing entries mean the type has no index entry.
var indexKeys = map[domain.DocumentType]func(workspaceID, documentID string) (content, metadata string){
	domain.DocumentTypeText: func(workspaceID, documentID string) (string, string) {
		processingKey := fmt.Sprintf("%s/%s/content.txt", workspaceID, documentID)
		return "documents/" + processingKey,
			"metadata/documents/" + processingKey + ".metadata.json"
	},
	domain.DocumentTypeQnA: func(workspaceID, documentID string) (string, string) {
		processingKey := fmt.Sprintf("%s/%s/content.txt", workspaceID, documentID)
		return "documents/" + processingKey,
			"metadata/documents/" + processingKey + ".metadata.json"
	},
}

// DeleteDocument removes a document's index entry and its metadata sidecar.
// Types without a deriver are skipped, not failed.
func (s *SearchIndex) DeleteDocument(ctx context.Context, workspaceID, documentID string, docType domain.DocumentType) error {
	derive, ok := indexKeys[docType]
	if !ok {
		return nil
	}

	contentKey, metadataKey := derive(workspaceID, documentID)
	if err := s.store.DeletePrefix(ctx, s.bucket, contentKey); err != nil {
		return fmt.Errorf("failed to delete index content: %w", err)
	}
	if err := s.store.DeletePrefix(ctx, s.bucket, metadataKey); err != nil {
		return fmt.Errorf("failed to delete index metadata: %w", err)
	}
	return nil
}

// DeleteWorkspace removes every index entry under a workspace's prefixes.
func (s *SearchIndex) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	if err := s.store.DeletePrefix(ctx, s.bucket, "documents/"+workspaceID); err != nil {
		return fmt.Errorf("failed to delete index documents: %w", err)
	}
	if err := s.store.DeletePrefix(ctx, s.bucket, "metadata/documents/"+workspaceID); err != nil {
		return fmt.Errorf("failed to delete index metadata: %w", err)
	}
	return nil
}
