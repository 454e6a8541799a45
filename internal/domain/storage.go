package domain

import (
	"context"
	"time"
)

// UploadDescriptor is the presigned POST returned for a file upload: the
// target URL plus the form fields the client must include verbatim.
type UploadDescriptor struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
}

// ObjectStore abstracts the blob stores (upload, processing, search index
// backing). All delete operations are idempotent: a missing object or an
// empty prefix is success.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, bucket, key string) error
	DeletePrefix(ctx context.Context, bucket, prefix string) error
	PresignedUploadPost(ctx context.Context, bucket, key string, expiry time.Duration) (*UploadDescriptor, error)
}

// SearchIndex removes a document's indexed content and its metadata sidecar
// from the index's backing store. Types with no indexed representation are
// skipped, not failed.
type SearchIndex interface {
	DeleteDocument(ctx context.Context, workspaceID, documentID string, docType DocumentType) error
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}
