package domain

import "fmt"

// ValidationError reports bad or missing input. Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError formats a ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a lookup that required the record to exist.
// Not-found on delete paths is not an error; only strict lookups raise this.
type NotFoundError struct {
	Resource    string
	WorkspaceID string
	DocumentID  string
}

func (e *NotFoundError) Error() string {
	if e.DocumentID == "" {
		return fmt.Sprintf("%s not found: workspace %s", e.Resource, e.WorkspaceID)
	}
	return fmt.Sprintf("%s not found: %s/%s", e.Resource, e.WorkspaceID, e.DocumentID)
}

// TypeMismatchError reports an operation declared for one document type
// applied to a record of another.
type TypeMismatchError struct {
	WorkspaceID string
	DocumentID  string
	Want        DocumentType
	Got         DocumentType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("document %s/%s is %q, not %q", e.WorkspaceID, e.DocumentID, e.Got, e.Want)
}

// InvalidDocumentTypeError reports a subscription operation against a
// document type that has no crawl subscription.
type InvalidDocumentTypeError struct {
	DocumentID   string
	DocumentType DocumentType
}

func (e *InvalidDocumentTypeError) Error() string {
	return fmt.Sprintf("document %s has type %q which does not support subscriptions", e.DocumentID, e.DocumentType)
}

// Deletion cascade stages, reported on partial failure so callers can log
// and retry the whole call. Every stage is idempotent.
const (
	StageUploadObject    = "upload-object"
	StageProcessingBlobs = "processing-blobs"
	StageSearchIndex     = "search-index"
	StageMetadataRecord  = "metadata-record"
	StageCounters        = "counters"
	StageDocumentBatch   = "document-batch"
	StageWorkspaceRecord = "workspace-record"
)

// DeletionPartialFailureError reports which cascade stage failed transiently.
// The caller retries the whole deletion; completed stages are no-ops on the
// second pass.
type DeletionPartialFailureError struct {
	Stage       string
	WorkspaceID string
	DocumentID  string
	Err         error
}

func (e *DeletionPartialFailureError) Error() string {
	if e.DocumentID == "" {
		return fmt.Sprintf("workspace %s deletion failed at stage %s: %v", e.WorkspaceID, e.Stage, e.Err)
	}
	return fmt.Sprintf("document %s/%s deletion failed at stage %s: %v", e.WorkspaceID, e.DocumentID, e.Stage, e.Err)
}

func (e *DeletionPartialFailureError) Unwrap() error {
	return e.Err
}
