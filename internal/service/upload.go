package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/quantive/kb-catalog/internal/domain"
)

// allowedExtensions is the fixed allow-list for direct file uploads. Anything
// else is rejected before an upload URL is minted.
var allowedExtensions = map[string]struct{}{
	".csv":  {},
	".doc":  {},
	".docx": {},
	".epub": {},
	".odt":  {},
	".pdf":  {},
	".ppt":  {},
	".pptx": {},
	".tsv":  {},
	".xlsx": {},
	".eml":  {},
	".html": {},
	".json": {},
	".md":   {},
	".msg":  {},
	".rst":  {},
	".rtf":  {},
	".txt":  {},
	".xml":  {},
}

// UploadService mints presigned upload descriptors for raw file documents.
type UploadService struct {
	objects      domain.ObjectStore
	uploadBucket string
	expiry       time.Duration
}

// NewUploadService creates a new upload service
func NewUploadService(objects domain.ObjectStore, uploadBucket string, expiry time.Duration) *UploadService {
	return &UploadService{
		objects:      objects,
		uploadBucket: uploadBucket,
		expiry:       expiry,
	}
}

// GetUploadFileURL validates the file extension and returns a presigned POST
// descriptor for the upload store, keyed under the workspace prefix.
func (s *UploadService) GetUploadFileURL(ctx context.Context, workspaceID, fileName string) (*domain.UploadDescriptor, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, domain.NewValidationError("invalid file extension %q", ext)
	}

	key := workspaceID + "/" + fileName
	descriptor, err := s.objects.PresignedUploadPost(ctx, s.uploadBucket, key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to mint upload URL: %w", err)
	}
	return descriptor, nil
}
