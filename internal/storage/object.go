package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/quantive/kb-catalog/internal/config"
	"github.com/quantive/kb-catalog/internal/domain"
	"github.com/rs/zerolog/log"
)

// ObjectStore is the S3-compatible blob store adapter. Deletes are
// idempotent: removing a missing key or an empty prefix is success.
type ObjectStore struct {
	client *minio.Client
}

// NewObjectStore creates a new object store client
func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &ObjectStore{client: client}, nil
}

// PutObject writes a single blob
func (s *ObjectStore) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// DeleteObject removes a single blob by exact key
func (s *ObjectStore) DeleteObject(ctx context.Context, bucket, key string) error {
	err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// DeletePrefix removes every blob under a key prefix. Zero matches is not an
// error.
func (s *ObjectStore) DeletePrefix(ctx context.Context, bucket, prefix string) error {
	objects := s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	// Listing failures must fail the whole prefix delete: returning success
	// while objects were never enumerated would leave blobs behind after a
	// deletion the caller believes completed. Only not-found is swallowed.
	toRemove := make(chan minio.ObjectInfo)
	var listErr error
	go func() {
		defer close(toRemove)
		for obj := range objects {
			if obj.Err != nil {
				if !isNotFound(obj.Err) {
					listErr = obj.Err
					log.Warn().Err(obj.Err).Str("bucket", bucket).Str("prefix", prefix).Msg("Listing objects for prefix delete failed")
				}
				continue
			}
			select {
			case toRemove <- obj:
			case <-ctx.Done():
				return
			}
		}
	}()

	var failed int
	var lastErr error
	for removeErr := range s.client.RemoveObjects(ctx, bucket, toRemove, minio.RemoveObjectsOptions{}) {
		if removeErr.Err != nil && !isNotFound(removeErr.Err) {
			failed++
			lastErr = removeErr.Err
			log.Warn().Err(removeErr.Err).Str("bucket", bucket).Str("key", removeErr.ObjectName).Msg("Failed to remove object")
		}
	}
	if listErr != nil {
		return fmt.Errorf("failed to list objects under %s/%s: %w", bucket, prefix, listErr)
	}
	if failed > 0 {
		return fmt.Errorf("failed to delete %d objects under %s/%s: %w", failed, bucket, prefix, lastErr)
	}
	return nil
}

// PresignedUploadPost mints a presigned POST policy for a direct upload:
// the URL plus the form fields the client must echo back.
func (s *ObjectStore) PresignedUploadPost(ctx context.Context, bucket, key string, expiry time.Duration) (*domain.UploadDescriptor, error) {
	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(bucket); err != nil {
		return nil, fmt.Errorf("failed to build post policy: %w", err)
	}
	if err := policy.SetKey(key); err != nil {
		return nil, fmt.Errorf("failed to build post policy: %w", err)
	}
	if err := policy.SetExpires(time.Now().UTC().Add(expiry)); err != nil {
		return nil, fmt.Errorf("failed to build post policy: %w", err)
	}

	url, fields, err := s.client.PresignedPostPolicy(ctx, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &domain.UploadDescriptor{URL: url.String(), Fields: fields}, nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == 404
}
