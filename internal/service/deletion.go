package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quantive/kb-catalog/internal/domain"
	mongorepo "github.com/quantive/kb-catalog/internal/repository/mongo"
	"github.com/rs/zerolog/log"
)

// DeletionService is the cascading deletion engine. It fans a delete out to
// the blob stores, the search index and the metadata store, in an order that
// keeps every crash point safely retryable: externally-visible artifacts go
// first, the owning record next, the counter adjustment last. There is no
// transaction spanning the stores; every stage is idempotent instead.
type DeletionService struct {
	docRepo          domain.DocumentRepository
	wsRepo           domain.WorkspaceRepository
	objects          domain.ObjectStore
	index            domain.SearchIndex
	cache            DocumentCache
	uploadBucket     string
	processingBucket string
}

// NewDeletionService creates a new deletion service
func NewDeletionService(
	docRepo domain.DocumentRepository,
	wsRepo domain.WorkspaceRepository,
	objects domain.ObjectStore,
	index domain.SearchIndex,
	cache DocumentCache,
	uploadBucket, processingBucket string,
) *DeletionService {
	return &DeletionService{
		docRepo:          docRepo,
		wsRepo:           wsRepo,
		objects:          objects,
		index:            index,
		cache:            cache,
		uploadBucket:     uploadBucket,
		processingBucket: processingBucket,
	}
}

func (s *DeletionService) partial(stage, workspaceID, documentID string, err error) error {
	log.Error().Err(err).
		Str("workspace_id", workspaceID).
		Str("document_id", documentID).
		Str("stage", stage).
		Msg("Deletion stage failed")
	return &domain.DeletionPartialFailureError{
		Stage:       stage,
		WorkspaceID: workspaceID,
		DocumentID:  documentID,
		Err:         err,
	}
}

// DeleteDocument removes one document and all of its derived artifacts.
// Calling it again for an already-deleted id is success; the counter
// decrement only fires when this call removed a live record, so two racing
// deletes never decrement twice.
func (s *DeletionService) DeleteDocument(ctx context.Context, workspaceID, documentID string) error {
	doc, err := s.docRepo.Get(ctx, workspaceID, documentID)
	if err != nil {
		return s.partial(domain.StageMetadataRecord, workspaceID, documentID, err)
	}
	if doc == nil {
		log.Info().
			Str("workspace_id", workspaceID).
			Str("document_id", documentID).
			Msg("Document already deleted")
		return nil
	}

	if doc.Path != "" {
		uploadKey := workspaceID + "/" + doc.Path
		if err := s.objects.DeleteObject(ctx, s.uploadBucket, uploadKey); err != nil {
			return s.partial(domain.StageUploadObject, workspaceID, documentID, err)
		}
	}

	processingPrefix := workspaceID + "/" + documentID
	if err := s.objects.DeletePrefix(ctx, s.processingBucket, processingPrefix); err != nil {
		return s.partial(domain.StageProcessingBlobs, workspaceID, documentID, err)
	}

	if err := s.index.DeleteDocument(ctx, workspaceID, documentID, doc.DocumentType); err != nil {
		return s.partial(domain.StageSearchIndex, workspaceID, documentID, err)
	}

	deleted, err := s.docRepo.Delete(ctx, workspaceID, documentID)
	if err != nil {
		return s.partial(domain.StageMetadataRecord, workspaceID, documentID, err)
	}

	if err := s.cache.Invalidate(ctx, workspaceID, documentID); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Str("document_id", documentID).Msg("Failed to invalidate cached document")
	}

	if !deleted {
		// A concurrent delete won the record removal and owns the decrement.
		return nil
	}

	delta := domain.CounterDelta{Documents: -1}
	if doc.SizeInBytes != nil {
		delta.SizeInBytes = -*doc.SizeInBytes
	}
	if doc.Vectors != nil {
		delta.Vectors = -*doc.Vectors
	}

	if err := s.wsRepo.ApplyCounterDelta(ctx, workspaceID, delta, time.Now().UTC()); err != nil {
		// The record and artifacts are gone; the workspace counters are now
		// overcounted until a reconciliation pass or a retry of this call.
		return s.partial(domain.StageCounters, workspaceID, documentID, err)
	}

	log.Info().
		Str("workspace_id", workspaceID).
		Str("document_id", documentID).
		Msg("Document deleted")

	return nil
}

// DeleteWorkspace removes everything under a workspace: blobs by prefix in
// each store, every document record in bounded batches, and the workspace
// record itself last, so an interrupted cascade can always be rediscovered
// and resumed from the root.
func (s *DeletionService) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	if err := s.objects.DeletePrefix(ctx, s.uploadBucket, workspaceID); err != nil {
		return s.partial(domain.StageUploadObject, workspaceID, "", err)
	}
	if err := s.objects.DeletePrefix(ctx, s.processingBucket, workspaceID); err != nil {
		return s.partial(domain.StageProcessingBlobs, workspaceID, "", err)
	}
	if err := s.index.DeleteWorkspace(ctx, workspaceID); err != nil {
		return s.partial(domain.StageSearchIndex, workspaceID, "", err)
	}

	ids, err := s.docRepo.ListIDs(ctx, workspaceID)
	if err != nil {
		return s.partial(domain.StageDocumentBatch, workspaceID, "", err)
	}

	// Partial batch failures do not abort later batches; they are collected
	// and reported together.
	var batchErrs []error
	for start := 0; start < len(ids); start += mongorepo.BatchMaxSize {
		end := start + mongorepo.BatchMaxSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := s.docRepo.BatchDelete(ctx, workspaceID, ids[start:end]); err != nil {
			log.Error().Err(err).
				Str("workspace_id", workspaceID).
				Int("batch_start", start).
				Msg("Document batch delete failed")
			batchErrs = append(batchErrs, fmt.Errorf("batch starting at %d: %w", start, err))
		}
	}
	if len(batchErrs) > 0 {
		return s.partial(domain.StageDocumentBatch, workspaceID, "", errors.Join(batchErrs...))
	}

	if n, err := s.cache.InvalidateWorkspace(ctx, workspaceID); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("Failed to invalidate cached documents")
	} else if n > 0 {
		log.Debug().Int64("count", n).Str("workspace_id", workspaceID).Msg("Invalidated cached documents")
	}

	if err := s.wsRepo.Delete(ctx, workspaceID); err != nil {
		return s.partial(domain.StageWorkspaceRecord, workspaceID, "", err)
	}

	log.Info().
		Str("workspace_id", workspaceID).
		Int("documents", len(ids)).
		Msg("Workspace deleted")

	return nil
}
