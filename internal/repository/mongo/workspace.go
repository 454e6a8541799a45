package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quantive/kb-catalog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WorkspaceRepository handles workspace record access in the metadata table
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func workspaceKey(workspaceID string) bson.M {
	return bson.M{"workspace_id": workspaceID, "object_type": domain.ObjectTypeWorkspace}
}

// Get retrieves a workspace record. Returns (nil, nil) when no record exists.
func (r *WorkspaceRepository) Get(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	var ws domain.Workspace
	err := r.db.metadata.FindOne(ctx, workspaceKey(workspaceID)).Decode(&ws)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return &ws, nil
}

// Put writes the full workspace record
func (r *WorkspaceRepository) Put(ctx context.Context, workspace *domain.Workspace) error {
	workspace.ObjectType = domain.ObjectTypeWorkspace
	opts := options.Replace().SetUpsert(true)
	_, err := r.db.metadata.ReplaceOne(ctx, workspaceKey(workspace.WorkspaceID), workspace, opts)
	if err != nil {
		return fmt.Errorf("failed to put workspace: %w", err)
	}
	return nil
}

// ApplyCounterDelta adjusts the aggregate counters with a single atomic
// increment expression. Never read-modify-write: concurrent deletions against
// the same workspace must not lose updates. A missing workspace record makes
// the delta a no-op, since there is nothing left to adjust.
func (r *WorkspaceRepository) ApplyCounterDelta(ctx context.Context, workspaceID string, delta domain.CounterDelta, now time.Time) error {
	update := bson.M{
		"$inc": bson.M{
			"documents":     delta.Documents,
			"size_in_bytes": delta.SizeInBytes,
			"vectors":       delta.Vectors,
		},
		"$set": bson.M{"updated_at": now},
	}

	_, err := r.db.metadata.UpdateOne(ctx, workspaceKey(workspaceID), update)
	if err != nil {
		return fmt.Errorf("failed to apply counter delta: %w", err)
	}
	return nil
}

// Delete removes the workspace record. Idempotent.
func (r *WorkspaceRepository) Delete(ctx context.Context, workspaceID string) error {
	_, err := r.db.metadata.DeleteOne(ctx, workspaceKey(workspaceID))
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return nil
}
