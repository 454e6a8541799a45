package domain

import (
	"context"
	"time"
)

// ObjectTypeWorkspace is the sort key of the workspace record inside the
// metadata table. Workspace and document records share one table partitioned
// by workspace id.
const ObjectTypeWorkspace = "workspace"

// Workspace is the aggregate root for a tenant. Counters track the sum over
// all live documents and are only ever adjusted through atomic deltas.
type Workspace struct {
	WorkspaceID string    `json:"workspaceId" bson:"workspace_id"`
	ObjectType  string    `json:"-" bson:"object_type"`
	Documents   int64     `json:"documents" bson:"documents"`
	SizeInBytes int64     `json:"sizeInBytes" bson:"size_in_bytes"`
	Vectors     int64     `json:"vectors" bson:"vectors"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// CounterDelta is one combined atomic adjustment to the workspace counters.
type CounterDelta struct {
	Documents   int64
	SizeInBytes int64
	Vectors     int64
}

// WorkspaceRepository defines the metadata store operations for workspaces.
type WorkspaceRepository interface {
	// Get returns (nil, nil) when no record exists.
	Get(ctx context.Context, workspaceID string) (*Workspace, error)
	Put(ctx context.Context, workspace *Workspace) error
	// ApplyCounterDelta issues a single atomic increment expression against
	// the workspace record, never a read-modify-write.
	ApplyCounterDelta(ctx context.Context, workspaceID string, delta CounterDelta, now time.Time) error
	Delete(ctx context.Context, workspaceID string) error
}
