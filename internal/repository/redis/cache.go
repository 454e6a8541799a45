package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quantive/kb-catalog/internal/domain"
)

const documentCachePrefix = "document:"

// DocumentCache is a read-through cache for document records. Entries are
// invalidated on every update and delete, so a hit is at worst TTL-stale.
type DocumentCache struct {
	client *Client
	ttl    time.Duration
}

// NewDocumentCache creates a new document cache
func NewDocumentCache(client *Client, ttl time.Duration) *DocumentCache {
	return &DocumentCache{client: client, ttl: ttl}
}

func documentCacheKey(workspaceID, documentID string) string {
	return fmt.Sprintf("%s%s:%s", documentCachePrefix, workspaceID, documentID)
}

// Get retrieves a cached document record
func (c *DocumentCache) Get(ctx context.Context, workspaceID, documentID string) (*domain.Document, error) {
	data, err := c.client.rdb.Get(ctx, documentCacheKey(workspaceID, documentID)).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return &doc, nil
}

// Set caches a document record
func (c *DocumentCache) Set(ctx context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	return c.client.rdb.Set(ctx, documentCacheKey(doc.WorkspaceID, doc.DocumentID), data, c.ttl).Err()
}

// Invalidate removes a cached document record
func (c *DocumentCache) Invalidate(ctx context.Context, workspaceID, documentID string) error {
	return c.client.rdb.Del(ctx, documentCacheKey(workspaceID, documentID)).Err()
}

// InvalidateWorkspace removes every cached record for a workspace
func (c *DocumentCache) InvalidateWorkspace(ctx context.Context, workspaceID string) (int64, error) {
	pattern := documentCachePrefix + workspaceID + ":*"
	var cursor uint64
	var deleted int64

	for {
		keys, nextCursor, err := c.client.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			count, err := c.client.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete keys: %w", err)
			}
			deleted += count
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}
