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

// BatchMaxSize is the largest number of records removed in one batch write.
// Workspace-wide deletions are chunked to this size by the deletion engine.
const BatchMaxSize = 25

// DocumentRepository handles document record access in the metadata table
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func documentKey(workspaceID, documentID string) bson.M {
	return bson.M{"workspace_id": workspaceID, "document_id": documentID}
}

// Put writes the full document record, replacing any previous version
func (r *DocumentRepository) Put(ctx context.Context, doc *domain.Document) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.db.metadata.ReplaceOne(ctx, documentKey(doc.WorkspaceID, doc.DocumentID), doc, opts)
	if err != nil {
		return fmt.Errorf("failed to put document: %w", err)
	}
	return nil
}

// Get retrieves a document record. Returns (nil, nil) when no record exists
// so callers can distinguish not-found from transport errors.
func (r *DocumentRepository) Get(ctx context.Context, workspaceID, documentID string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.metadata.FindOne(ctx, documentKey(workspaceID, documentID)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// Delete removes a document record and reports whether a live record was
// actually deleted. The deletion engine uses the report to guard the
// workspace counter decrement against concurrent deletes of the same id.
func (r *DocumentRepository) Delete(ctx context.Context, workspaceID, documentID string) (bool, error) {
	res, err := r.db.metadata.DeleteOne(ctx, documentKey(workspaceID, documentID))
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Query returns one page of documents of a type, in ascending document_id
// order. The cursor is an exclusive start id; a non-nil output cursor means
// more pages may exist. The parent filter is applied store-side.
func (r *DocumentRepository) Query(ctx context.Context, q domain.DocumentQuery) (*domain.DocumentPage, error) {
	filter := bson.M{
		"workspace_id":  q.WorkspaceID,
		"document_type": q.DocumentType,
	}
	if q.LastDocumentID != "" {
		filter["document_id"] = bson.M{"$gt": q.LastDocumentID}
	}
	if q.ParentID != "" {
		filter["rss_feed_id"] = q.ParentID
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	// Fetch one extra record to learn whether another page exists without a
	// second round trip.
	opts := options.Find().
		SetSort(bson.D{{Key: "document_id", Value: 1}}).
		SetLimit(int64(pageSize + 1))

	cursor, err := r.db.metadata.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.Document
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	return trimPage(items, pageSize), nil
}

// trimPage cuts the one-record lookahead off a fetched slice and derives the
// resume cursor. The cursor is the last kept id and is set iff the lookahead
// showed another page may exist.
func trimPage(items []domain.Document, pageSize int) *domain.DocumentPage {
	page := &domain.DocumentPage{Items: items}
	if len(items) > pageSize {
		page.Items = items[:pageSize]
		last := page.Items[len(page.Items)-1].DocumentID
		page.LastDocumentID = &last
	}
	return page
}

// ListIDs drains the store cursor over every document record in a workspace
// and returns the ids. The workspace record itself carries no document_id
// and is excluded by the filter.
func (r *DocumentRepository) ListIDs(ctx context.Context, workspaceID string) ([]string, error) {
	filter := bson.M{
		"workspace_id": workspaceID,
		"document_id":  bson.M{"$exists": true},
	}
	opts := options.Find().SetProjection(bson.M{"document_id": 1})

	cursor, err := r.db.metadata.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var rec struct {
			DocumentID string `bson:"document_id"`
		}
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode document key: %w", err)
		}
		ids = append(ids, rec.DocumentID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return ids, nil
}

// BatchDelete removes one batch of document records in a single bulk write.
// Callers chunk ids to BatchMaxSize; atomicity across batches is never
// assumed.
func (r *DocumentRepository) BatchDelete(ctx context.Context, workspaceID string, documentIDs []string) error {
	if len(documentIDs) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(documentIDs))
	for _, id := range documentIDs {
		models = append(models, mongo.NewDeleteOneModel().SetFilter(documentKey(workspaceID, id)))
	}

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := r.db.metadata.BulkWrite(ctx, models, opts); err != nil {
		return fmt.Errorf("failed to batch delete documents: %w", err)
	}
	return nil
}

// SetStatus updates only the status field of a document record
func (r *DocumentRepository) SetStatus(ctx context.Context, workspaceID, documentID, status string, now time.Time) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": now}}
	res, err := r.db.metadata.UpdateOne(ctx, documentKey(workspaceID, documentID), update)
	if err != nil {
		return fmt.Errorf("failed to set document status: %w", err)
	}
	if res.MatchedCount == 0 {
		return &domain.NotFoundError{Resource: "document", WorkspaceID: workspaceID, DocumentID: documentID}
	}
	return nil
}

// SetCrawlerProperties updates only the crawl configuration of a record,
// leaving unrelated document state untouched.
func (r *DocumentRepository) SetCrawlerProperties(ctx context.Context, workspaceID, documentID string, props *domain.CrawlerProperties, now time.Time) error {
	update := bson.M{"$set": bson.M{"crawler_properties": props, "updated_at": now}}
	res, err := r.db.metadata.UpdateOne(ctx, documentKey(workspaceID, documentID), update)
	if err != nil {
		return fmt.Errorf("failed to set crawler properties: %w", err)
	}
	if res.MatchedCount == 0 {
		return &domain.NotFoundError{Resource: "document", WorkspaceID: workspaceID, DocumentID: documentID}
	}
	return nil
}
