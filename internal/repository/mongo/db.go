package mongo

import (
	"context"
	"fmt"

	"github.com/quantive/kb-catalog/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB wraps the Mongo client and the single metadata collection. Workspace
// and document records are co-located, partitioned by workspace_id.
type DB struct {
	client   *mongo.Client
	metadata *mongo.Collection
}

// NewDB connects to MongoDB and prepares the metadata collection
func NewDB(ctx context.Context, cfg config.MongoConfig) (*DB, error) {
	clientOpts := options.Client().ApplyURI(cfg.URI())

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	db := &DB{
		client:   client,
		metadata: client.Database(cfg.Database).Collection(cfg.Table),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return db, nil
}

// ensureIndexes creates the partition/sort index and the secondary access
// paths (by type, by rss feed back-reference).
func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.metadata.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workspace_id", Value: 1}, {Key: "document_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{"document_id": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "workspace_id", Value: 1}, {Key: "document_type", Value: 1}, {Key: "document_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "workspace_id", Value: 1}, {Key: "rss_feed_id", Value: 1}},
			Options: options.Index().SetPartialFilterExpression(bson.M{"rss_feed_id": bson.M{"$exists": true}}),
		},
	})
	return err
}

// Close disconnects the client
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
