package storage

import (
	"context"
	"testing"
	"time"

	"github.com/quantive/kb-catalog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A prefix delete that never managed to enumerate the bucket must fail, not
// report success with every blob still in place.
func TestObjectStore_DeletePrefixSurfacesListingFailure(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{
		Endpoint:  "127.0.0.1:1",
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = store.DeletePrefix(ctx, "kb-processing", "ws-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list objects")
}
