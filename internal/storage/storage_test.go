package storage_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/motohub-api/internal/storage"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Save("vehicles/2026/08/test.webp", []byte("blob"))
	require.NoError(t, err)
	assert.Equal(t, "vehicles/2026/08/test.webp", ref)

	data, err := store.Open(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), data)

	require.NoError(t, store.Delete(ref))
	_, err = store.Open(ref)
	assert.Error(t, err)
}

func TestLocalStoreDeleteIsIdempotent(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete("vehicles/2026/08/never-existed.webp"))
}

func TestObjectNameShardsByMonth(t *testing.T) {
	now := time.Now()
	name := storage.ObjectName("vehicles", ".webp")

	prefix := fmt.Sprintf("vehicles/%d/%02d/", now.Year(), int(now.Month()))
	assert.Contains(t, name, prefix)
	assert.Contains(t, name, ".webp")

	assert.NotEqual(t, name, storage.ObjectName("vehicles", ".webp"))
}
