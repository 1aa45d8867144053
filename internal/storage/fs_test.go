package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamnest/streamnest/backend/internal/logger"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), logger.NewNopLogger())
	require.NoError(t, err)
	return store
}

func TestFileStoreSaveAndOpen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	path, err := store.Save(ctx, bytes.NewReader([]byte("hello world")), "clip.mp4")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	reader, err := store.Open(ctx, "clip.mp4")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestFileStoreRejectsDuplicateFilename(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, bytes.NewReader([]byte("one")), "clip.mp4")
	require.NoError(t, err)

	_, err = store.Save(ctx, bytes.NewReader([]byte("two")), "clip.mp4")
	assert.Error(t, err)
}

func TestFileStoreStripsPathComponents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, bytes.NewReader([]byte("data")), "../../etc/passwd")
	require.NoError(t, err)

	// The blob lands inside the store directory under the base name only.
	_, err = os.Stat(filepath.Join(store.Dir(), "passwd"))
	assert.NoError(t, err)
}

func TestFileStoreReadRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 256)
	}
	_, err := store.Save(ctx, bytes.NewReader(data), "blob.bin")
	require.NoError(t, err)

	reader, err := store.ReadRange(ctx, "blob.bin", 100, 50)
	require.NoError(t, err)
	defer reader.Close()

	slice, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Len(t, slice, 50)
	assert.Equal(t, data[100:150], slice)
}

func TestFileStoreStat(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, bytes.NewReader([]byte("0123456789")), "blob.bin")
	require.NoError(t, err)

	info, err := store.Stat(ctx, "blob.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(10), info.Size)

	_, err = store.Stat(ctx, "missing.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, bytes.NewReader([]byte("data")), "blob.bin")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "blob.bin"))
	_, err = store.Stat(ctx, "blob.bin")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing blob is not an error.
	assert.NoError(t, store.Delete(ctx, "blob.bin"))
}
