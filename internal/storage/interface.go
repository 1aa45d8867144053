package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when the requested blob does not exist.
var ErrNotFound = errors.New("blob not found")

// FileInfo describes a stored blob.
type FileInfo struct {
	Size    int64
	ModTime time.Time
}

// Store is the blob store consumed by the ingest pipeline and the streamer.
// Implementations key blobs by the stored filename.
type Store interface {
	Save(ctx context.Context, reader io.Reader, filename string) (string, error)
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
	// ReadRange returns a reader over exactly length bytes starting at start.
	ReadRange(ctx context.Context, filename string, start, length int64) (io.ReadCloser, error)
	Stat(ctx context.Context, filename string) (FileInfo, error)
	Delete(ctx context.Context, filename string) error
}
