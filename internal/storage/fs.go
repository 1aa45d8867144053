package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/streamnest/streamnest/backend/internal/logger"
)

// FileStore implements Store on the local filesystem.
type FileStore struct {
	dir    string
	logger logger.Logger
}

// NewFileStore creates a filesystem blob store rooted at dir.
func NewFileStore(dir string, log logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FileStore{dir: dir, logger: log}, nil
}

// Dir returns the root directory of the store.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(filename string) string {
	// filepath.Base guards against traversal through the filename.
	return filepath.Join(s.dir, filepath.Base(filename))
}

// Save writes the blob and returns its absolute path.
func (s *FileStore) Save(ctx context.Context, reader io.Reader, filename string) (string, error) {
	path := s.path(filename)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close blob file: %w", err)
	}

	s.logger.LogDebug("Blob written", map[string]interface{}{"path": path})
	return path, nil
}

// Open returns a reader over the full blob.
func (s *FileStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

type rangeReader struct {
	io.Reader
	closer io.Closer
}

func (r *rangeReader) Close() error { return r.closer.Close() }

// ReadRange returns a reader over length bytes starting at start.
func (s *FileStore) ReadRange(ctx context.Context, filename string, start, length int64) (io.ReadCloser, error) {
	f, err := os.Open(s.path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := f.Seek(start, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek blob file: %w", err)
	}
	return &rangeReader{Reader: io.LimitReader(f, length), closer: f}, nil
}

// Stat returns size and modification time of the blob.
func (s *FileStore) Stat(ctx context.Context, filename string) (FileInfo, error) {
	info, err := os.Stat(s.path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return FileInfo{}, ErrNotFound
		}
		return FileInfo{}, err
	}
	return FileInfo{Size: info.Size(), ModTime: info.ModTime()}, nil
}

// Delete removes the blob. Deleting a missing blob is not an error.
func (s *FileStore) Delete(ctx context.Context, filename string) error {
	if err := os.Remove(s.path(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob file: %w", err)
	}
	return nil
}
