// Package local provides a filesystem-backed object store for development
// and tests. Buckets map to directories under a root; keys map to files.
package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"audio-summary-pipeline/internal/observability/metrics"
	"audio-summary-pipeline/internal/storage"
)

// Store implements storage.ObjectStore on the local filesystem.
type Store struct {
	root    string
	metrics *metrics.Metrics
}

// New creates a local store rooted at the given directory.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root, metrics: metrics.DefaultMetrics}, nil
}

// Root returns the store's root directory. The worker's watch trigger
// observes bucket directories under it.
func (s *Store) Root() string {
	return s.root
}

// BucketDir returns the directory backing a bucket, creating it if needed.
func (s *Store) BucketDir(bucket string) (string, error) {
	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (s *Store) path(bucket, key string) string {
	return filepath.Join(s.root, bucket, filepath.FromSlash(key))
}

// Put writes the object via a temp file rename so watchers never observe a
// partially written object.
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	dst := s.path(bucket, key)
	err := func() error {
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		tmp, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
		if err != nil {
			return err
		}
		tmpName := tmp.Name()
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return err
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpName)
			return err
		}
		return os.Rename(tmpName, dst)
	}()
	s.metrics.RecordStorageOp("put", err)
	return err
}

// Get reads the object, mapping a missing file to storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(bucket, key))
	if errors.Is(err, fs.ErrNotExist) {
		s.metrics.RecordStorageOp("get", storage.ErrNotFound)
		return nil, storage.ErrNotFound
	}
	s.metrics.RecordStorageOp("get", err)
	return data, err
}

// Head reports whether the object exists.
func (s *Store) Head(ctx context.Context, bucket, key string) (bool, error) {
	_, err := os.Stat(s.path(bucket, key))
	if errors.Is(err, fs.ErrNotExist) {
		s.metrics.RecordStorageOp("head", nil)
		return false, nil
	}
	s.metrics.RecordStorageOp("head", err)
	if err != nil {
		return false, err
	}
	return true, nil
}
