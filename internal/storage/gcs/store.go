// Package gcs provides a Google Cloud Storage object store.
package gcs

import (
	"context"
	"errors"
	"io"

	gstorage "cloud.google.com/go/storage"

	"audio-summary-pipeline/internal/observability/metrics"
	"audio-summary-pipeline/internal/storage"
)

// Store implements storage.ObjectStore on Google Cloud Storage.
// Requires GOOGLE_APPLICATION_CREDENTIALS to be set.
type Store struct {
	client  *gstorage.Client
	metrics *metrics.Metrics
}

// New creates a GCS-backed store.
func New(ctx context.Context) (*Store, error) {
	c, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{client: c, metrics: metrics.DefaultMetrics}, nil
}

// Put writes an object. GCS uploads are atomic: the object becomes visible
// only once the writer is closed successfully.
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	w := s.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	_, err := w.Write(data)
	if err != nil {
		w.Close()
		s.metrics.RecordStorageOp("put", err)
		return err
	}
	err = w.Close()
	s.metrics.RecordStorageOp("put", err)
	return err
}

// Get reads an object, mapping a missing object to storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	r, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		s.metrics.RecordStorageOp("get", storage.ErrNotFound)
		return nil, storage.ErrNotFound
	}
	if err != nil {
		s.metrics.RecordStorageOp("get", err)
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	s.metrics.RecordStorageOp("get", err)
	return data, err
}

// Head reports whether an object exists via its attributes.
func (s *Store) Head(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.client.Bucket(bucket).Object(key).Attrs(ctx)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		s.metrics.RecordStorageOp("head", nil)
		return false, nil
	}
	s.metrics.RecordStorageOp("head", err)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
