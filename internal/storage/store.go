// Package storage defines the object store interface the pipeline depends on.
// All durable state lives behind this interface, addressed by bucket and key.
package storage

import (
	"context"
	"errors"
	"time"

	"audio-summary-pipeline/internal/models"
	"audio-summary-pipeline/internal/observability/metrics"
)

// ErrNotFound is returned by Get when the object does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore is the narrow interface over the external object store.
type ObjectStore interface {
	// Put writes an object, overwriting any existing object at the key.
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error

	// Get reads an object. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// Head reports whether an object exists without fetching it.
	Head(ctx context.Context, bucket, key string) (bool, error)
}

// Notifier receives a notification for each successfully written object.
type Notifier interface {
	ObjectCreated(ctx context.Context, event models.ObjectCreated) error
}

// NotifyingStore decorates an ObjectStore, emitting an ObjectCreated
// notification after every successful Put. This stands in for bucket
// notifications and feeds the event-triggered summarizer.
type NotifyingStore struct {
	ObjectStore
	notifier Notifier
	metrics  *metrics.Metrics
}

// WithNotifier wraps a store so that writes produce notifications.
func WithNotifier(store ObjectStore, notifier Notifier) *NotifyingStore {
	return &NotifyingStore{
		ObjectStore: store,
		notifier:    notifier,
		metrics:     metrics.DefaultMetrics,
	}
}

// Put writes the object and, on success, publishes an ObjectCreated event.
// A notification failure does not fail the write; the object is durable
// either way and the event path is best-effort.
func (s *NotifyingStore) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if err := s.ObjectStore.Put(ctx, bucket, key, data, contentType); err != nil {
		return err
	}
	if s.notifier == nil {
		return nil
	}
	ev := models.ObjectCreated{
		EventType: models.EventTypeObjectCreated,
		Bucket:    bucket,
		Key:       key,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.notifier.ObjectCreated(ctx, ev); err != nil {
		// Logged by the notifier itself; the write has already succeeded.
		return nil
	}
	return nil
}
