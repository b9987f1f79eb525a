// Package watcher turns filesystem writes into object-created events. It
// exists for local runs against the filesystem store, where there is no
// bucket notification infrastructure to feed the worker.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"audio-summary-pipeline/internal/models"
	"audio-summary-pipeline/internal/observability/logging"
)

// Handler is invoked for every observed object creation.
type Handler func(ctx context.Context, event models.ObjectCreated)

// Watcher monitors a bucket directory of the filesystem store and emits an
// ObjectCreated event for every new file.
type Watcher struct {
	bucket  string
	dir     string
	handler Handler
	fsw     *fsnotify.Watcher
	logger  zerolog.Logger
}

// New creates a watcher over dir, reporting events against bucket.
func New(bucket, dir string, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		bucket:  bucket,
		dir:     dir,
		handler: handler,
		fsw:     fsw,
		logger:  logging.WithComponent("watcher"),
	}, nil
}

// Run processes filesystem events until the context is cancelled. The store
// writes objects with a rename into place, so a Create event always refers to
// a fully written object.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info().Str("bucket", w.bucket).Str("dir", w.dir).Msg("File watcher started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			key, err := w.keyFor(event.Name)
			if err != nil {
				w.logger.Debug().Str("path", event.Name).Msg("Ignoring path outside the bucket directory")
				continue
			}
			w.logger.Debug().Str("key", key).Msg("Object created")
			w.handler(ctx, models.ObjectCreated{
				EventType: models.EventTypeObjectCreated,
				Bucket:    w.bucket,
				Key:       key,
				Timestamp: time.Now().Unix(),
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) keyFor(path string) (string, error) {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %s is outside %s", path, w.dir)
	}
	return filepath.ToSlash(rel), nil
}
