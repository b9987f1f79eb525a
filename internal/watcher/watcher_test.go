package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"audio-summary-pipeline/internal/models"
)

func TestWatcherEmitsObjectCreated(t *testing.T) {
	dir := t.TempDir()
	events := make(chan models.ObjectCreated, 4)

	w, err := New("raw-bucket", dir, func(_ context.Context, event models.ObjectCreated) {
		events <- event
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	// Write via rename, the same way the filesystem store does.
	tmp := filepath.Join(dir, ".job-1-transcription.json.tmp")
	if err := os.WriteFile(tmp, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	final := filepath.Join(dir, "job-1-transcription.json")
	if err := os.Rename(tmp, final); err != nil {
		t.Fatalf("rename: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Key == "job-1-transcription.json" {
				if event.Bucket != "raw-bucket" {
					t.Errorf("Bucket = %q, want %q", event.Bucket, "raw-bucket")
				}
				if event.EventType != models.EventTypeObjectCreated {
					t.Errorf("EventType = %q, want %q", event.EventType, models.EventTypeObjectCreated)
				}
				cancel()
				<-done
				return
			}
			// The temp file may surface as its own event; keep waiting.
		case <-deadline:
			t.Fatal("timed out waiting for the object-created event")
		}
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	w, err := New("raw-bucket", t.TempDir(), func(context.Context, models.ObjectCreated) {})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-errs:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestNewRejectsMissingDirectory(t *testing.T) {
	if _, err := New("raw-bucket", filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Error("New() expected error for a missing directory, got nil")
	}
}
