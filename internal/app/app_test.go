package app

import (
	"context"
	"testing"

	"audio-summary-pipeline/internal/config"
)

func testConfig(t *testing.T) *config.Configuration {
	t.Helper()
	cfg := config.Load()
	cfg.Storage.Backend = "local"
	cfg.Storage.LocalRoot = t.TempDir()
	cfg.Model.Provider = "mock"
	return cfg
}

func TestNewStoreLocal(t *testing.T) {
	a := New(testConfig(t))
	store, err := a.NewStore(context.Background())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if store == nil {
		t.Fatal("NewStore() returned nil store")
	}
}

func TestNewStoreUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = "tape"
	if _, err := New(cfg).NewStore(context.Background()); err == nil {
		t.Error("NewStore() expected error for unknown backend, got nil")
	}
}

func TestNewInvokerMock(t *testing.T) {
	a := New(testConfig(t))
	invoker, err := a.NewInvoker(context.Background())
	if err != nil {
		t.Fatalf("NewInvoker() error = %v", err)
	}
	if invoker == nil {
		t.Fatal("NewInvoker() returned nil invoker")
	}
}

func TestNewInvokerUnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.Provider = "oracle"
	if _, err := New(cfg).NewInvoker(context.Background()); err == nil {
		t.Error("NewInvoker() expected error for unknown provider, got nil")
	}
}
