// Package app holds process-wide wiring shared by the pipeline and worker
// binaries: logger setup and construction of the configured store and model
// backends.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"audio-summary-pipeline/internal/ai"
	"audio-summary-pipeline/internal/ai/gemini"
	aimock "audio-summary-pipeline/internal/ai/mock"
	"audio-summary-pipeline/internal/config"
	"audio-summary-pipeline/internal/observability/logging"
	"audio-summary-pipeline/internal/storage"
	"audio-summary-pipeline/internal/storage/gcs"
	"audio-summary-pipeline/internal/storage/local"
)

// mockSummaryText is what the mock model provider answers with; it keeps
// local runs working end to end without credentials.
const mockSummaryText = "A guest arrived for an anniversary stay and was " +
	"welcomed by the receptionist. No charges, location details, or " +
	"availability constraints were discussed."

// Application holds process-wide state shared by the binaries.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Configuration
}

// New constructs an Application from the provided configuration and
// initializes the global logger.
func New(cfg *config.Configuration) *Application {
	logging.Init(logging.Config{
		Level:      cfg.Observability.LogLevel,
		Format:     logging.DefaultConfig().Format,
		TimeFormat: time.RFC3339,
		Service:    cfg.Service.Principal,
	})

	a := &Application{
		StartupTime: time.Now().UTC(),
		Logger:      logging.WithComponent("application"),
		Cfg:         cfg,
	}
	a.Logger.Info().
		Time("startupTime", a.StartupTime).
		Str("storageBackend", cfg.Storage.Backend).
		Str("transcribeProvider", cfg.Transcribe.Provider).
		Str("modelProvider", cfg.Model.Provider).
		Msg("Application created")
	return a
}

// NewStore constructs the configured object store backend.
func (a *Application) NewStore(ctx context.Context) (storage.ObjectStore, error) {
	switch a.Cfg.Storage.Backend {
	case "gcs":
		return gcs.New(ctx)
	case "local":
		return local.New(a.Cfg.Storage.LocalRoot)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", a.Cfg.Storage.Backend)
	}
}

// NewInvoker constructs the configured model backend.
func (a *Application) NewInvoker(ctx context.Context) (ai.Invoker, error) {
	switch a.Cfg.Model.Provider {
	case "gemini":
		return gemini.New(ctx, a.Cfg.Model.ModelID, a.Cfg.Model.APIKey, a.Cfg.Model.InvokeTimeout)
	case "mock":
		return aimock.New(mockSummaryText), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", a.Cfg.Model.Provider)
	}
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	a.Logger.Info().
		Dur("uptime", time.Since(a.StartupTime)).
		Msg("Application shutting down")
}
