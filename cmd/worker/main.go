// Command worker runs the event-triggered summarizer. It consumes
// object-created notifications, writes a summary artifact for every new
// transcription result, and serves a small read API over the stored
// artifacts.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"audio-summary-pipeline/internal/ai"
	"audio-summary-pipeline/internal/app"
	"audio-summary-pipeline/internal/config"
	"audio-summary-pipeline/internal/events"
	api "audio-summary-pipeline/internal/http"
	"audio-summary-pipeline/internal/models"
	"audio-summary-pipeline/internal/observability"
	"audio-summary-pipeline/internal/prompt"
	"audio-summary-pipeline/internal/storage/local"
	"audio-summary-pipeline/internal/watcher"
	"audio-summary-pipeline/internal/worker"
)

var errUnsupportedTrigger = errors.New("unsupported worker trigger configuration")

func main() {
	cfg := config.Load()
	application := app.New(cfg)
	defer application.Shutdown()

	if err := run(application); err != nil {
		application.Logger.Error().Err(err).Msg("Worker failed")
		os.Exit(1)
	}
}

func run(application *app.Application) error {
	cfg := application.Cfg
	logger := application.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := application.NewStore(ctx)
	if err != nil {
		return err
	}
	invoker, err := application.NewInvoker(ctx)
	if err != nil {
		return err
	}

	handler := worker.NewHandler(store, invoker, prompt.NewEngine(), worker.Options{
		SummaryBucket: cfg.Storage.TextBucket,
		TemplatePath:  cfg.Model.EventTemplate,
		ResultSuffix:  cfg.Worker.ResultSuffix,
		Params: ai.Params{
			MaxTokens:   cfg.Model.EventMaxTokens,
			Temperature: cfg.Model.EventTemperature,
		},
	})

	var ready atomic.Bool
	obs := observability.NewServer(cfg.Observability.MetricsAddr, ready.Load)
	obs.Start()

	apiServer := &http.Server{
		Addr: ":" + cfg.Worker.APIPort,
		Handler: api.NewAPI(store, api.Options{
			RawBucket:     cfg.Storage.AudioBucket,
			SummaryBucket: cfg.Storage.TextBucket,
		}).Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", apiServer.Addr).Msg("Read API listening")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("Read API server error")
		}
	}()

	trigger := make(chan error, 1)
	switch cfg.Worker.Trigger {
	case "kafka":
		consumer := events.NewConsumer(events.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}, func(ctx context.Context, event models.ObjectCreated) {
			handler.Handle(ctx, event)
		})
		defer consumer.Close()
		go func() { trigger <- consumer.Run(ctx) }()

	case "watch":
		localStore, ok := store.(*local.Store)
		if !ok {
			logger.Error().Str("backend", cfg.Storage.Backend).Msg("The watch trigger requires the local storage backend")
			return errUnsupportedTrigger
		}
		dir, err := localStore.BucketDir(cfg.Storage.AudioBucket)
		if err != nil {
			return err
		}
		w, err := watcher.New(cfg.Storage.AudioBucket, dir, func(ctx context.Context, event models.ObjectCreated) {
			handler.Handle(ctx, event)
		})
		if err != nil {
			return err
		}
		defer w.Close()
		go func() { trigger <- w.Run(ctx) }()

	default:
		logger.Error().Str("trigger", cfg.Worker.Trigger).Msg("Unknown worker trigger")
		return errUnsupportedTrigger
	}

	ready.Store(true)
	logger.Info().Str("trigger", cfg.Worker.Trigger).Msg("Worker started")

	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	case err := <-trigger:
		if err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("Event trigger stopped")
		}
	}
	ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Read API shutdown error")
	}
	return obs.Shutdown(shutdownCtx)
}
