// Package worker implements the event-triggered summarizer. It reacts to
// object-created events for raw transcription results, flattens the
// transcript, and persists a generated summary artifact.
package worker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"audio-summary-pipeline/internal/ai"
	"audio-summary-pipeline/internal/models"
	"audio-summary-pipeline/internal/observability/logging"
	"audio-summary-pipeline/internal/observability/metrics"
	"audio-summary-pipeline/internal/prompt"
	"audio-summary-pipeline/internal/service/job"
	"audio-summary-pipeline/internal/service/transcript"
	"audio-summary-pipeline/internal/storage"
)

// summaryTopics are the subjects the event prompt asks the model to cover.
var summaryTopics = []string{"charges", "location", "availability"}

// Result reports the outcome of handling one event.
type Result struct {
	StatusCode int
	Body       string
}

// Options configures the event handler.
type Options struct {
	SummaryBucket string
	TemplatePath  string
	// ResultSuffix gates which object keys get summarized. Empty falls back
	// to the standard raw result suffix.
	ResultSuffix string
	Params       ai.Params
}

// Handler processes object-created events into summary artifacts.
type Handler struct {
	store   storage.ObjectStore
	invoker ai.Invoker
	engine  *prompt.Engine
	opts    Options
	logger  zerolog.Logger
}

// NewHandler creates a worker event handler.
func NewHandler(store storage.ObjectStore, invoker ai.Invoker, engine *prompt.Engine, opts Options) *Handler {
	if opts.ResultSuffix == "" {
		opts.ResultSuffix = job.ResultSuffix
	}
	return &Handler{
		store:   store,
		invoker: invoker,
		engine:  engine,
		opts:    opts,
		logger:  logging.WithComponent("worker"),
	}
}

// Handle summarizes the transcription result the event points at. Events for
// objects that are not raw transcription results are skipped.
func (h *Handler) Handle(ctx context.Context, event models.ObjectCreated) Result {
	start := time.Now()
	res := h.handle(ctx, event)

	outcome := "processed"
	switch {
	case res.StatusCode == http.StatusNoContent:
		outcome = "skipped"
	case res.StatusCode >= 400:
		outcome = "failed"
	}
	metrics.DefaultMetrics.RecordEvent(outcome, time.Since(start).Seconds())
	return res
}

func (h *Handler) handle(ctx context.Context, event models.ObjectCreated) Result {
	logger := h.logger.With().Str("bucket", event.Bucket).Str("key", event.Key).Logger()

	if !strings.HasSuffix(event.Key, h.opts.ResultSuffix) {
		logger.Debug().Msg("Ignoring object without a transcription result suffix")
		return Result{StatusCode: http.StatusNoContent, Body: "not a transcription result"}
	}
	jobName := strings.TrimSuffix(event.Key, h.opts.ResultSuffix)

	data, err := h.store.Get(ctx, event.Bucket, event.Key)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read transcription result")
		return Result{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("read object: %v", err)}
	}

	recognition, err := models.ParseRecognitionResult(data)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse transcription result")
		return Result{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("parse result: %v", err)}
	}

	flattened := transcript.FlattenItems(recognition)

	rendered, err := h.engine.Render(h.opts.TemplatePath, map[string]any{
		"Transcript": flattened,
		"Topics":     summaryTopics,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to render summary prompt")
		return Result{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("render prompt: %v", err)}
	}

	invokeStart := time.Now()
	raw, err := h.invoker.Invoke(ctx, ai.Request{Prompt: rendered, Params: h.opts.Params})
	metrics.DefaultMetrics.RecordModelInvocation("event", err, time.Since(invokeStart).Seconds())
	if err != nil {
		logger.Error().Err(err).Msg("Model invocation failed")
		return Result{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("invoke model: %v", err)}
	}

	summary := ai.ExtractText(raw)
	summaryKey := job.SummaryKey(jobName)
	if err := h.store.Put(ctx, h.opts.SummaryBucket, summaryKey, []byte(summary), "text/plain"); err != nil {
		logger.Error().Err(err).Str("summary_key", summaryKey).Msg("Failed to store summary artifact")
		return Result{StatusCode: http.StatusInternalServerError, Body: fmt.Sprintf("store summary: %v", err)}
	}

	logger.Info().
		Str("job", jobName).
		Str("summary_key", summaryKey).
		Int("summary_bytes", len(summary)).
		Msg("Summary artifact stored")
	return Result{StatusCode: http.StatusOK, Body: summary}
}
