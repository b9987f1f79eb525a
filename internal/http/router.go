// Package http exposes the worker's read API: stored summaries, formatted
// transcripts, and on-the-fly conversation analysis.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"audio-summary-pipeline/internal/models"
	"audio-summary-pipeline/internal/observability/logging"
	"audio-summary-pipeline/internal/service/analysis"
	"audio-summary-pipeline/internal/service/job"
	"audio-summary-pipeline/internal/service/transcript"
	"audio-summary-pipeline/internal/storage"
)

// Options configures the read API.
type Options struct {
	RawBucket     string
	SummaryBucket string
}

// API serves read access to pipeline artifacts.
type API struct {
	store  storage.ObjectStore
	opts   Options
	logger zerolog.Logger
}

// NewAPI creates the read API over the given store.
func NewAPI(store storage.ObjectStore, opts Options) *API {
	return &API{
		store:  store,
		opts:   opts,
		logger: logging.WithComponent("api"),
	}
}

// Router builds the chi router for the read API.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger(a.logger))

	r.Route("/v1/jobs/{jobName}", func(r chi.Router) {
		r.Get("/summary", a.getSummary)
		r.Get("/transcript", a.getTranscript)
		r.Get("/analysis", a.getAnalysis)
	})

	return r
}

func (a *API) getSummary(w http.ResponseWriter, r *http.Request) {
	jobName := chi.URLParam(r, "jobName")

	data, err := a.store.Get(r.Context(), a.opts.SummaryBucket, job.SummaryKey(jobName))
	if err != nil {
		a.writeStorageError(w, jobName, "summary", err)
		return
	}

	writeJSON(w, http.StatusOK, models.SummaryArtifact{JobName: jobName, Text: string(data)})
}

func (a *API) getTranscript(w http.ResponseWriter, r *http.Request) {
	jobName := chi.URLParam(r, "jobName")

	result, err := a.loadResult(r, jobName)
	if err != nil {
		a.writeStorageError(w, jobName, "transcript", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"jobName":    jobName,
		"transcript": models.RenderTurns(transcript.Reconstruct(result)),
	})
}

func (a *API) getAnalysis(w http.ResponseWriter, r *http.Request) {
	jobName := chi.URLParam(r, "jobName")

	result, err := a.loadResult(r, jobName)
	if err != nil {
		a.writeStorageError(w, jobName, "analysis", err)
		return
	}

	formatted := models.RenderTurns(transcript.Reconstruct(result))
	writeJSON(w, http.StatusOK, analysis.Analyze(formatted))
}

func (a *API) loadResult(r *http.Request, jobName string) (*models.RecognitionResult, error) {
	data, err := a.store.Get(r.Context(), a.opts.RawBucket, job.ResultKey(jobName))
	if err != nil {
		return nil, err
	}
	return models.ParseRecognitionResult(data)
}

func (a *API) writeStorageError(w http.ResponseWriter, jobName, resource string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": resource + " not found", "jobName": jobName})
		return
	}
	a.logger.Error().Err(err).Str("job", jobName).Str("resource", resource).Msg("Read request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
