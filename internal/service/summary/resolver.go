// Package summary resolves a transcript summary either from a previously
// stored artifact or by generating one on demand.
package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"audio-summary-pipeline/internal/ai"
	"audio-summary-pipeline/internal/observability/logging"
	"audio-summary-pipeline/internal/observability/metrics"
	"audio-summary-pipeline/internal/service/job"
	"audio-summary-pipeline/internal/storage"
)

// Source records where a resolved summary came from.
type Source string

const (
	// SourceCached marks a summary read back from the summary bucket.
	SourceCached Source = "cached"
	// SourceGenerated marks a summary produced by a model invocation.
	SourceGenerated Source = "generated"
)

// Resolution is the outcome of resolving a summary for a job.
type Resolution struct {
	Text   string
	Source Source
}

// Options configures summary resolution.
type Options struct {
	SummaryBucket string
	Params        ai.Params
}

// Resolver checks the summary bucket for an existing artifact and falls back
// to generating one with the model. Generated summaries are returned to the
// caller without being written back; only the event-driven path persists
// artifacts.
type Resolver struct {
	store   storage.ObjectStore
	invoker ai.Invoker
	opts    Options
	logger  zerolog.Logger
}

// NewResolver creates a summary resolver.
func NewResolver(store storage.ObjectStore, invoker ai.Invoker, opts Options) *Resolver {
	return &Resolver{
		store:   store,
		invoker: invoker,
		opts:    opts,
		logger:  logging.WithComponent("summary"),
	}
}

// Resolve returns the summary for jobName, reading a stored artifact when one
// exists and otherwise generating a fresh one from the transcript.
func (r *Resolver) Resolve(ctx context.Context, jobName, transcript string) (Resolution, error) {
	key := job.SummaryKey(jobName)

	exists, err := r.store.Head(ctx, r.opts.SummaryBucket, key)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return Resolution{}, fmt.Errorf("check summary %s: %w", key, err)
	}

	if exists {
		data, err := r.store.Get(ctx, r.opts.SummaryBucket, key)
		if err != nil {
			return Resolution{}, fmt.Errorf("read summary %s: %w", key, err)
		}
		metrics.DefaultMetrics.RecordSummary(string(SourceCached))
		r.logger.Info().Str("job", jobName).Str("key", key).Msg("Summary resolved from stored artifact")
		return Resolution{Text: string(data), Source: SourceCached}, nil
	}

	text, err := r.generate(ctx, jobName, transcript)
	if err != nil {
		return Resolution{}, err
	}
	metrics.DefaultMetrics.RecordSummary(string(SourceGenerated))
	return Resolution{Text: text, Source: SourceGenerated}, nil
}

const generatePrompt = `Summarize the following conversation transcript.
Focus on the main topics discussed, key points, and any decisions or actions agreed upon.
Keep the summary concise but comprehensive.

Transcript:
%s

Summary:`

func (r *Resolver) generate(ctx context.Context, jobName, transcript string) (string, error) {
	prompt := fmt.Sprintf(generatePrompt, transcript)

	start := time.Now()
	raw, err := r.invoker.Invoke(ctx, ai.Request{Prompt: prompt, Params: r.opts.Params})
	metrics.DefaultMetrics.RecordModelInvocation("interactive", err, time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("generate summary for %s: %w", jobName, err)
	}

	text := ai.ExtractText(raw)
	r.logger.Info().Str("job", jobName).Int("summary_bytes", len(text)).Msg("Summary generated")
	return text, nil
}
