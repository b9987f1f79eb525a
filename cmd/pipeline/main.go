// Command pipeline runs the interactive transcription flow end to end:
// upload an audio file, submit a transcription job, wait for it, print the
// speaker-labeled transcript, resolve a summary, and analyze the
// conversation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"audio-summary-pipeline/internal/ai"
	"audio-summary-pipeline/internal/app"
	"audio-summary-pipeline/internal/config"
	"audio-summary-pipeline/internal/events"
	"audio-summary-pipeline/internal/models"
	"audio-summary-pipeline/internal/observability/metrics"
	"audio-summary-pipeline/internal/service/analysis"
	"audio-summary-pipeline/internal/service/job"
	"audio-summary-pipeline/internal/service/summary"
	"audio-summary-pipeline/internal/service/transcribe"
	googlestt "audio-summary-pipeline/internal/service/transcribe/google"
	mockstt "audio-summary-pipeline/internal/service/transcribe/mock"
	"audio-summary-pipeline/internal/service/transcript"
	"audio-summary-pipeline/internal/storage"
)

func main() {
	audioPath := flag.String("file", "", "path to the audio file to transcribe")
	flag.Parse()

	if *audioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pipeline -file <audio file>")
		os.Exit(2)
	}

	cfg := config.Load()
	application := app.New(cfg)
	defer application.Shutdown()

	if err := run(context.Background(), application, *audioPath); err != nil {
		application.Logger.Error().Err(err).Msg("Pipeline failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.Application, audioPath string) error {
	cfg := application.Cfg

	store, err := application.NewStore(ctx)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}

	publisher := events.NewPublisher(&events.Config{
		Enabled:   cfg.Kafka.Enabled,
		Brokers:   cfg.Kafka.Brokers,
		Topic:     cfg.Kafka.Topic,
		Principal: cfg.Kafka.Principal,
	})
	defer publisher.Close()
	notifying := storage.WithNotifier(store, publisher)

	invoker, err := application.NewInvoker(ctx)
	if err != nil {
		return fmt.Errorf("create model invoker: %w", err)
	}

	adapter, err := newAdapter(ctx, cfg, notifying)
	if err != nil {
		return fmt.Errorf("create transcribe adapter: %w", err)
	}

	// Upload the audio object.
	audioKey := filepath.Base(audioPath)
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return fmt.Errorf("read audio file: %w", err)
	}
	err = notifying.Put(ctx, cfg.Storage.AudioBucket, audioKey, data, audioContentType(audioKey))
	metrics.DefaultMetrics.RecordUpload(len(data), err)
	if err != nil {
		return fmt.Errorf("upload audio: %w", err)
	}
	application.Logger.Info().
		Str("bucket", cfg.Storage.AudioBucket).
		Str("key", audioKey).
		Int("bytes", len(data)).
		Msg("Audio uploaded")

	// Submit and wait for the transcription job.
	coordinator := job.NewCoordinator(adapter, job.Options{
		OutputBucket:  cfg.Storage.AudioBucket,
		LanguageCode:  cfg.Transcribe.LanguageCode,
		SpeakerLabels: cfg.Transcribe.SpeakerLabels,
		MaxSpeakers:   cfg.Transcribe.MaxSpeakers,
	})

	mediaURI := fmt.Sprintf("gs://%s/%s", cfg.Storage.AudioBucket, audioKey)
	submitted, err := coordinator.Submit(ctx, mediaURI, audioKey)
	if err != nil {
		return err
	}

	status, err := waitForJob(ctx, application, coordinator, submitted.Name)
	if err != nil {
		return err
	}
	if status != job.StatusCompleted {
		return fmt.Errorf("job %s ended with status %s", submitted.Name, status)
	}

	// Reconstruct the speaker-labeled transcript.
	raw, err := notifying.Get(ctx, submitted.OutputBucket, submitted.ResultKey)
	if err != nil {
		return fmt.Errorf("read transcription result: %w", err)
	}
	result, err := models.ParseRecognitionResult(raw)
	if err != nil {
		return fmt.Errorf("parse transcription result: %w", err)
	}
	formatted := models.RenderTurns(transcript.Reconstruct(result))

	fmt.Println("--- Transcript ---")
	fmt.Print(formatted)

	// Resolve the summary: stored artifact first, model second.
	resolver := summary.NewResolver(notifying, invoker, summary.Options{
		SummaryBucket: cfg.Storage.TextBucket,
		Params: ai.Params{
			MaxTokens:   cfg.Model.MaxTokens,
			Temperature: cfg.Model.Temperature,
			TopP:        cfg.Model.TopP,
			TopK:        cfg.Model.TopK,
		},
	})
	resolution, err := resolver.Resolve(ctx, submitted.Name, formatted)
	if err != nil {
		return err
	}

	fmt.Printf("--- Summary (%s) ---\n", resolution.Source)
	fmt.Println(strings.TrimSpace(resolution.Text))

	// Analyze the conversation.
	insights := analysis.Analyze(formatted)
	fmt.Println("--- Analysis ---")
	fmt.Printf("Speakers:  %s\n", strings.Join(insights.Speakers, ", "))
	fmt.Printf("Topics:    %s\n", strings.Join(insights.Topics, ", "))
	fmt.Printf("Sentiment: %s\n", insights.Sentiment)

	return nil
}

// waitForJob polls the job until it reaches a terminal status, backing off
// between polls. Consecutive status check failures are tolerated up to the
// configured bound; a successful poll resets the count.
func waitForJob(ctx context.Context, application *app.Application, coordinator *job.Coordinator, jobName string) (job.Status, error) {
	cfg := application.Cfg.Poll
	logger := application.Logger.With().Str("jobName", jobName).Logger()

	start := time.Now()
	interval := cfg.Interval
	failures := 0

	for {
		status, err := coordinator.Poll(ctx, jobName)
		switch {
		case err != nil && errors.Is(err, job.ErrStatusCheck):
			failures++
			logger.Warn().Err(err).Int("consecutiveFailures", failures).Msg("Status check failed")
			if failures > cfg.MaxCheckFailures {
				metrics.DefaultMetrics.RecordJobTerminal(false, time.Since(start).Seconds())
				return status, fmt.Errorf("giving up after %d consecutive status check failures: %w", failures, err)
			}
		case err != nil:
			return status, err
		default:
			failures = 0
			logger.Info().Str("status", status.String()).Msg("Job status")
			if status.IsTerminal() {
				metrics.DefaultMetrics.RecordJobTerminal(status == job.StatusCompleted, time.Since(start).Seconds())
				return status, nil
			}
		}

		if time.Since(start) > cfg.MaxWait {
			metrics.DefaultMetrics.RecordJobTerminal(false, time.Since(start).Seconds())
			return job.StatusUnknown, fmt.Errorf("job %s did not finish within %s", jobName, cfg.MaxWait)
		}

		select {
		case <-ctx.Done():
			return job.StatusUnknown, ctx.Err()
		case <-time.After(interval):
		}

		interval = time.Duration(float64(interval) * cfg.BackoffFactor)
		if interval > cfg.MaxInterval {
			interval = cfg.MaxInterval
		}
	}
}

func newAdapter(ctx context.Context, cfg *config.Configuration, store storage.ObjectStore) (transcribe.Adapter, error) {
	switch cfg.Transcribe.Provider {
	case "google":
		return googlestt.New(ctx, store)
	case "mock":
		return mockstt.New(store, cfg.Transcribe.MockPollsToDone), nil
	default:
		return nil, fmt.Errorf("unknown transcribe provider %q", cfg.Transcribe.Provider)
	}
}

func audioContentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".flac":
		return "audio/flac"
	default:
		return "application/octet-stream"
	}
}
