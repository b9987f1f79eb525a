package job

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"audio-summary-pipeline/internal/observability/metrics"
	"audio-summary-pipeline/internal/service/transcribe"
)

// Errors reported by the coordinator.
var (
	// ErrSubmission - the service rejected the job. Fatal for the request,
	// not retried automatically.
	ErrSubmission = errors.New("job submission failed")
	// ErrStatusCheck - a status poll could not reach the service. The job
	// may still be running.
	ErrStatusCheck = errors.New("job status check failed")
)

const (
	jobNamePrefix = "transcription-job-"
	// ResultSuffix is the suffix of every raw result key. The event-triggered
	// summarizer recognizes result objects by it.
	ResultSuffix = "-transcription.json"
	// SummarySuffix is the suffix of every summary artifact key. Both the
	// interactive and the event-triggered writers use the same convention, so
	// the artifact is idempotently overwritten, never duplicated.
	SummarySuffix = "-summary.txt"
)

// ResultKey returns the deterministic raw result key for a job.
func ResultKey(jobName string) string {
	return jobName + ResultSuffix
}

// SummaryKey returns the deterministic summary artifact key for a job.
func SummaryKey(jobName string) string {
	return jobName + SummarySuffix
}

// JobNameFromResultKey derives the job name from a raw result key. Returns
// false when the key does not carry the result suffix.
func JobNameFromResultKey(key string) (string, bool) {
	if !strings.HasSuffix(key, ResultSuffix) {
		return "", false
	}
	return strings.TrimSuffix(key, ResultSuffix), true
}

// Job binds a submitted transcription job to its input and output locations.
type Job struct {
	Name         string
	InputKey     string
	OutputBucket string
	ResultKey    string
}

// Coordinator submits jobs to a transcription provider and reads their
// status. The wait loop between polls belongs to the caller.
type Coordinator struct {
	adapter       transcribe.Adapter
	outputBucket  string
	languageCode  string
	speakerLabels bool
	maxSpeakers   int
	metrics       *metrics.Metrics
}

// Options configure job submission defaults.
type Options struct {
	OutputBucket  string
	LanguageCode  string
	SpeakerLabels bool
	MaxSpeakers   int
}

// NewCoordinator creates a coordinator backed by the given provider adapter.
func NewCoordinator(adapter transcribe.Adapter, opts Options) *Coordinator {
	return &Coordinator{
		adapter:       adapter,
		outputBucket:  opts.OutputBucket,
		languageCode:  opts.LanguageCode,
		speakerLabels: opts.SpeakerLabels,
		maxSpeakers:   opts.MaxSpeakers,
		metrics:       metrics.DefaultMetrics,
	}
}

// Submit generates a fresh job name, binds it to the input and a
// deterministic result location, and hands off to the provider.
func (c *Coordinator) Submit(ctx context.Context, mediaURI, inputKey string) (*Job, error) {
	name := jobNamePrefix + uuid.NewString()

	format := ""
	if i := strings.LastIndex(inputKey, "."); i >= 0 {
		format = strings.ToLower(inputKey[i+1:])
	}

	j := &Job{
		Name:         name,
		InputKey:     inputKey,
		OutputBucket: c.outputBucket,
		ResultKey:    ResultKey(name),
	}

	err := c.adapter.SubmitJob(ctx, transcribe.SubmitRequest{
		JobName:       name,
		MediaURI:      mediaURI,
		MediaFormat:   format,
		LanguageCode:  c.languageCode,
		OutputBucket:  c.outputBucket,
		OutputKey:     j.ResultKey,
		SpeakerLabels: c.speakerLabels,
		MaxSpeakers:   c.maxSpeakers,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	c.metrics.RecordJobSubmitted()
	log.Info().
		Str("jobName", name).
		Str("inputKey", inputKey).
		Str("resultKey", j.ResultKey).
		Msg("Transcription job submitted")
	return j, nil
}

// Poll reads the job's current status. A transient provider error maps to
// StatusUnknown plus a wrapped ErrStatusCheck, never to StatusFailed, so
// callers can tell a flaky check from a dead job.
func (c *Coordinator) Poll(ctx context.Context, jobName string) (Status, error) {
	state, err := c.adapter.GetJobStatus(ctx, jobName)
	c.metrics.RecordJobPoll(err)
	if err != nil {
		return StatusUnknown, fmt.Errorf("%w: %v", ErrStatusCheck, err)
	}

	switch state {
	case transcribe.StateQueued:
		return StatusSubmitted, nil
	case transcribe.StateRunning:
		return StatusInProgress, nil
	case transcribe.StateDone:
		return StatusCompleted, nil
	case transcribe.StateError:
		return StatusFailed, nil
	default:
		return StatusUnknown, fmt.Errorf("%w: unrecognized provider state %v", ErrStatusCheck, state)
	}
}
