// Package transcribe defines the interface for asynchronous batch
// speech-to-text providers.
package transcribe

import "context"

// JobState is the provider-reported state of a transcription job.
type JobState int

const (
	// StateQueued - job accepted, not yet running.
	StateQueued JobState = iota
	// StateRunning - job is being processed.
	StateRunning
	// StateDone - job finished; the result object has been written to the
	// configured output location.
	StateDone
	// StateError - job failed on the provider side.
	StateError
)

// String returns the string representation of the state.
func (s JobState) String() string {
	switch s {
	case StateQueued:
		return "QUEUED"
	case StateRunning:
		return "RUNNING"
	case StateDone:
		return "DONE"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SubmitRequest carries everything a provider needs to start a job.
type SubmitRequest struct {
	JobName       string
	MediaURI      string // provider-native URI of the uploaded audio
	MediaFormat   string // file extension of the upload (mp3, wav)
	LanguageCode  string
	OutputBucket  string // where the provider writes the raw result JSON
	OutputKey     string
	SpeakerLabels bool
	MaxSpeakers   int
}

// Adapter is the interface for batch transcription providers. Jobs run on
// the provider's own schedule; GetJobStatus is a pure read and safe to call
// repeatedly.
type Adapter interface {
	// SubmitJob starts an asynchronous transcription job. A rejected
	// submission is fatal for the request and is not retried here.
	SubmitJob(ctx context.Context, req SubmitRequest) error

	// GetJobStatus reports the current state of a previously submitted job.
	GetJobStatus(ctx context.Context, jobName string) (JobState, error)
}
