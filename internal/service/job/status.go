// Package job coordinates the lifecycle of asynchronous transcription jobs.
package job

import "fmt"

// Status represents the observed lifecycle state of a transcription job.
// The coordinator never transitions state itself; it only observes
// transitions performed by the external service.
type Status int

const (
	// StatusSubmitted - job handed to the service, no poll observed yet.
	StatusSubmitted Status = iota
	// StatusInProgress - service reports the job is running.
	StatusInProgress
	// StatusCompleted - terminal; the raw result object has been written.
	StatusCompleted
	// StatusFailed - terminal; the service reports the job failed.
	StatusFailed
	// StatusUnknown - a status check failed transiently; the job itself may
	// still be running. Distinct from StatusFailed so callers can retry the
	// check instead of declaring the job dead.
	StatusUnknown
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSubmitted:
		return "SUBMITTED"
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusCompleted:
		return "COMPLETED"
	case StatusFailed:
		return "FAILED"
	case StatusUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("INVALID(%d)", s)
	}
}

// IsTerminal returns true if no further transitions can occur.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
