// Package mock provides a mock transcription adapter for running the
// pipeline without cloud credentials. It simulates an asynchronous job that
// stays in progress for a configurable number of polls, then writes a canned
// two-speaker recognition result to the job's output location.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"audio-summary-pipeline/internal/models"
	"audio-summary-pipeline/internal/service/transcribe"
	"audio-summary-pipeline/internal/storage"
)

type trackedJob struct {
	req   transcribe.SubmitRequest
	polls int
	done  bool
}

// Adapter implements transcribe.Adapter with simulated jobs.
type Adapter struct {
	store       storage.ObjectStore
	pollsToDone int

	mu   sync.Mutex
	jobs map[string]*trackedJob
}

// New creates a mock adapter. A job completes on the pollsToDone-th status
// check (minimum 1).
func New(store storage.ObjectStore, pollsToDone int) *Adapter {
	if pollsToDone < 1 {
		pollsToDone = 1
	}
	return &Adapter{
		store:       store,
		pollsToDone: pollsToDone,
		jobs:        make(map[string]*trackedJob),
	}
}

// SubmitJob registers a simulated job.
func (a *Adapter) SubmitJob(ctx context.Context, req transcribe.SubmitRequest) error {
	if req.JobName == "" {
		return fmt.Errorf("empty job name")
	}
	if req.MediaURI == "" {
		return fmt.Errorf("empty media URI")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.jobs[req.JobName]; exists {
		return fmt.Errorf("job %q already submitted", req.JobName)
	}
	a.jobs[req.JobName] = &trackedJob{req: req}
	return nil
}

// GetJobStatus advances the simulated job. The completing poll writes the
// canned result before reporting done, so the result object is always
// present once DONE is observed.
func (a *Adapter) GetJobStatus(ctx context.Context, jobName string) (transcribe.JobState, error) {
	a.mu.Lock()
	job, ok := a.jobs[jobName]
	if !ok {
		a.mu.Unlock()
		return transcribe.StateError, fmt.Errorf("unknown job %q", jobName)
	}
	job.polls++
	polls := job.polls
	done := job.done
	req := job.req
	a.mu.Unlock()

	if done {
		return transcribe.StateDone, nil
	}
	if polls < a.pollsToDone {
		return transcribe.StateRunning, nil
	}

	result := CannedResult(jobName)
	data, err := json.Marshal(result)
	if err != nil {
		return transcribe.StateError, err
	}
	if err := a.store.Put(ctx, req.OutputBucket, req.OutputKey, data, "application/json"); err != nil {
		return transcribe.StateError, fmt.Errorf("write result: %w", err)
	}

	a.mu.Lock()
	job.done = true
	a.mu.Unlock()
	return transcribe.StateDone, nil
}

// CannedResult builds the simulated two-speaker recognition result: a short
// hotel booking exchange with diarization segments, word items carrying
// start times, and punctuation items carrying none.
func CannedResult(jobName string) *models.RecognitionResult {
	type token struct {
		start   string // empty for punctuation
		content string
		speaker string
	}
	tokens := []token{
		{"0.50", "Welcome", "spk_0"},
		{"0.90", "to", "spk_0"},
		{"1.20", "Crystal", "spk_0"},
		{"1.80", "Heights", "spk_0"},
		{"", ",", ""},
		{"2.40", "this", "spk_0"},
		{"2.70", "stay", "spk_0"},
		{"3.10", "will", "spk_0"},
		{"3.40", "be", "spk_0"},
		{"3.80", "heavenly", "spk_0"},
		{"", ".", ""},
		{"4.60", "Thank", "spk_1"},
		{"4.90", "you", "spk_1"},
		{"", ",", ""},
		{"5.30", "it", "spk_1"},
		{"5.50", "is", "spk_1"},
		{"5.70", "for", "spk_1"},
		{"5.90", "our", "spk_1"},
		{"6.20", "wedding", "spk_1"},
		{"6.70", "anniversary", "spk_1"},
		{"", ".", ""},
	}

	result := &models.RecognitionResult{
		JobName: jobName,
		Status:  "COMPLETED",
	}

	var (
		flat     string
		items    []models.Item
		segments []models.Segment
		current  *models.Segment
	)
	for _, tok := range tokens {
		if tok.start == "" {
			flat += tok.content
			items = append(items, models.Item{
				Type:         models.ItemTypePunctuation,
				Alternatives: []models.Alternative{{Content: tok.content}},
			})
			continue
		}

		if flat != "" {
			flat += " "
		}
		flat += tok.content
		items = append(items, models.Item{
			Type:         models.ItemTypePronunciation,
			StartTime:    tok.start,
			Alternatives: []models.Alternative{{Content: tok.content, Confidence: "0.99"}},
			SpeakerLabel: tok.speaker,
		})

		if current == nil || current.SpeakerLabel != tok.speaker {
			if current != nil {
				segments = append(segments, *current)
			}
			current = &models.Segment{SpeakerLabel: tok.speaker, StartTime: tok.start}
		}
		current.EndTime = tok.start
		current.Items = append(current.Items, models.SegmentItem{
			SpeakerLabel: tok.speaker,
			StartTime:    tok.start,
		})
	}
	if current != nil {
		segments = append(segments, *current)
	}

	result.Results.Transcripts = []models.Transcript{{Transcript: flat}}
	result.Results.Items = items
	result.Results.SpeakerLabels = &models.SpeakerLabels{Speakers: 2, Segments: segments}
	return result
}
