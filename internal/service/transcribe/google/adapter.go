// Package google provides a Google Cloud Speech-to-Text batch adapter.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/rs/zerolog/log"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"

	"audio-summary-pipeline/internal/models"
	"audio-summary-pipeline/internal/service/transcribe"
	"audio-summary-pipeline/internal/storage"
)

// encodings maps upload file extensions to recognition encodings.
var encodings = map[string]speechpb.RecognitionConfig_AudioEncoding{
	"wav":  speechpb.RecognitionConfig_LINEAR16,
	"mp3":  speechpb.RecognitionConfig_MP3,
	"flac": speechpb.RecognitionConfig_FLAC,
}

type trackedJob struct {
	opName       string
	outputBucket string
	outputKey    string
	written      bool
}

// Adapter implements transcribe.Adapter using Cloud Speech-to-Text
// long-running recognition. On completion it converts the provider response
// into the raw result JSON shape and writes it to the job's output location,
// which is what the rest of the pipeline consumes.
// Requires GOOGLE_APPLICATION_CREDENTIALS to be set.
type Adapter struct {
	client *speech.Client
	store  storage.ObjectStore

	mu   sync.Mutex
	jobs map[string]*trackedJob
}

// New creates a new Google batch transcription adapter. The store receives
// the raw result object when a job completes.
func New(ctx context.Context, store storage.ObjectStore) (*Adapter, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		client: c,
		store:  store,
		jobs:   make(map[string]*trackedJob),
	}, nil
}

// SubmitJob starts a long-running recognition operation for the uploaded
// audio, with speaker diarization when requested.
func (a *Adapter) SubmitJob(ctx context.Context, req transcribe.SubmitRequest) error {
	encoding, ok := encodings[req.MediaFormat]
	if !ok {
		return fmt.Errorf("unsupported media format %q", req.MediaFormat)
	}

	cfg := &speechpb.RecognitionConfig{
		Encoding:                   encoding,
		LanguageCode:               req.LanguageCode,
		EnableAutomaticPunctuation: true,
	}
	if req.SpeakerLabels {
		cfg.DiarizationConfig = &speechpb.SpeakerDiarizationConfig{
			EnableSpeakerDiarization: true,
			MaxSpeakerCount:          int32(req.MaxSpeakers),
		}
	}

	op, err := a.client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: cfg,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: req.MediaURI},
		},
	})
	if err != nil {
		return fmt.Errorf("start recognition: %w", err)
	}

	a.mu.Lock()
	a.jobs[req.JobName] = &trackedJob{
		opName:       op.Name(),
		outputBucket: req.OutputBucket,
		outputKey:    req.OutputKey,
	}
	a.mu.Unlock()

	log.Info().
		Str("jobName", req.JobName).
		Str("operation", op.Name()).
		Str("uri", req.MediaURI).
		Msg("Recognition operation started")
	return nil
}

// GetJobStatus polls the underlying operation. The first poll that observes
// completion writes the raw result object to the job's output location.
func (a *Adapter) GetJobStatus(ctx context.Context, jobName string) (transcribe.JobState, error) {
	a.mu.Lock()
	job, ok := a.jobs[jobName]
	a.mu.Unlock()
	if !ok {
		return transcribe.StateError, fmt.Errorf("unknown job %q", jobName)
	}

	op := a.client.LongRunningRecognizeOperation(job.opName)
	resp, err := op.Poll(ctx)
	if err != nil {
		if op.Done() {
			// Operation finished with a provider-side error.
			return transcribe.StateError, nil
		}
		return transcribe.StateError, fmt.Errorf("poll operation: %w", err)
	}
	if !op.Done() {
		return transcribe.StateRunning, nil
	}

	a.mu.Lock()
	written := job.written
	job.written = true
	a.mu.Unlock()

	if !written {
		result := convertResponse(jobName, resp)
		data, err := json.Marshal(result)
		if err != nil {
			return transcribe.StateError, fmt.Errorf("marshal result: %w", err)
		}
		if err := a.store.Put(ctx, job.outputBucket, job.outputKey, data, "application/json"); err != nil {
			a.mu.Lock()
			job.written = false
			a.mu.Unlock()
			return transcribe.StateError, fmt.Errorf("write result: %w", err)
		}
	}

	return transcribe.StateDone, nil
}

// convertResponse maps a recognition response to the raw result JSON shape.
// When diarization is enabled the provider repeats every word, with speaker
// tags, in the final result; that result is the source of the item stream
// and the speaker segments.
func convertResponse(jobName string, resp *speechpb.LongRunningRecognizeResponse) *models.RecognitionResult {
	result := &models.RecognitionResult{
		JobName: jobName,
		Status:  "COMPLETED",
	}

	var flat string
	for _, r := range resp.GetResults() {
		if len(r.GetAlternatives()) == 0 {
			continue
		}
		if flat != "" {
			flat += " "
		}
		flat += r.GetAlternatives()[0].GetTranscript()
	}
	result.Results.Transcripts = []models.Transcript{{Transcript: flat}}

	words := diarizedWords(resp)
	if len(words) == 0 {
		return result
	}

	var (
		items    []models.Item
		segments []models.Segment
		current  *models.Segment
	)
	for _, w := range words {
		start := formatOffset(w.GetStartTime().AsDuration().Seconds())
		speaker := "spk_" + strconv.Itoa(int(w.GetSpeakerTag())-1)

		items = append(items, models.Item{
			Type:         models.ItemTypePronunciation,
			StartTime:    start,
			EndTime:      formatOffset(w.GetEndTime().AsDuration().Seconds()),
			Alternatives: []models.Alternative{{Content: w.GetWord()}},
			SpeakerLabel: speaker,
		})

		if current == nil || current.SpeakerLabel != speaker {
			if current != nil {
				segments = append(segments, *current)
			}
			current = &models.Segment{SpeakerLabel: speaker, StartTime: start}
		}
		current.EndTime = formatOffset(w.GetEndTime().AsDuration().Seconds())
		current.Items = append(current.Items, models.SegmentItem{
			SpeakerLabel: speaker,
			StartTime:    start,
		})
	}
	if current != nil {
		segments = append(segments, *current)
	}

	result.Results.Items = items
	result.Results.SpeakerLabels = &models.SpeakerLabels{Segments: segments}
	return result
}

// diarizedWords returns the speaker-tagged word list. The provider attaches
// the complete tagged word sequence to the last result's top alternative.
func diarizedWords(resp *speechpb.LongRunningRecognizeResponse) []*speechpb.WordInfo {
	results := resp.GetResults()
	for i := len(results) - 1; i >= 0; i-- {
		alts := results[i].GetAlternatives()
		if len(alts) > 0 && len(alts[0].GetWords()) > 0 && alts[0].GetWords()[0].GetSpeakerTag() != 0 {
			return alts[0].GetWords()
		}
	}
	return nil
}

func formatOffset(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64)
}

// Close releases the underlying client.
func (a *Adapter) Close() error {
	return a.client.Close()
}
