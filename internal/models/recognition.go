// Package models defines the data structures shared across the pipeline.
package models

import "encoding/json"

// Item types emitted by the transcription service.
const (
	ItemTypePronunciation = "pronunciation"
	ItemTypePunctuation   = "punctuation"
)

// RecognitionResult is the raw JSON object a completed transcription job
// writes to the object store.
type RecognitionResult struct {
	JobName string             `json:"jobName,omitempty"`
	Status  string             `json:"status,omitempty"`
	Results RecognitionResults `json:"results"`
}

// RecognitionResults holds the word-level items and optional speaker
// diarization produced by the service.
type RecognitionResults struct {
	Transcripts   []Transcript   `json:"transcripts,omitempty"`
	Items         []Item         `json:"items"`
	SpeakerLabels *SpeakerLabels `json:"speaker_labels,omitempty"`
}

// Transcript is the flat fallback transcript, present even when no speaker
// segmentation was requested.
type Transcript struct {
	Transcript string `json:"transcript"`
}

// Item is a single recognized token. Pronunciation items carry a start time;
// punctuation items do not.
type Item struct {
	Type         string        `json:"type"`
	StartTime    string        `json:"start_time,omitempty"`
	EndTime      string        `json:"end_time,omitempty"`
	Alternatives []Alternative `json:"alternatives"`
	SpeakerLabel string        `json:"speaker_label,omitempty"`
}

// Alternative is one recognition hypothesis for an item. The first entry is
// the top hypothesis.
type Alternative struct {
	Confidence string `json:"confidence,omitempty"`
	Content    string `json:"content"`
}

// SpeakerLabels holds the diarization segments, present only when speaker
// labels were requested and available.
type SpeakerLabels struct {
	Speakers int       `json:"speakers,omitempty"`
	Segments []Segment `json:"segments"`
}

// Segment is a contiguous span attributed to one speaker. Its items reference
// word items by start time.
type Segment struct {
	SpeakerLabel string        `json:"speaker_label"`
	StartTime    string        `json:"start_time,omitempty"`
	EndTime      string        `json:"end_time,omitempty"`
	Items        []SegmentItem `json:"items"`
}

// SegmentItem references a word item within a segment by its start time.
type SegmentItem struct {
	SpeakerLabel string `json:"speaker_label,omitempty"`
	StartTime    string `json:"start_time"`
}

// ParseRecognitionResult decodes a raw result object.
func ParseRecognitionResult(data []byte) (*RecognitionResult, error) {
	var res RecognitionResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
