package models

import "strings"

// SpeakerTurn is one coalesced span of a formatted transcript: everything one
// speaker said before the next speaker change.
type SpeakerTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// RenderTurns renders speaker turns as "speaker: text" lines, one per turn.
// An unlabeled turn renders as its text alone.
func RenderTurns(turns []SpeakerTurn) string {
	var b strings.Builder
	for _, t := range turns {
		if t.Speaker == "" {
			b.WriteString(t.Text)
			continue
		}
		b.WriteString(t.Speaker)
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// ObjectCreated is the storage-change notification delivered to the
// event-triggered summarizer, once per qualifying write.
type ObjectCreated struct {
	EventType string `json:"eventType"`
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

// EventTypeObjectCreated is the event type carried by ObjectCreated
// notifications.
const EventTypeObjectCreated = "storage.object.created"

// SummaryArtifact is a generated summary bound to the job that produced its
// transcript. Durable copies live in the object store under a key derived
// from the job name.
type SummaryArtifact struct {
	JobName string `json:"jobName"`
	Text    string `json:"text"`
}

// Sentiment is the overall polarity of a conversation.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// ConversationAnalysis is the derived, ephemeral analysis of a formatted
// transcript. Recomputed on every request, never persisted.
type ConversationAnalysis struct {
	Speakers  []string  `json:"speakers"`
	Topics    []string  `json:"topics"`
	Sentiment Sentiment `json:"sentiment"`
}
