// Package transcript converts raw recognition results into readable,
// speaker-segmented text.
//
// It carries two deliberately distinct algorithms: Reconstruct walks the
// diarization segments and resolves word items through a start-time lookup,
// while FlattenItems walks the flat item stream keyed on inline speaker
// labels. The interactive and event-triggered paths consume different
// upstream result shapes, so the two are kept separate rather than unified.
package transcript

import (
	"strings"

	"audio-summary-pipeline/internal/models"
)

// Reconstruct builds speaker turns from the diarization segments of a raw
// recognition result.
//
// Without speaker segments the fallback transcript is returned as a single
// unlabeled turn. With segments, consecutive same-speaker segments coalesce
// into one turn; a speaker reappearing later starts a new turn, never merged
// with an earlier one. Segment item references resolve through a start-time
// lookup built from the word items; duplicate start times keep the last item
// and unresolvable references are skipped silently. Punctuation items carry
// no start time, so they never enter the lookup and never appear in the
// output of this algorithm.
func Reconstruct(res *models.RecognitionResult) []models.SpeakerTurn {
	if res == nil {
		return nil
	}

	if res.Results.SpeakerLabels == nil {
		var fallback string
		if len(res.Results.Transcripts) > 0 {
			fallback = res.Results.Transcripts[0].Transcript
		}
		return []models.SpeakerTurn{{Text: fallback}}
	}

	// start time -> item; last write wins on duplicates.
	byStart := make(map[string]models.Item)
	for _, item := range res.Results.Items {
		if item.StartTime != "" {
			byStart[item.StartTime] = item
		}
	}

	var (
		turns          []models.SpeakerTurn
		currentSpeaker string
		text           strings.Builder
	)

	for _, seg := range res.Results.SpeakerLabels.Segments {
		if seg.SpeakerLabel != currentSpeaker && text.Len() > 0 {
			turns = append(turns, models.SpeakerTurn{Speaker: currentSpeaker, Text: text.String()})
			text.Reset()
		}
		currentSpeaker = seg.SpeakerLabel

		for _, ref := range seg.Items {
			item, ok := byStart[ref.StartTime]
			if !ok || len(item.Alternatives) == 0 {
				continue
			}
			text.WriteString(item.Alternatives[0].Content)
			text.WriteString(" ")
		}
	}

	if text.Len() > 0 {
		turns = append(turns, models.SpeakerTurn{Speaker: currentSpeaker, Text: text.String()})
	}
	return turns
}

// FlattenItems renders the flat item stream as speaker-prefixed text. A
// "\n{speaker}: " prefix is inserted whenever an item carries a speaker
// label differing from the running one; punctuation items trim the trailing
// space before attaching. Every token is followed by a single space.
func FlattenItems(res *models.RecognitionResult) string {
	if res == nil {
		return ""
	}

	var (
		out            strings.Builder
		currentSpeaker string
	)

	for _, item := range res.Results.Items {
		if len(item.Alternatives) == 0 {
			continue
		}
		content := item.Alternatives[0].Content

		if item.SpeakerLabel != "" && item.SpeakerLabel != currentSpeaker {
			currentSpeaker = item.SpeakerLabel
			out.WriteString("\n")
			out.WriteString(currentSpeaker)
			out.WriteString(": ")
		}

		if item.Type == models.ItemTypePunctuation {
			trimmed := strings.TrimRight(out.String(), " ")
			out.Reset()
			out.WriteString(trimmed)
		}

		out.WriteString(content)
		out.WriteString(" ")
	}

	return out.String()
}
