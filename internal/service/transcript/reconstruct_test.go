package transcript

import (
	"testing"

	"audio-summary-pipeline/internal/models"
)

func word(start, content, speaker string) models.Item {
	return models.Item{
		Type:         models.ItemTypePronunciation,
		StartTime:    start,
		Alternatives: []models.Alternative{{Content: content, Confidence: "0.99"}},
		SpeakerLabel: speaker,
	}
}

func punct(content string) models.Item {
	return models.Item{
		Type:         models.ItemTypePunctuation,
		Alternatives: []models.Alternative{{Content: content}},
	}
}

func segment(speaker string, starts ...string) models.Segment {
	seg := models.Segment{SpeakerLabel: speaker}
	for _, s := range starts {
		seg.Items = append(seg.Items, models.SegmentItem{SpeakerLabel: speaker, StartTime: s})
	}
	return seg
}

func TestReconstruct_FallbackWithoutSegments(t *testing.T) {
	res := &models.RecognitionResult{
		Results: models.RecognitionResults{
			Transcripts: []models.Transcript{{Transcript: "just a flat transcript"}},
		},
	}

	turns := Reconstruct(res)
	if len(turns) != 1 {
		t.Fatalf("expected one turn, got %d", len(turns))
	}
	if turns[0].Speaker != "" {
		t.Errorf("fallback turn must be unlabeled, got %q", turns[0].Speaker)
	}
	if turns[0].Text != "just a flat transcript" {
		t.Errorf("fallback text modified: %q", turns[0].Text)
	}
}

func TestReconstruct_SegmentOrderAndReappearingSpeaker(t *testing.T) {
	res := &models.RecognitionResult{
		Results: models.RecognitionResults{
			Items: []models.Item{
				word("0.50", "Hello", "spk_0"),
				word("0.90", "there", "spk_0"),
				word("1.50", "Hi", "spk_1"),
				word("2.00", "Good", "spk_0"),
				word("2.40", "bye", "spk_0"),
			},
			SpeakerLabels: &models.SpeakerLabels{
				Segments: []models.Segment{
					segment("spk_0", "0.50", "0.90"),
					segment("spk_1", "1.50"),
					segment("spk_0", "2.00", "2.40"),
				},
			},
		},
	}

	turns := Reconstruct(res)
	if len(turns) != 3 {
		t.Fatalf("expected three turns, got %d: %+v", len(turns), turns)
	}

	want := []models.SpeakerTurn{
		{Speaker: "spk_0", Text: "Hello there "},
		{Speaker: "spk_1", Text: "Hi "},
		{Speaker: "spk_0", Text: "Good bye "},
	}
	for i, w := range want {
		if turns[i] != w {
			t.Errorf("turn %d = %+v, want %+v", i, turns[i], w)
		}
	}
}

func TestReconstruct_ConsecutiveSameSpeakerSegmentsCoalesce(t *testing.T) {
	res := &models.RecognitionResult{
		Results: models.RecognitionResults{
			Items: []models.Item{
				word("0.50", "one", "spk_0"),
				word("1.00", "two", "spk_0"),
			},
			SpeakerLabels: &models.SpeakerLabels{
				Segments: []models.Segment{
					segment("spk_0", "0.50"),
					segment("spk_0", "1.00"),
				},
			},
		},
	}

	turns := Reconstruct(res)
	if len(turns) != 1 {
		t.Fatalf("expected one coalesced turn, got %d", len(turns))
	}
	if turns[0].Text != "one two " {
		t.Errorf("coalesced text = %q", turns[0].Text)
	}
}

func TestReconstruct_UnresolvableReferencesSkipped(t *testing.T) {
	res := &models.RecognitionResult{
		Results: models.RecognitionResults{
			Items: []models.Item{
				word("0.50", "kept", "spk_0"),
				// Item with a start time but no alternatives.
				{Type: models.ItemTypePronunciation, StartTime: "0.90", SpeakerLabel: "spk_0"},
			},
			SpeakerLabels: &models.SpeakerLabels{
				Segments: []models.Segment{
					// "7.77" resolves to nothing; "0.90" resolves to an item
					// without alternatives. Both are skipped, not errors.
					segment("spk_0", "0.50", "7.77", "0.90"),
				},
			},
		},
	}

	turns := Reconstruct(res)
	if len(turns) != 1 {
		t.Fatalf("expected one turn, got %d", len(turns))
	}
	if turns[0].Text != "kept " {
		t.Errorf("text = %q, want %q", turns[0].Text, "kept ")
	}
}

func TestReconstruct_DuplicateStartTimeLastWriteWins(t *testing.T) {
	res := &models.RecognitionResult{
		Results: models.RecognitionResults{
			Items: []models.Item{
				word("0.50", "first", "spk_0"),
				word("0.50", "second", "spk_0"),
			},
			SpeakerLabels: &models.SpeakerLabels{
				Segments: []models.Segment{
					segment("spk_0", "0.50"),
				},
			},
		},
	}

	turns := Reconstruct(res)
	if len(turns) != 1 || turns[0].Text != "second " {
		t.Errorf("expected last duplicate to win, got %+v", turns)
	}
}

func TestReconstruct_PunctuationNeverAttributed(t *testing.T) {
	res := &models.RecognitionResult{
		Results: models.RecognitionResults{
			Items: []models.Item{
				word("0.50", "word", "spk_0"),
				punct("."),
			},
			SpeakerLabels: &models.SpeakerLabels{
				Segments: []models.Segment{
					segment("spk_0", "0.50"),
				},
			},
		},
	}

	turns := Reconstruct(res)
	if len(turns) != 1 || turns[0].Text != "word " {
		t.Errorf("punctuation leaked into segment output: %+v", turns)
	}
}

func TestRenderTurns(t *testing.T) {
	turns := []models.SpeakerTurn{
		{Speaker: "spk_0", Text: "Hello there "},
		{Speaker: "spk_1", Text: "Hi "},
	}
	got := models.RenderTurns(turns)
	want := "spk_0: Hello there \nspk_1: Hi \n"
	if got != want {
		t.Errorf("RenderTurns = %q, want %q", got, want)
	}

	unlabeled := models.RenderTurns([]models.SpeakerTurn{{Text: "flat"}})
	if unlabeled != "flat" {
		t.Errorf("unlabeled render = %q, want %q", unlabeled, "flat")
	}
}

func TestFlattenItems_SpeakerPrefixAndPunctuation(t *testing.T) {
	res := &models.RecognitionResult{
		Results: models.RecognitionResults{
			Items: []models.Item{
				word("0.50", "Hello", "spk_0"),
				word("0.90", "there", "spk_0"),
				punct(","),
				word("1.50", "Hi", "spk_1"),
				punct("."),
			},
		},
	}

	got := FlattenItems(res)
	want := "\nspk_0: Hello there, \nspk_1: Hi. "
	if got != want {
		t.Errorf("FlattenItems = %q, want %q", got, want)
	}
}

func TestFlattenItems_NoLabelsNoPrefix(t *testing.T) {
	res := &models.RecognitionResult{
		Results: models.RecognitionResults{
			Items: []models.Item{
				word("0.50", "plain", ""),
				word("0.90", "words", ""),
			},
		},
	}

	got := FlattenItems(res)
	if got != "plain words " {
		t.Errorf("FlattenItems = %q, want %q", got, "plain words ")
	}
}
