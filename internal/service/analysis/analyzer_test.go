package analysis

import (
	"reflect"
	"testing"

	"audio-summary-pipeline/internal/models"
)

func TestAnalyze_HotelConversation(t *testing.T) {
	transcript := "spk_0: Welcome to Crystal Heights, this stay will be heavenly.\n" +
		"spk_1: Thank you, it is for our wedding anniversary.\n"

	got := Analyze(transcript)

	if !reflect.DeepEqual(got.Speakers, []string{"spk_0", "spk_1"}) {
		t.Errorf("speakers = %v", got.Speakers)
	}

	foundAnniversary := false
	for _, topic := range got.Topics {
		if topic == "Anniversary Celebration" {
			foundAnniversary = true
		}
	}
	if !foundAnniversary {
		t.Errorf("expected Anniversary Celebration in topics, got %v", got.Topics)
	}

	if got.Sentiment != models.SentimentPositive {
		t.Errorf("sentiment = %s, want Positive", got.Sentiment)
	}
}

func TestAnalyze_TopicOrderStable(t *testing.T) {
	transcript := "spk_0: The diamond suite has a moonlit pool and a pre authorization hold.\n"

	got := Analyze(transcript)
	want := []string{"Luxury Accommodation", "Special Amenities", "Payment and Charges"}
	if !reflect.DeepEqual(got.Topics, want) {
		t.Errorf("topics = %v, want %v (taxonomy order)", got.Topics, want)
	}
}

func TestAnalyze_TopicDetectionOrderIndependent(t *testing.T) {
	a := Analyze("spk_0: the moonlit pool near the diamond suite\n")
	b := Analyze("spk_0: the diamond suite near the moonlit pool\n")

	if !reflect.DeepEqual(a.Topics, b.Topics) {
		t.Errorf("permuted keywords changed topic set: %v vs %v", a.Topics, b.Topics)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	transcript := "spk_0: A fantastic and heavenly diamond suite, worth every dollar.\n"

	first := Analyze(transcript)
	second := Analyze(transcript)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze not idempotent: %+v vs %+v", first, second)
	}
}

func TestAnalyze_Sentiment(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       models.Sentiment
	}{
		{
			"three positive one negative",
			"spk_0: fantastic, heavenly and worth it despite my concern\n",
			models.SentimentPositive,
		},
		{
			"no keywords",
			"spk_0: we talked about the weather\n",
			models.SentimentNeutral,
		},
		{
			"negative outweighs",
			"spk_0: the excessive charges are a real concern\n",
			models.SentimentNegative,
		},
		{
			"tie defaults to neutral",
			"spk_0: a special rate but an excessive deposit\n",
			models.SentimentNeutral,
		},
		{
			// Substring counting is not tokenized; "heavenly" inside a
			// larger word still counts.
			"embedded word counts",
			"spk_0: the heavenlyish vibe\n",
			models.SentimentPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Analyze(tt.transcript).Sentiment; got != tt.want {
				t.Errorf("sentiment = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAnalyze_SpeakersDistinctAndSorted(t *testing.T) {
	transcript := "spk_1: one\nspk_0: two\nspk_1: three\nno speaker line\n"

	got := Analyze(transcript)
	if !reflect.DeepEqual(got.Speakers, []string{"spk_0", "spk_1"}) {
		t.Errorf("speakers = %v", got.Speakers)
	}
}
