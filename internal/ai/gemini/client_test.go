package gemini

import (
	"testing"

	"audio-summary-pipeline/internal/ai"
)

func TestGenerationConfig(t *testing.T) {
	cfg := generationConfig(ai.Params{MaxTokens: 1000, Temperature: 0.3, TopP: 0.9, TopK: 20})

	if cfg.MaxOutputTokens != 1000 {
		t.Errorf("MaxOutputTokens = %d, want 1000", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", cfg.Temperature)
	}
	if cfg.TopP == nil || *cfg.TopP != 0.9 {
		t.Errorf("TopP = %v, want 0.9", cfg.TopP)
	}
	if cfg.TopK == nil || *cfg.TopK != 20 {
		t.Errorf("TopK = %v, want 20", cfg.TopK)
	}
}

func TestGenerationConfigZeroSamplingFields(t *testing.T) {
	cfg := generationConfig(ai.Params{MaxTokens: 2048, Temperature: 0})

	// Temperature zero is deterministic sampling and must stay pinned.
	if cfg.Temperature == nil || *cfg.Temperature != 0 {
		t.Errorf("Temperature = %v, want pinned 0", cfg.Temperature)
	}
	if cfg.TopP != nil {
		t.Errorf("TopP = %v, want unset for zero", cfg.TopP)
	}
	if cfg.TopK != nil {
		t.Errorf("TopK = %v, want unset for zero", cfg.TopK)
	}
}
