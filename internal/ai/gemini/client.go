// Package gemini implements the ai.Invoker interface on top of the
// Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"audio-summary-pipeline/internal/ai"
	"audio-summary-pipeline/internal/observability/logging"
)

const defaultCallTimeout = 120 * time.Second

// Client invokes a Gemini model and returns the raw response envelope.
type Client struct {
	client      *genai.Client
	model       string
	callTimeout time.Duration
	logger      zerolog.Logger
}

// New creates a Gemini-backed invoker for the given model. The API key is
// read from the environment by the SDK when apiKey is empty, and a
// non-positive callTimeout falls back to the default.
func New(ctx context.Context, model, apiKey string, callTimeout time.Duration) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &Client{
		client:      client,
		model:       model,
		callTimeout: callTimeout,
		logger:      logging.WithComponent("gemini"),
	}, nil
}

// generationConfig maps invocation params to the genai config. Temperature
// is always pinned because zero means deterministic, not unset; TopP and
// TopK are left to the model defaults when zero.
func generationConfig(params ai.Params) *genai.GenerateContentConfig {
	temperature := float32(params.Temperature)
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(params.MaxTokens),
		Temperature:     &temperature,
	}
	if params.TopP > 0 {
		topP := float32(params.TopP)
		cfg.TopP = &topP
	}
	if params.TopK > 0 {
		topK := float32(params.TopK)
		cfg.TopK = &topK
	}
	return cfg
}

// Invoke sends the prompt to the model and returns the serialized response.
func (c *Client) Invoke(ctx context.Context, req ai.Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	cfg := generationConfig(req.Params)

	start := time.Now()
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("prompt_bytes", len(req.Prompt)).
		Int("response_bytes", len(raw)).
		Dur("duration", time.Since(start)).
		Msg("Model invocation completed")

	return raw, nil
}
