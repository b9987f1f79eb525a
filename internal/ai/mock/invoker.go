// Package mock provides an in-memory ai.Invoker for local runs and tests.
package mock

import (
	"context"
	"encoding/json"
	"sync"

	"audio-summary-pipeline/internal/ai"
)

// Invoker returns a canned response for every prompt and records the
// requests it receives.
type Invoker struct {
	mu       sync.Mutex
	requests []ai.Request

	// Response is returned verbatim when set. When nil, a minimal
	// candidates envelope wrapping Text is returned instead.
	Response []byte
	// Text is the generated text used when Response is nil.
	Text string
	// Err, when set, is returned by every invocation.
	Err error
}

// New creates a mock invoker that answers every prompt with text.
func New(text string) *Invoker {
	return &Invoker{Text: text}
}

// Invoke records the request and returns the configured response.
func (m *Invoker) Invoke(_ context.Context, req ai.Request) ([]byte, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response != nil {
		return m.Response, nil
	}

	envelope := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"parts": []map[string]string{{"text": m.Text}},
			}},
		},
	}
	return json.Marshal(envelope)
}

// Requests returns a copy of the recorded invocations.
func (m *Invoker) Requests() []ai.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ai.Request, len(m.requests))
	copy(out, m.requests)
	return out
}
