// Package ai defines the language model invocation contract used by the
// summary resolver and the event-driven worker.
package ai

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
)

// Params controls sampling for a single model invocation.
type Params struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}

// Request is a single prompt sent to a language model.
type Request struct {
	Prompt string
	Params Params
}

// Invoker sends a prompt to a language model and returns the raw response
// envelope. Callers recover the generated text with ExtractText so that
// envelope differences between providers stay out of the call sites.
type Invoker interface {
	Invoke(ctx context.Context, req Request) ([]byte, error)
}

// candidatesEnvelope matches responses shaped like
// {"candidates":[{"content":{"parts":[{"text":"..."}]}}]}.
type candidatesEnvelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// messageEnvelope matches responses shaped like
// {"output":{"message":{"content":[{"text":"..."}]}}}.
type messageEnvelope struct {
	Output struct {
		Message struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

var textFieldPattern = regexp.MustCompile(`"text"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// ExtractText pulls the generated text out of a raw model response. It tries
// the known envelope shapes first, then falls back to scanning for a "text"
// field, and finally returns the raw payload unchanged so the caller always
// gets something usable to log or store.
func ExtractText(raw []byte) string {
	var cands candidatesEnvelope
	if err := json.Unmarshal(raw, &cands); err == nil && len(cands.Candidates) > 0 {
		var sb strings.Builder
		for _, part := range cands.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}

	var msg messageEnvelope
	if err := json.Unmarshal(raw, &msg); err == nil && len(msg.Output.Message.Content) > 0 {
		if text := msg.Output.Message.Content[0].Text; text != "" {
			return text
		}
	}

	if m := textFieldPattern.FindSubmatch(raw); m != nil {
		var unquoted string
		if err := json.Unmarshal([]byte(`"`+string(m[1])+`"`), &unquoted); err == nil {
			return unquoted
		}
		return string(m[1])
	}

	return string(raw)
}
