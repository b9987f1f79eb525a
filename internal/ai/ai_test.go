package ai

import "testing"

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "candidates envelope",
			raw:  `{"candidates":[{"content":{"parts":[{"text":"The guests booked a suite."}]}}]}`,
			want: "The guests booked a suite.",
		},
		{
			name: "candidates envelope with multiple parts",
			raw:  `{"candidates":[{"content":{"parts":[{"text":"First half. "},{"text":"Second half."}]}}]}`,
			want: "First half. Second half.",
		},
		{
			name: "output message envelope",
			raw:  `{"output":{"message":{"content":[{"text":"Summary of the call."}]}}}`,
			want: "Summary of the call.",
		},
		{
			name: "unknown shape with text field",
			raw:  `{"result":{"text":"Recovered text"},"usage":{"tokens":12}}`,
			want: "Recovered text",
		},
		{
			name: "text field with escaped quotes",
			raw:  `{"text":"She said \"hello\" twice"}`,
			want: `She said "hello" twice`,
		},
		{
			name: "no text field falls back to raw",
			raw:  `{"status":"throttled"}`,
			want: `{"status":"throttled"}`,
		},
		{
			name: "non-json falls back to raw",
			raw:  "plain model output",
			want: "plain model output",
		},
		{
			name: "empty candidates falls through to raw",
			raw:  `{"candidates":[]}`,
			want: `{"candidates":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText([]byte(tt.raw)); got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTextPrefersCandidatesOverTextScan(t *testing.T) {
	raw := `{"candidates":[{"content":{"parts":[{"text":"real answer"}]}}],"debug":{"text":"decoy"}}`
	if got := ExtractText([]byte(raw)); got != "real answer" {
		t.Errorf("ExtractText() = %q, want %q", got, "real answer")
	}
}
