package job

import "testing"

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusSubmitted, "SUBMITTED"},
		{StatusInProgress, "IN_PROGRESS"},
		{StatusCompleted, "COMPLETED"},
		{StatusFailed, "FAILED"},
		{StatusUnknown, "UNKNOWN"},
		{Status(99), "INVALID(99)"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("Status(%d).String() = %s, want %s", tt.status, got, tt.expected)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusSubmitted, false},
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusUnknown, false},
	}

	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.terminal {
			t.Errorf("Status %s IsTerminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestKeys(t *testing.T) {
	if got := ResultKey("transcription-job-abc"); got != "transcription-job-abc-transcription.json" {
		t.Errorf("ResultKey = %s", got)
	}
	if got := SummaryKey("transcription-job-abc"); got != "transcription-job-abc-summary.txt" {
		t.Errorf("SummaryKey = %s", got)
	}

	name, ok := JobNameFromResultKey("transcription-job-abc-transcription.json")
	if !ok || name != "transcription-job-abc" {
		t.Errorf("JobNameFromResultKey = %q, %v", name, ok)
	}

	if _, ok := JobNameFromResultKey("some-other-object.txt"); ok {
		t.Error("expected non-result key to be rejected")
	}
}
