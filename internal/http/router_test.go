package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"audio-summary-pipeline/internal/models"
	"audio-summary-pipeline/internal/service/transcribe/mock"
	"audio-summary-pipeline/internal/storage"
)

const (
	rawBucket     = "audiotranscribe-bucket"
	summaryBucket = "summary-llm"
)

type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Put(_ context.Context, bucket, key string, data []byte, _ string) error {
	s.objects[bucket+"/"+key] = data
	return nil
}

func (s *memStore) Get(_ context.Context, bucket, key string) ([]byte, error) {
	data, ok := s.objects[bucket+"/"+key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (s *memStore) Head(_ context.Context, bucket, key string) (bool, error) {
	_, ok := s.objects[bucket+"/"+key]
	return ok, nil
}

func newTestAPI(store storage.ObjectStore) http.Handler {
	return NewAPI(store, Options{RawBucket: rawBucket, SummaryBucket: summaryBucket}).Router()
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetSummary(t *testing.T) {
	store := newMemStore()
	store.objects[summaryBucket+"/job-1-summary.txt"] = []byte("the summary")

	rec := get(t, newTestAPI(store), "/v1/jobs/job-1/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var artifact models.SummaryArtifact
	if err := json.Unmarshal(rec.Body.Bytes(), &artifact); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if artifact.JobName != "job-1" || artifact.Text != "the summary" {
		t.Errorf("artifact = %+v", artifact)
	}
}

func TestGetSummaryNotFound(t *testing.T) {
	rec := get(t, newTestAPI(newMemStore()), "/v1/jobs/absent/summary")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetTranscript(t *testing.T) {
	store := newMemStore()
	data, err := json.Marshal(mock.CannedResult("job-2"))
	if err != nil {
		t.Fatalf("marshal canned result: %v", err)
	}
	store.objects[rawBucket+"/job-2-transcription.json"] = data

	rec := get(t, newTestAPI(store), "/v1/jobs/job-2/transcript")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["jobName"] != "job-2" {
		t.Errorf("jobName = %q", resp["jobName"])
	}
	for _, speaker := range []string{"spk_0: ", "spk_1: "} {
		if !containsLine(resp["transcript"], speaker) {
			t.Errorf("transcript missing a %q turn:\n%s", speaker, resp["transcript"])
		}
	}
}

func TestGetAnalysis(t *testing.T) {
	store := newMemStore()
	data, err := json.Marshal(mock.CannedResult("job-3"))
	if err != nil {
		t.Fatalf("marshal canned result: %v", err)
	}
	store.objects[rawBucket+"/job-3-transcription.json"] = data

	rec := get(t, newTestAPI(store), "/v1/jobs/job-3/analysis")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body)
	}

	var result models.ConversationAnalysis
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Speakers) != 2 {
		t.Errorf("Speakers = %v, want two speakers", result.Speakers)
	}
	if result.Sentiment != models.SentimentPositive {
		t.Errorf("Sentiment = %q, want %q", result.Sentiment, models.SentimentPositive)
	}
}

func TestGetTranscriptNotFound(t *testing.T) {
	rec := get(t, newTestAPI(newMemStore()), "/v1/jobs/absent/transcript")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func containsLine(s, prefix string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
