// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Configuration holds all settings for the pipeline and the worker.
type Configuration struct {
	Service       ServiceConfig
	Storage       StorageConfig
	Transcribe    TranscribeConfig
	Poll          PollConfig
	Model         ModelConfig
	Kafka         KafkaConfig
	Worker        WorkerConfig
	Observability ObservabilityConfig
}

// ServiceConfig identifies the running process.
type ServiceConfig struct {
	Principal string
}

// StorageConfig selects the object store backend and its buckets.
type StorageConfig struct {
	Backend     string // "gcs" or "local"
	AudioBucket string
	TextBucket  string
	LocalRoot   string // root directory for the local backend
}

// TranscribeConfig selects the transcription provider and job settings.
type TranscribeConfig struct {
	Provider        string // "google" or "mock"
	LanguageCode    string
	SpeakerLabels   bool
	MaxSpeakers     int
	MockPollsToDone int // polls before the mock provider completes a job
}

// PollConfig controls the interactive job status wait loop.
type PollConfig struct {
	Interval         time.Duration // initial poll interval
	BackoffFactor    float64       // multiplier applied after each poll
	MaxInterval      time.Duration // backoff cap
	MaxWait          time.Duration // total wait bound before giving up
	MaxCheckFailures int           // consecutive status check errors tolerated
}

// ModelConfig holds language model invocation settings for both paths.
type ModelConfig struct {
	Provider      string // "gemini" or "mock"
	ModelID       string
	APIKey        string
	InvokeTimeout time.Duration

	// On-demand summary path (interactive).
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int

	// Event-triggered path: maximally deterministic, larger output cap.
	EventMaxTokens   int
	EventTemperature float64
	EventTemplate    string // path to the event prompt template
}

// KafkaConfig holds object-created notification transport settings.
type KafkaConfig struct {
	Enabled   bool
	Brokers   []string
	Topic     string
	GroupID   string
	Principal string
}

// WorkerConfig holds event-triggered summarizer settings.
type WorkerConfig struct {
	Trigger      string // "kafka" or "watch"
	ResultSuffix string // raw result keys must end with this
	APIPort      string
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel    string
	MetricsAddr string
}

// Load reads configuration from the environment, falling back to defaults
// for unset or unparseable values.
func Load() *Configuration {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-audio-summary")

	return &Configuration{
		Service: ServiceConfig{
			Principal: principal,
		},
		Storage: StorageConfig{
			Backend:     envOrDefault("STORAGE_BACKEND", "local"),
			AudioBucket: envOrDefault("STORAGE_AUDIO_BUCKET", "audiotranscribe-bucket"),
			TextBucket:  envOrDefault("STORAGE_TEXT_BUCKET", "summary-llm"),
			LocalRoot:   envOrDefault("STORAGE_LOCAL_ROOT", "./data"),
		},
		Transcribe: TranscribeConfig{
			Provider:        envOrDefault("TRANSCRIBE_PROVIDER", "mock"),
			LanguageCode:    envOrDefault("TRANSCRIBE_LANGUAGE_CODE", "en-US"),
			SpeakerLabels:   envOrDefaultBool("TRANSCRIBE_SPEAKER_LABELS", true),
			MaxSpeakers:     envOrDefaultInt("TRANSCRIBE_MAX_SPEAKERS", 2),
			MockPollsToDone: envOrDefaultInt("TRANSCRIBE_MOCK_POLLS_TO_DONE", 3),
		},
		Poll: PollConfig{
			Interval:         envOrDefaultDuration("POLL_INTERVAL", 5*time.Second),
			BackoffFactor:    envOrDefaultFloat("POLL_BACKOFF_FACTOR", 1.5),
			MaxInterval:      envOrDefaultDuration("POLL_MAX_INTERVAL", 30*time.Second),
			MaxWait:          envOrDefaultDuration("POLL_MAX_WAIT", 15*time.Minute),
			MaxCheckFailures: envOrDefaultInt("POLL_MAX_CHECK_FAILURES", 3),
		},
		Model: ModelConfig{
			Provider:         envOrDefault("MODEL_PROVIDER", "gemini"),
			ModelID:          envOrDefault("MODEL_ID", "gemini-2.5-flash"),
			APIKey:           envOrDefault("MODEL_API_KEY", ""),
			InvokeTimeout:    envOrDefaultDuration("MODEL_INVOKE_TIMEOUT", 60*time.Second),
			MaxTokens:        envOrDefaultInt("MODEL_MAX_TOKENS", 1000),
			Temperature:      envOrDefaultFloat("MODEL_TEMPERATURE", 0.3),
			TopP:             envOrDefaultFloat("MODEL_TOP_P", 0.9),
			TopK:             envOrDefaultInt("MODEL_TOP_K", 20),
			EventMaxTokens:   envOrDefaultInt("MODEL_EVENT_MAX_TOKENS", 2048),
			EventTemperature: envOrDefaultFloat("MODEL_EVENT_TEMPERATURE", 0),
			EventTemplate:    envOrDefault("MODEL_EVENT_TEMPLATE", "prompts/summary_event.tmpl"),
		},
		Kafka: KafkaConfig{
			Enabled:   envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:   envOrDefaultList("KAFKA_BROKERS", nil),
			Topic:     envOrDefault("KAFKA_TOPIC", "storage.object.created"),
			GroupID:   envOrDefault("KAFKA_GROUP_ID", "summary-worker"),
			Principal: envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Worker: WorkerConfig{
			Trigger:      envOrDefault("WORKER_TRIGGER", "watch"),
			ResultSuffix: envOrDefault("WORKER_RESULT_SUFFIX", "-transcription.json"),
			APIPort:      envOrDefault("WORKER_API_PORT", "8080"),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			MetricsAddr: envOrDefault("METRICS_ADDR", ":9090"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
