// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "audio_summary"

// Metrics holds all Prometheus metrics for the pipeline and the worker.
type Metrics struct {
	// Upload metrics
	UploadsTotal  prometheus.Counter
	UploadsFailed prometheus.Counter
	UploadBytes   prometheus.Counter

	// Transcription job metrics
	JobsSubmitted   prometheus.Counter
	JobsCompleted   prometheus.Counter
	JobsFailed      prometheus.Counter
	JobPollsTotal   prometheus.Counter
	JobPollErrors   prometheus.Counter
	JobWaitDuration prometheus.Histogram

	// Summary metrics
	SummariesTotal *prometheus.CounterVec // by source: cached, generated

	// Model invocation metrics
	ModelInvocations *prometheus.CounterVec // by path: interactive, event
	ModelErrors      *prometheus.CounterVec
	ModelLatency     prometheus.Histogram

	// Object store metrics
	StorageOps    *prometheus.CounterVec // by op: put, get, head
	StorageErrors *prometheus.CounterVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec

	// Event-triggered worker metrics
	EventsProcessed prometheus.Counter
	EventsSkipped   prometheus.Counter
	EventsFailed    prometheus.Counter
	EventLatency    prometheus.Histogram
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		UploadsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Total number of audio uploads",
		}),
		UploadsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_failed_total",
			Help:      "Total number of failed audio uploads",
		}),
		UploadBytes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_bytes_total",
			Help:      "Total audio bytes uploaded",
		}),

		JobsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_submitted_total",
			Help:      "Total number of transcription jobs submitted",
		}),
		JobsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_completed_total",
			Help:      "Total number of transcription jobs that completed",
		}),
		JobsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_failed_total",
			Help:      "Total number of transcription jobs that failed",
		}),
		JobPollsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_polls_total",
			Help:      "Total number of job status polls",
		}),
		JobPollErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_poll_errors_total",
			Help:      "Total number of job status polls that failed",
		}),
		JobWaitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_wait_duration_seconds",
			Help:      "Time from job submission to terminal status",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600, 900},
		}),

		SummariesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Total number of summaries resolved",
		}, []string{"source"}),

		ModelInvocations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_invocations_total",
			Help:      "Total number of language model invocations",
		}, []string{"path"}),
		ModelErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_errors_total",
			Help:      "Total number of failed language model invocations",
		}, []string{"path"}),
		ModelLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_latency_seconds",
			Help:      "Language model invocation latency in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		}),

		StorageOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_ops_total",
			Help:      "Total number of object store operations",
		}, []string{"op"}),
		StorageErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "Total number of failed object store operations",
		}, []string{"op"}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),

		EventsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_processed_total",
			Help:      "Total number of storage events summarized",
		}),
		EventsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_skipped_total",
			Help:      "Total number of storage events ignored (unrecognized key)",
		}),
		EventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of storage events that failed processing",
		}),
		EventLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_latency_seconds",
			Help:      "End-to-end latency of event-triggered summarization",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
	}
}

// RecordUpload records an audio upload attempt.
func (m *Metrics) RecordUpload(bytes int, err error) {
	m.UploadsTotal.Inc()
	if err != nil {
		m.UploadsFailed.Inc()
		return
	}
	m.UploadBytes.Add(float64(bytes))
}

// RecordJobSubmitted records a transcription job submission.
func (m *Metrics) RecordJobSubmitted() {
	m.JobsSubmitted.Inc()
}

// RecordJobTerminal records a job reaching a terminal status.
func (m *Metrics) RecordJobTerminal(completed bool, waitSeconds float64) {
	m.JobWaitDuration.Observe(waitSeconds)
	if completed {
		m.JobsCompleted.Inc()
	} else {
		m.JobsFailed.Inc()
	}
}

// RecordJobPoll records a status poll attempt.
func (m *Metrics) RecordJobPoll(err error) {
	m.JobPollsTotal.Inc()
	if err != nil {
		m.JobPollErrors.Inc()
	}
}

// RecordSummary records a resolved summary by source.
func (m *Metrics) RecordSummary(source string) {
	m.SummariesTotal.WithLabelValues(source).Inc()
}

// RecordModelInvocation records a language model call.
func (m *Metrics) RecordModelInvocation(path string, err error, latencySeconds float64) {
	m.ModelInvocations.WithLabelValues(path).Inc()
	m.ModelLatency.Observe(latencySeconds)
	if err != nil {
		m.ModelErrors.WithLabelValues(path).Inc()
	}
}

// RecordStorageOp records an object store operation.
func (m *Metrics) RecordStorageOp(op string, err error) {
	m.StorageOps.WithLabelValues(op).Inc()
	if err != nil {
		m.StorageErrors.WithLabelValues(op).Inc()
	}
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic).Inc()
	}
}

// RecordEvent records the outcome of one storage event.
func (m *Metrics) RecordEvent(outcome string, latencySeconds float64) {
	switch outcome {
	case "processed":
		m.EventsProcessed.Inc()
		m.EventLatency.Observe(latencySeconds)
	case "skipped":
		m.EventsSkipped.Inc()
	case "failed":
		m.EventsFailed.Inc()
		m.EventLatency.Observe(latencySeconds)
	}
}
