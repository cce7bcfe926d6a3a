// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	AssistantQuestionsAnswered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_questions_answered_total",
			Help: "Questions answered by the FAQ assistant, by confidence label",
		},
		[]string{"confidence_label", "source"},
	)

	AssistantRetrievalCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_retrieval_candidates",
			Help:    "Candidate FAQs surviving the relevance floor per retrieval",
			Buckets: prometheus.LinearBuckets(0, 1, 8),
		},
		[]string{"role"},
	)

	AssistantCorpusErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_corpus_read_errors_total",
			Help: "FAQ corpus reads that failed and degraded to an empty outcome",
		},
	)
)
