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
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"task_type"},
	)

	// QuotesComputed counts scorer invocations by engine and verdict
	// (tier, health level, trust level, gift recommendation...).
	QuotesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_results_total",
			Help: "Scoring engine results by engine and outcome label",
		},
		[]string{"engine", "outcome"},
	)

	BrandVetCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandvet_cache_lookups_total",
			Help: "Brand vetting cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	BrandVetSignalFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandvet_signal_failures_total",
			Help: "External brand signal lookups that failed and were scored as missing",
		},
		[]string{"source"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Negotiation deliveries by channel and result",
		},
		[]string{"channel", "result"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limit_rejections_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
		[]string{"route"},
	)
)

// RecordResult increments QuotesComputed.
func RecordResult(engine, outcome string) {
	QuotesComputed.WithLabelValues(engine, outcome).Inc()
}
