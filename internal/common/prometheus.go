package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	CronJobRunTotal            = "cron_job_runs_total"
	ChallengeTransitionTotal   = "challenge_transitions_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "path", "status_code"}),
		CronJobRunTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CronJobRunTotal,
			Help: "Count of cron job runs",
		}, []string{"job", "result"}),
		ChallengeTransitionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ChallengeTransitionTotal,
			Help: "Count of challenge status transitions",
		}, []string{"to"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "path", "status_code"}),
	}
)
