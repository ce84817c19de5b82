package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel_crm",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path, and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "travel_crm",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InquiriesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel_crm",
			Name:      "inquiries_created_total",
			Help:      "Inquiries created by type.",
		},
		[]string{"type"},
	)

	StageChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel_crm",
			Name:      "stage_changes_total",
			Help:      "Stage transitions by target stage.",
		},
		[]string{"stage"},
	)

	PaymentsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel_crm",
			Name:      "payments_recorded_total",
			Help:      "Payments recorded by method.",
		},
		[]string{"method"},
	)
)

// Register registers all collectors. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			InquiriesCreated,
			StageChanges,
			PaymentsRecorded,
		)
	})
}
