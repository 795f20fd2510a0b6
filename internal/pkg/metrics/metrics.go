package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubbooking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubbooking_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AvailabilityQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubbooking_availability_queries_total",
			Help: "Total number of availability queries",
		},
		[]string{"scope"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubbooking_bookings_total",
			Help: "Total number of booking mutations",
		},
		[]string{"action"},
	)

	StatsRecomputeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubbooking_stats_recompute_total",
			Help: "Total number of per-date statistics recomputations",
		},
		[]string{"result"},
	)

	StatsCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubbooking_stats_cache_hits_total",
			Help: "Daily statistics cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordAvailabilityQuery(scope string) {
	AvailabilityQueriesTotal.WithLabelValues(scope).Inc()
}

func RecordBooking(action string) {
	BookingsTotal.WithLabelValues(action).Inc()
}

func RecordStatsRecompute(result string) {
	StatsRecomputeTotal.WithLabelValues(result).Inc()
}

func RecordStatsCacheLookup(outcome string) {
	StatsCacheHitsTotal.WithLabelValues(outcome).Inc()
}
