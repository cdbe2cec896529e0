package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapgram_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapgram_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PagesServed counts cursor pages served per collection.
	PagesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapgram_pages_served_total",
		Help: "Total number of cursor pages served by collection",
	}, []string{"collection"})

	// MediaObjects counts media store operations by kind and outcome.
	MediaObjects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapgram_media_objects_total",
		Help: "Total media store operations by kind and outcome",
	}, []string{"operation", "outcome"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
