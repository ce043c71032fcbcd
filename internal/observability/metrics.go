package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitnessfinder_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement verb.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fitnessfinder_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// MethodCalls counts consistency-operation invocations by method and outcome.
	MethodCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitnessfinder_method_calls_total",
		Help: "Total consistency-operation invocations by method and outcome",
	}, []string{"method", "outcome"})

	// CardCacheLookups counts card cache lookups by card kind and result.
	CardCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitnessfinder_card_cache_lookups_total",
		Help: "Card cache lookups by kind (profile/session) and result (hit/miss)",
	}, []string{"kind", "result"})

	// SeedRuns counts bootstrap seed executions by outcome.
	SeedRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitnessfinder_seed_runs_total",
		Help: "Total seed loader executions by outcome",
	}, []string{"outcome"})
)

// ObserveMethod records the outcome of a consistency-operation invocation.
func ObserveMethod(method string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	MethodCalls.WithLabelValues(method, outcome).Inc()
}

// TrackQuery records the latency of a completed query, labeled by the
// statement's leading verb (select, insert, update, delete).
func TrackQuery(sql string, elapsed time.Duration) {
	DatabaseQueryLatency.WithLabelValues(queryVerb(sql)).Observe(elapsed.Seconds())
}

func queryVerb(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "other"
	}
	switch verb := strings.ToLower(fields[0]); verb {
	case "select", "insert", "update", "delete", "create", "alter", "drop":
		return verb
	default:
		return "other"
	}
}
