// Package observability holds application-level metrics and tracing wiring.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis command failures by operation so cache
	// degradation is visible even when the app fails open.
	RedisErrorRate = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devlink_redis_errors_total",
			Help: "Total number of Redis command errors",
		},
		[]string{"operation"},
	)

	// GithubRequestLatency observes outbound GitHub API call durations.
	GithubRequestLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "devlink_github_request_duration_seconds",
			Help:    "Latency of outbound GitHub API requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CacheHits counts cache-aside lookups by key class and outcome.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devlink_cache_lookups_total",
			Help: "Cache lookups partitioned by key class and hit/miss",
		},
		[]string{"class", "outcome"},
	)
)
