// Package metrics declares the prometheus counters the HTTP client and
// the backoff wrapper increment, following the NewCounterVec/MustRegister shape
// ghproxy.go uses for its own disk-cache gauges.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forgectl_cache_hits_total",
		Help: "Number of requests served from a fresh cache entry without contacting the origin.",
	}, []string{"provider"})

	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forgectl_cache_misses_total",
		Help: "Number of GET requests that found no usable cache entry and went to the origin.",
	}, []string{"provider"})

	RateLimitExceededTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forgectl_rate_limit_exceeded_total",
		Help: "Number of requests rejected locally or by the origin for exceeding a rate limit.",
	}, []string{"provider"})

	BackoffRetriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forgectl_backoff_retries_total",
		Help: "Number of retry attempts the backoff wrapper issued after a rate-limit or transport error.",
	}, []string{"provider"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forgectl_http_requests_total",
		Help: "Number of HTTP requests issued to a forge, by method and response status.",
	}, []string{"provider", "method", "status"})
)

// Register adds every collector above to reg. cmd/forgectl calls this
// once at startup before serving /metrics.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(CacheHitsTotal, CacheMissesTotal, RateLimitExceededTotal, BackoffRetriesTotal, HTTPRequestsTotal)
}
