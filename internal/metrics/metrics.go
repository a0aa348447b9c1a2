// Package metrics holds Prometheus instruments that are used across the
// edge.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheHitTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_cache_hit_total",
			Help: "Requests answered from the rendered-HTML cache.",
		})

	CacheMissTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_cache_miss_total",
			Help: "Requests that fell through to directory lookup and render.",
		})

	CacheErrorTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_cache_error_total",
			Help: "Cache backend failures (reads degraded to miss, writes dropped).",
		})

	CacheEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_cache_evict_total",
			Help: "Entries removed by TTL sweep or entry-count pressure.",
		})

	RenderTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_render_total",
			Help: "Successful site renders.",
		})

	RenderErrorTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_render_error_total",
			Help: "Renders aborted by content-document validation or renderer faults.",
		})

	LookupNotFoundTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_lookup_not_found_total",
			Help: "Directory lookups that matched no site record.",
		})

	LookupErrorTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_lookup_error_total",
			Help: "Transient directory failures (unreachable, errored, or timed out).",
		})

	PurgeTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edge_purge_total",
			Help: "Cache keys purged through the purge gateway.",
		})
)

func init() {
	prometheus.MustRegister(
		CacheHitTotal,
		CacheMissTotal,
		CacheErrorTotal,
		CacheEvictTotal,
		RenderTotal,
		RenderErrorTotal,
		LookupNotFoundTotal,
		LookupErrorTotal,
		PurgeTotal,
	)
}
