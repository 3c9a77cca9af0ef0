// Package telemetry provides Prometheus instrumentation for the
// factorization engine: counters for factorizations, strategy attempts,
// oracle calls and cache lookups, plus a duration histogram. Metrics are
// purely observational; nothing here feeds back into the search.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controls the optional metrics endpoint.
type Config struct {
	// Enabled turns metric collection on.
	Enabled bool `koanf:"enabled"`

	// Addr is the optional listen address for the /metrics endpoint,
	// e.g. ":9464". Empty means collect but do not serve.
	Addr string `koanf:"addr"`
}

// DefaultConfig returns metrics-off defaults; the engine is usable as a
// plain library without any collector.
func DefaultConfig() Config {
	return Config{Enabled: false}
}

// Metrics owns the engine's Prometheus registry and instruments.
type Metrics struct {
	registry *prometheus.Registry

	Factorizations    prometheus.Counter
	FactorizeDuration prometheus.Histogram
	StrategyAttempts  *prometheus.CounterVec
	StrategyHits      *prometheus.CounterVec
	OracleCalls       prometheus.Counter
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
}

// New creates a registry with the engine's instruments registered. Each
// engine owns its own registry, so parallel engines in one process never
// collide on metric names.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Factorizations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "factord",
			Name:      "factorizations_total",
			Help:      "Completed top-level factorization requests.",
		}),
		FactorizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "factord",
			Name:      "factorize_duration_seconds",
			Help:      "Wall-clock duration of top-level factorizations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}),
		StrategyAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "factord",
			Name:      "strategy_attempts_total",
			Help:      "Strategy proposal attempts by strategy name.",
		}, []string{"strategy"}),
		StrategyHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "factord",
			Name:      "strategy_hits_total",
			Help:      "Verified candidate divisors by strategy name.",
		}, []string{"strategy"}),
		OracleCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "factord",
			Name:      "oracle_calls_total",
			Help:      "Primality oracle consultations.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "factord",
			Name:      "cache_hits_total",
			Help:      "Factorization cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "factord",
			Name:      "cache_misses_total",
			Help:      "Factorization cache misses.",
		}),
	}

	reg.MustRegister(
		m.Factorizations,
		m.FactorizeDuration,
		m.StrategyAttempts,
		m.StrategyHits,
		m.OracleCalls,
		m.CacheHits,
		m.CacheMisses,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler returns an http.Handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
