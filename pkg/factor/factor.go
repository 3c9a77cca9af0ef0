// Package factor is the public facade over the factorization engine. It
// accepts native integers, decimal strings, or *big.Int values, and exposes
// the field pattern, resonance, primality, and factorization operations.
//
// An Engine owns its caches, logger, and metrics registry; independent
// engines share nothing. Construct one per process or per workload and
// reuse it: the caches only pay off across calls.
package factor

import (
	"context"
	"math/big"
	"net/http"

	"github.com/fyrsmithlabs/factord/internal/config"
	"github.com/fyrsmithlabs/factord/internal/logging"
	"github.com/fyrsmithlabs/factord/internal/orchestrator"
	"github.com/fyrsmithlabs/factord/internal/telemetry"
)

// PatternWidth is the number of positions in a field pattern.
const PatternWidth = 8

// Pattern is the fixed-width periodic fingerprint of a value: position i
// is active iff bit i of (value mod 256) is set. Pattern(v) equals
// Pattern(v mod 256) for every v.
type Pattern [PatternWidth]bool

// Constants is the fixed table of field constants, one per pattern
// position, all strictly positive.
type Constants [PatternWidth]float64

// Result is the outcome of a factorization: ascending factors greater
// than 1 whose product equals the input, a confidence in [0, 1], the
// winning strategy's name, and the search iteration count.
//
// Confidence below 1.0 marks a factor that is only
// irreducible-by-heuristics; it is never a primality claim. Callers who
// need a guarantee must ask IsPrime.
type Result struct {
	Factors    []*big.Int
	Confidence float64
	Strategy   string
	Iterations uint64
}

// Options configures an Engine.
type Options struct {
	// ConfigFile is an optional YAML configuration path. Environment
	// variables with the FACTORD_ prefix override it.
	ConfigFile string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Silent discards all logs, for embedding the engine as a library.
	Silent bool
}

// Engine is the public entry point.
type Engine struct {
	cfg     *config.Config
	orch    *orchestrator.Orchestrator
	log     *logging.Logger
	metrics *telemetry.Metrics
}

// New creates an engine from options.
func New(opts Options) (*Engine, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	var log *logging.Logger
	if opts.Silent {
		log = logging.Nop()
	} else {
		log, err = logging.New(cfg.Logging)
		if err != nil {
			return nil, err
		}
	}

	metrics := telemetry.New()
	orch, err := orchestrator.New(cfg, log, metrics)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, orch: orch, log: log, metrics: metrics}, nil
}

// FieldPattern returns the field pattern of value.
func (e *Engine) FieldPattern(value any) (Pattern, error) {
	n, err := parse(value)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern(e.orch.Pattern(n)), nil
}

// FieldConstants returns the engine's constant table.
func (e *Engine) FieldConstants() Constants {
	return Constants(e.orch.Constants())
}

// Resonance returns the resonance score of value, always positive.
func (e *Engine) Resonance(value any) (float64, error) {
	n, err := parse(value)
	if err != nil {
		return 0, err
	}
	return e.orch.Resonance(n), nil
}

// IsPrime reports whether value is prime. This is the authoritative
// primality answer; field and resonance signals are advisory only.
func (e *Engine) IsPrime(value any) (bool, error) {
	n, err := parse(value)
	if err != nil {
		return false, err
	}
	return e.orch.IsPrime(n), nil
}

// Factorize decomposes value. Values below 2 yield an empty factor list
// (a degenerate result, not an error). Each call is tagged with a request
// ID for log correlation; pass a context prepared with WithRequestID to
// supply your own.
func (e *Engine) Factorize(ctx context.Context, value any) (*Result, error) {
	n, err := parse(value)
	if err != nil {
		return nil, err
	}
	if logging.RequestIDFromContext(ctx) == "" {
		ctx = logging.WithRequestID(ctx, "")
	}
	res, err := e.orch.Factorize(ctx, n)
	if err != nil {
		return nil, err
	}
	return &Result{
		Factors:    res.Factors,
		Confidence: res.Confidence,
		Strategy:   res.Strategy,
		Iterations: res.Iterations,
	}, nil
}

// ClearCache discards every memoized entry, bounding memory. Results are
// unaffected; only speed changes.
func (e *Engine) ClearCache() {
	e.orch.ClearCaches()
}

// CacheStats reports cumulative factorization cache hits and misses.
func (e *Engine) CacheStats() (hits, misses uint64) {
	stats := e.orch.CacheStats()
	return stats.Hits, stats.Misses
}

// MetricsHandler serves the engine's Prometheus registry.
func (e *Engine) MetricsHandler() http.Handler {
	return e.metrics.Handler()
}

// Close flushes the logger.
func (e *Engine) Close() error {
	return e.log.Sync()
}
