package orchestrator

import (
	"context"
	"errors"
	"math/big"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/factord/internal/cache"
	"github.com/fyrsmithlabs/factord/internal/carry"
	"github.com/fyrsmithlabs/factord/internal/config"
	"github.com/fyrsmithlabs/factord/internal/field"
	"github.com/fyrsmithlabs/factord/internal/logging"
	"github.com/fyrsmithlabs/factord/internal/numeric"
	"github.com/fyrsmithlabs/factord/internal/oracle"
	"github.com/fyrsmithlabs/factord/internal/resonance"
	"github.com/fyrsmithlabs/factord/internal/strategy"
	"github.com/fyrsmithlabs/factord/internal/telemetry"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Orchestrator owns the full factorization pipeline and its caches. It is
// constructed explicitly and carries no package-level state; independent
// orchestrators never share anything.
type Orchestrator struct {
	cfg       *config.Config
	substrate *field.Substrate
	resonance *resonance.Engine
	analyzer  *carry.Analyzer
	oracle    *oracle.Oracle

	strategies  []strategy.Strategy
	smallPrimes []*big.Int

	patterns       *cache.Store[field.Pattern]
	resonances     *cache.Store[float64]
	primality      *cache.Store[bool]
	factorizations *cache.Store[*FactorizationResult]

	log     *logging.Logger
	metrics *telemetry.Metrics
}

// New wires an orchestrator from config. The logger and metrics may not be
// nil; use logging.Nop and a fresh telemetry.New for silent operation.
func New(cfg *config.Config, log *logging.Logger, metrics *telemetry.Metrics) (*Orchestrator, error) {
	substrate, err := field.NewSubstrate(cfg.FieldConstants())
	if err != nil {
		return nil, err
	}
	engine := resonance.NewEngine(substrate)
	orc, err := oracle.New(cfg.Oracle)
	if err != nil {
		return nil, err
	}

	sc := cfg.Strategies
	artifactGuided, err := strategy.NewArtifactGuided(sc.ArtifactWindow)
	if err != nil {
		return nil, err
	}
	resonanceProx, err := strategy.NewResonanceProximity(engine, sc.ResonanceWindow, sc.ResonanceTolerance)
	if err != nil {
		return nil, err
	}
	landmark, err := strategy.NewStructuralLandmark(sc.LandmarkPageSize, sc.LandmarkMaxPages)
	if err != nil {
		return nil, err
	}
	rho, err := strategy.NewPollardRho(sc.PollardMaxIterations)
	if err != nil {
		return nil, err
	}
	trial, err := strategy.NewTrialDivision(sc.TrialDivisionCap)
	if err != nil {
		return nil, err
	}

	primes := oracle.SmallPrimes(sc.SmallPrimeCount)
	smallPrimes := make([]*big.Int, len(primes))
	for i, p := range primes {
		smallPrimes[i] = new(big.Int).SetUint64(p)
	}

	return &Orchestrator{
		cfg:       cfg,
		substrate: substrate,
		resonance: engine,
		analyzer:  carry.NewAnalyzer(substrate),
		oracle:    orc,
		// Increasing cost order; the first verified candidate wins.
		strategies: []strategy.Strategy{
			artifactGuided,
			resonanceProx,
			landmark,
			rho,
			trial,
		},
		smallPrimes:    smallPrimes,
		patterns:       cache.NewStore[field.Pattern](),
		resonances:     cache.NewStore[float64](),
		primality:      cache.NewStore[bool](),
		factorizations: cache.NewStore[*FactorizationResult](),
		log:            log.Named("orchestrator"),
		metrics:        metrics,
	}, nil
}

// Constants returns the field constant table.
func (o *Orchestrator) Constants() field.Constants {
	return o.substrate.Constants()
}

// Pattern returns the field pattern of v, memoized.
func (o *Orchestrator) Pattern(v *big.Int) field.Pattern {
	key := v.Text(10)
	if p, ok := o.patterns.Get(key); ok {
		return p
	}
	return o.patterns.PutOnce(key, o.substrate.Pattern(v))
}

// Resonance returns the resonance score of v, memoized.
func (o *Orchestrator) Resonance(v *big.Int) float64 {
	key := v.Text(10)
	if r, ok := o.resonances.Get(key); ok {
		return r
	}
	return o.resonances.PutOnce(key, o.resonance.Resonance(v))
}

// IsPrime consults the primality oracle, memoized. This is the system's
// only source of primality ground truth.
func (o *Orchestrator) IsPrime(v *big.Int) bool {
	key := v.Text(10)
	if p, ok := o.primality.Get(key); ok {
		return p
	}
	o.metrics.OracleCalls.Inc()
	return o.primality.PutOnce(key, o.oracle.IsPrime(v))
}

// ClearCaches discards every memoized entry. Results are unaffected; only
// speed changes.
func (o *Orchestrator) ClearCaches() {
	o.patterns.Clear()
	o.resonances.Clear()
	o.primality.Clear()
	o.factorizations.Clear()
}

// CacheStats reports the factorization cache's lookup history.
func (o *Orchestrator) CacheStats() cache.Stats {
	return o.factorizations.Stats()
}

// Factorize decomposes n into an ordered list of factors greater than 1
// whose product equals n. Values below 2 yield the empty list. The product
// invariant is verified before returning; confidence below 1.0 marks a
// leaf that is only irreducible-by-heuristics, never a primality claim.
func (o *Orchestrator) Factorize(ctx context.Context, n *big.Int) (*FactorizationResult, error) {
	if n == nil {
		return nil, ErrNilValue
	}
	if n.Sign() < 0 {
		return nil, numeric.ErrNegativeValue
	}

	start := time.Now()
	budget := strategy.NewBudget(o.cfg.Strategies.GlobalBudget)

	result, err := o.factorize(ctx, n, budget)
	if err != nil {
		return nil, err
	}

	out := result.clone()
	sortFactors(out.Factors)
	out.Iterations = budget.Spent()

	if n.Cmp(two) >= 0 && out.Product().Cmp(n) != 0 {
		return nil, ErrInvariantViolated
	}

	o.metrics.Factorizations.Inc()
	o.metrics.FactorizeDuration.Observe(time.Since(start).Seconds())
	o.log.Debug(ctx, "factorization complete",
		zap.String("value", n.Text(10)),
		zap.Int("factors", len(out.Factors)),
		zap.String("strategy", out.Strategy),
		zap.Float64("confidence", out.Confidence),
		zap.Uint64("iterations", out.Iterations),
	)
	return out, nil
}

// factorize is the recursive worker. The budget is shared across the whole
// tree so heuristic misses in one branch starve the others fairly.
func (o *Orchestrator) factorize(ctx context.Context, n *big.Int, budget *strategy.Budget) (*FactorizationResult, error) {
	if n.Cmp(two) < 0 {
		return &FactorizationResult{
			Factors:    []*big.Int{},
			Confidence: 1.0,
			Strategy:   StrategyDegenerate,
		}, nil
	}

	key := n.Text(10)
	if cached, ok := o.factorizations.Get(key); ok {
		o.metrics.CacheHits.Inc()
		return cached, nil
	}
	o.metrics.CacheMisses.Inc()

	if o.IsPrime(n) {
		return o.finish(key, &FactorizationResult{
			Factors:    []*big.Int{new(big.Int).Set(n)},
			Confidence: 1.0,
			Strategy:   StrategyPrime,
		}), nil
	}

	factors, remainder, err := o.stripSmallPrimes(ctx, n, budget)
	if err != nil {
		return nil, err
	}
	if remainder.Cmp(one) == 0 {
		return o.finish(key, &FactorizationResult{
			Factors:    factors,
			Confidence: 1.0,
			Strategy:   StrategySmallPrime,
		}), nil
	}
	if o.IsPrime(remainder) {
		return o.finish(key, &FactorizationResult{
			Factors:    append(factors, remainder),
			Confidence: 1.0,
			Strategy:   StrategySmallPrime,
		}), nil
	}

	searched, err := o.search(ctx, remainder, budget)
	if err != nil {
		return nil, err
	}

	return o.finish(key, &FactorizationResult{
		Factors:    append(factors, searched.Factors...),
		Confidence: searched.Confidence,
		Strategy:   searched.Strategy,
		Trace:      searched.Trace,
	}), nil
}

// finish stores the result write-once and returns the canonical entry.
func (o *Orchestrator) finish(key string, result *FactorizationResult) *FactorizationResult {
	sortFactors(result.Factors)
	return o.factorizations.PutOnce(key, result)
}

// stripSmallPrimes divides out the fixed small-prime table, accumulating
// exact factors. Each division test costs one budget unit, but the strip
// never aborts: exact small factors are too cheap to leave behind.
func (o *Orchestrator) stripSmallPrimes(ctx context.Context, n *big.Int, budget *strategy.Budget) ([]*big.Int, *big.Int, error) {
	factors := make([]*big.Int, 0, 8)
	m := new(big.Int).Set(n)
	q := new(big.Int)
	r := new(big.Int)

	for _, p := range o.smallPrimes {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		for {
			budget.Spend(1)
			q.QuoRem(m, p, r)
			if r.Sign() != 0 {
				break
			}
			factors = append(factors, new(big.Int).Set(p))
			m.Set(q)
		}
		if m.Cmp(one) == 0 {
			break
		}
	}
	return factors, m, nil
}

// search runs the ordered strategy list against an odd composite remainder
// and recurses on the first verified split. Ties are impossible: strategies
// run in fixed order and the first success short-circuits.
func (o *Orchestrator) search(ctx context.Context, n *big.Int, budget *strategy.Budget) (*FactorizationResult, error) {
	hints, err := o.hintsFor(n)
	if err != nil {
		return nil, err
	}

	trace := make([]StrategyAttempt, 0, len(o.strategies))
	q := new(big.Int)
	r := new(big.Int)

	for _, st := range o.strategies {
		o.metrics.StrategyAttempts.WithLabelValues(st.Name()).Inc()
		before := budget.Spent()

		candidate, err := st.Propose(ctx, n, hints, budget)
		attempt := StrategyAttempt{
			Strategy:   st.Name(),
			Iterations: budget.Spent() - before,
		}
		if err != nil {
			if errors.Is(err, strategy.ErrNoCandidate) {
				trace = append(trace, attempt)
				o.log.Debug(ctx, "strategy exhausted",
					zap.String("strategy", st.Name()),
					zap.Uint64("iterations", attempt.Iterations),
				)
				continue
			}
			return nil, err
		}

		// Verification is the correctness boundary: exact division plus
		// product reconstruction. A proposal failing it is treated as a
		// miss, whatever the strategy believed.
		q.QuoRem(n, candidate, r)
		if r.Sign() != 0 || candidate.Cmp(one) <= 0 || candidate.Cmp(n) >= 0 ||
			new(big.Int).Mul(candidate, q).Cmp(n) != 0 {
			trace = append(trace, attempt)
			continue
		}

		attempt.Found = true
		trace = append(trace, attempt)
		o.metrics.StrategyHits.WithLabelValues(st.Name()).Inc()
		o.log.Debug(ctx, "verified candidate divisor",
			zap.String("strategy", st.Name()),
			zap.String("divisor", candidate.Text(10)),
		)

		left, right, err := o.recurse(ctx, new(big.Int).Set(candidate), new(big.Int).Set(q), budget)
		if err != nil {
			return nil, err
		}

		merged := &FactorizationResult{
			Factors:    append(append([]*big.Int{}, left.Factors...), right.Factors...),
			Confidence: minConfidence(left.Confidence, right.Confidence),
			Strategy:   st.Name(),
			Trace:      append(append(trace, left.Trace...), right.Trace...),
		}
		return merged, nil
	}

	// Every strategy exhausted its budget. Explicitly not a primality
	// claim; the oracle already said composite, the heuristics just
	// couldn't exhibit a witness factor.
	o.log.Warn(ctx, "all strategies exhausted",
		zap.String("value", n.Text(10)),
		zap.Int("bits", n.BitLen()),
	)
	return &FactorizationResult{
		Factors:    []*big.Int{new(big.Int).Set(n)},
		Confidence: irreducibleConfidence(o.oracle.Certainty(n)),
		Strategy:   StrategyIrreducible,
		Trace:      trace,
	}, nil
}

// recurse factorizes both halves of a verified split, in parallel when
// both are large enough for a goroutine to pay off. The cache is the only
// shared state; its first-write-wins discipline makes the evaluation order
// irrelevant.
func (o *Orchestrator) recurse(ctx context.Context, d, q *big.Int, budget *strategy.Budget) (*FactorizationResult, *FactorizationResult, error) {
	minBits := o.cfg.Strategies.ParallelMinBits
	if o.cfg.Strategies.Parallel && d.BitLen() >= minBits && q.BitLen() >= minBits {
		var left, right *FactorizationResult
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			left, err = o.factorize(gctx, d, budget)
			return err
		})
		g.Go(func() error {
			var err error
			right, err = o.factorize(gctx, q, budget)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		return left, right, nil
	}

	left, err := o.factorize(ctx, d, budget)
	if err != nil {
		return nil, nil, err
	}
	right, err := o.factorize(ctx, q, budget)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// hintsFor precomputes the advisory field signals for n: its pattern and
// resonance, plus the carry artifacts of the balanced split
// (isqrt(n), n/isqrt(n)), the representative factor-pair hypothesis the
// artifact-guided strategy constrains against.
func (o *Orchestrator) hintsFor(n *big.Int) (strategy.Hints, error) {
	root, err := numeric.Isqrt(n)
	if err != nil {
		return strategy.Hints{}, err
	}
	balanced := new(big.Int).Quo(n, root)
	return strategy.Hints{
		Residue:   field.Residue(n),
		Pattern:   o.Pattern(n),
		Resonance: o.Resonance(n),
		Artifacts: o.analyzer.Artifacts(root, balanced),
		Root:      root,
	}, nil
}

func sortFactors(factors []*big.Int) {
	sort.Slice(factors, func(i, j int) bool {
		return factors[i].Cmp(factors[j]) < 0
	})
}
