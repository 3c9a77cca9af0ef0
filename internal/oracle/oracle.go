// Package oracle implements the authoritative primality test. Below a
// fixed deterministic bound it uses exact trial division against a sieve
// table; above it, a Miller-Rabin test with a fixed witness base set scaled
// by operand size, with false-positive probability bounded by 4^-k for k
// witnesses.
//
// This oracle is the only source of primality ground truth in the system.
// Resonance and field-pattern signals elsewhere are advisory ranking hints
// and must never substitute for it on a correctness-relevant path.
package oracle

import (
	"math/big"

	"github.com/fyrsmithlabs/factord/internal/numeric"
)

// Config tunes the oracle. The zero value is not usable; use DefaultConfig.
type Config struct {
	// DeterministicBound is the exclusive upper limit for the exact
	// trial-division path. Values below it are tested deterministically.
	DeterministicBound uint64 `koanf:"deterministic_bound"`

	// MinWitnesses is the floor on Miller-Rabin witness count.
	MinWitnesses int `koanf:"min_witnesses"`

	// MaxWitnesses caps the size-scaled witness count.
	MaxWitnesses int `koanf:"max_witnesses"`
}

// DefaultConfig returns the stock oracle configuration.
func DefaultConfig() Config {
	return Config{
		DeterministicBound: 1 << 24,
		MinWitnesses:       12,
		MaxWitnesses:       40,
	}
}

// Validate checks config invariants.
func (c Config) Validate() error {
	if c.DeterministicBound < 4 {
		return ErrBoundTooSmall
	}
	// The exact path divides by sieve primes only; past the sieve's square
	// it would wrongly certify composites with large smallest factors.
	if c.DeterministicBound > sieveLimit*sieveLimit {
		return ErrBoundTooLarge
	}
	if c.MinWitnesses < 1 {
		return ErrTooFewWitnesses
	}
	if c.MaxWitnesses < c.MinWitnesses {
		return ErrWitnessRange
	}
	return nil
}

// Oracle is the bounded-error primality tester.
type Oracle struct {
	cfg   Config
	bound *big.Int
}

// New creates an oracle from config.
func New(cfg Config) (*Oracle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Oracle{
		cfg:   cfg,
		bound: new(big.Int).SetUint64(cfg.DeterministicBound),
	}, nil
}

// IsPrime reports whether n is prime. It always returns a boolean: n < 2
// is false and n == 2 is true as explicit base cases. Below the
// deterministic bound the answer is exact; above it the false-positive
// probability is bounded by 4^-k for the witness count k returned by
// WitnessCount.
func (o *Oracle) IsPrime(n *big.Int) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(two) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}
	if n.Cmp(o.bound) < 0 {
		return trialDivisionPrime(n.Uint64())
	}
	return o.millerRabin(n)
}

// WitnessCount returns the number of Miller-Rabin witnesses the oracle
// uses for n: the fixed base set plus one witness per 64 bits of operand,
// clamped to the configured range. Deterministically-tested values report
// the maximum since their answer is exact.
func (o *Oracle) WitnessCount(n *big.Int) int {
	if n.Cmp(o.bound) < 0 {
		return o.cfg.MaxWitnesses
	}
	k := o.cfg.MinWitnesses + n.BitLen()/64
	if k > o.cfg.MaxWitnesses {
		k = o.cfg.MaxWitnesses
	}
	return k
}

// Certainty returns 1 - 4^-k for the witness count applied to n. The
// orchestrator folds this into result confidence.
func (o *Oracle) Certainty(n *big.Int) float64 {
	if n.Cmp(o.bound) < 0 {
		return 1.0
	}
	certainty := 1.0
	p := 1.0
	for i := 0; i < o.WitnessCount(n); i++ {
		p /= 4
	}
	return certainty - p
}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// trialDivisionPrime is the exact path: divide by sieve primes up to the
// square root. The sieve covers every prime up to sqrt(DeterministicBound).
func trialDivisionPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range sievePrimes {
		if p*p > n {
			return true
		}
		if n%p == 0 {
			return n == p
		}
	}
	return true
}

// millerRabin runs the probabilistic path for odd n above the bound.
// Witness bases are the first k primes, taken in order, so the oracle is
// deterministic for a given configuration.
func (o *Oracle) millerRabin(n *big.Int) bool {
	// n-1 = d * 2^s with d odd
	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	witnesses := o.WitnessCount(n)
	for i := 0; i < witnesses && i < len(sievePrimes); i++ {
		a := new(big.Int).SetUint64(sievePrimes[i])
		if !witnessPasses(n, nMinus1, d, s, a) {
			return false
		}
	}
	return true
}

// witnessPasses runs one Miller-Rabin round. Returns false when the
// witness proves n composite.
func witnessPasses(n, nMinus1, d *big.Int, s int, a *big.Int) bool {
	// Modulus is n >= 3 here, so ModExp cannot fail.
	x, err := numeric.ModExp(a, d, n)
	if err != nil {
		return false
	}
	if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}
	for r := 1; r < s; r++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}
