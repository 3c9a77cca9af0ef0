package oracle

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOracle(t *testing.T) *Oracle {
	t.Helper()
	o, err := New(DefaultConfig())
	require.NoError(t, err)
	return o
}

func bi(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test literal: " + s)
	}
	return n
}

func TestIsPrime_BaseCases(t *testing.T) {
	o := newOracle(t)

	assert.False(t, o.IsPrime(big.NewInt(0)))
	assert.False(t, o.IsPrime(big.NewInt(1)))
	assert.True(t, o.IsPrime(big.NewInt(2)))
	assert.True(t, o.IsPrime(big.NewInt(3)))
	assert.False(t, o.IsPrime(big.NewInt(4)))
}

func TestIsPrime_SmallValues(t *testing.T) {
	o := newOracle(t)

	primes := []int64{5, 7, 11, 13, 97, 101, 7919, 104729}
	for _, p := range primes {
		assert.True(t, o.IsPrime(big.NewInt(p)), "%d is prime", p)
	}

	composites := []int64{9, 15, 21, 77, 91, 561, 1022117, 104730}
	for _, c := range composites {
		assert.False(t, o.IsPrime(big.NewInt(c)), "%d is composite", c)
	}
}

func TestIsPrime_TenThousandthPrime(t *testing.T) {
	o := newOracle(t)
	assert.True(t, o.IsPrime(big.NewInt(104729)))
}

func TestIsPrime_CarmichaelNumbers(t *testing.T) {
	o := newOracle(t)

	// Fermat pseudoprimes to every coprime base; Miller-Rabin (and the
	// exact path) must still reject them.
	for _, c := range []int64{561, 1105, 1729, 2465, 2821, 6601, 8911} {
		assert.False(t, o.IsPrime(big.NewInt(c)), "%d is a Carmichael number", c)
	}
}

func TestIsPrime_AboveDeterministicBound(t *testing.T) {
	o := newOracle(t)

	// Mersenne primes well above the trial-division bound.
	assert.True(t, o.IsPrime(bi("2147483647")))           // 2^31 - 1
	assert.True(t, o.IsPrime(bi("2305843009213693951")))  // 2^61 - 1

	// Their neighbors and a large semiprime.
	assert.False(t, o.IsPrime(bi("2147483649")))
	assert.False(t, o.IsPrime(bi("2305843009213693953")))
	semiprime := new(big.Int).Mul(bi("2147483647"), bi("2305843009213693951"))
	assert.False(t, o.IsPrime(semiprime))
}

func TestIsPrime_LargePrime(t *testing.T) {
	o := newOracle(t)

	// 2^89 - 1, a Mersenne prime spanning multiple words.
	m89 := new(big.Int).Lsh(big.NewInt(1), 89)
	m89.Sub(m89, big.NewInt(1))
	assert.True(t, o.IsPrime(m89))

	// Agreement with the standard library on a spread of values.
	for _, v := range []string{"1000003", "1000033", "999999999989", "10000000000000061"} {
		n := bi(v)
		assert.Equal(t, n.ProbablyPrime(20), o.IsPrime(n), "value %s", v)
	}
}

func TestWitnessCount_Scaling(t *testing.T) {
	o := newOracle(t)

	small := big.NewInt(1000)
	assert.Equal(t, DefaultConfig().MaxWitnesses, o.WitnessCount(small), "deterministic path reports max")

	big64 := bi("18446744073709551629") // just above 2^64
	k := o.WitnessCount(big64)
	assert.GreaterOrEqual(t, k, DefaultConfig().MinWitnesses)
	assert.LessOrEqual(t, k, DefaultConfig().MaxWitnesses)

	huge := new(big.Int).Lsh(big.NewInt(1), 4096)
	assert.Equal(t, DefaultConfig().MaxWitnesses, o.WitnessCount(huge), "scaling clamps at max")
}

func TestCertainty(t *testing.T) {
	o := newOracle(t)

	assert.Equal(t, 1.0, o.Certainty(big.NewInt(97)), "deterministic path is exact")

	c := o.Certainty(bi("2305843009213693951"))
	assert.Greater(t, c, 0.999)
	assert.Less(t, c, 1.0)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"bound too small", func(c *Config) { c.DeterministicBound = 3 }, ErrBoundTooSmall},
		{"bound past the sieve", func(c *Config) { c.DeterministicBound = 1 << 25 }, ErrBoundTooLarge},
		{"zero witnesses", func(c *Config) { c.MinWitnesses = 0 }, ErrTooFewWitnesses},
		{"inverted range", func(c *Config) { c.MaxWitnesses = c.MinWitnesses - 1 }, ErrWitnessRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSmallPrimes(t *testing.T) {
	first := SmallPrimes(10)
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, first)

	// Requesting more than the sieve holds returns the full table.
	all := SmallPrimes(1 << 20)
	assert.NotEmpty(t, all)
	assert.Equal(t, uint64(2), all[0])
}
