// Package numeric provides the arbitrary-precision helpers shared by the
// factorization engine: GCD, modular exponentiation, integer square root,
// and value parsing. All helpers guard their own preconditions and return
// errors instead of panicking.
package numeric

import (
	"math/big"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// GCD returns the greatest common divisor of a and b.
// Both inputs must be non-negative and at least one must be non-zero;
// GCD(0, 0) is undefined and reported as ErrInvalidOperation.
func GCD(a, b *big.Int) (*big.Int, error) {
	if a.Sign() < 0 || b.Sign() < 0 {
		return nil, ErrNegativeValue
	}
	if a.Sign() == 0 && b.Sign() == 0 {
		return nil, ErrInvalidOperation
	}

	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)
	for y.Sign() != 0 {
		x, y = y, x.Mod(x, y)
	}
	return x, nil
}

// ModExp computes base^exp mod modulus by binary exponentiation.
// The modulus must be positive; exp must be non-negative.
func ModExp(base, exp, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, ErrZeroModulus
	}
	if exp.Sign() < 0 {
		return nil, ErrNegativeValue
	}
	if modulus.Cmp(one) == 0 {
		return big.NewInt(0), nil
	}

	result := big.NewInt(1)
	b := new(big.Int).Mod(base, modulus)
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}
	return result, nil
}

// Isqrt returns the integer square root of n, the largest s with s*s <= n,
// computed by Newton iteration. n must be non-negative.
func Isqrt(n *big.Int) (*big.Int, error) {
	if n.Sign() < 0 {
		return nil, ErrNegativeValue
	}
	if n.Sign() == 0 {
		return big.NewInt(0), nil
	}
	if n.Cmp(two) < 0 {
		return big.NewInt(1), nil
	}

	// Newton iteration: x_{k+1} = (x_k + n/x_k) / 2, seeded above the root
	// so the sequence decreases monotonically to floor(sqrt(n)).
	x := new(big.Int).Lsh(one, uint(n.BitLen()/2+1))
	next := new(big.Int)
	q := new(big.Int)
	for {
		q.Quo(n, x)
		next.Add(x, q)
		next.Rsh(next, 1)
		if next.Cmp(x) >= 0 {
			return x, nil
		}
		x.Set(next)
	}
}

// OddInverse256 returns the multiplicative inverse of d modulo 256.
// Only odd residues are invertible; even inputs are reported as
// ErrInvalidOperation. Uses Newton lifting: three refinement steps
// suffice for an 8-bit modulus.
func OddInverse256(d uint8) (uint8, error) {
	if d%2 == 0 {
		return 0, ErrInvalidOperation
	}
	inv := d // correct mod 2^1
	for i := 0; i < 3; i++ {
		inv = inv * (2 - d*inv) // doubles the valid bit width each step
	}
	return inv, nil
}
