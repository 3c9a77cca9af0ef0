package numeric

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test literal: " + s)
	}
	return n
}

func TestGCD(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"coprime", "7", "11", "1"},
		{"shared factor", "12", "18", "6"},
		{"one zero", "0", "5", "5"},
		{"other zero", "5", "0", "5"},
		{"equal", "42", "42", "42"},
		{"large", "1000000000000000000000000000000", "999999999999999999999999999998", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := GCD(bi(tt.a), bi(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Text(10))
		})
	}
}

func TestGCD_Guards(t *testing.T) {
	_, err := GCD(big.NewInt(0), big.NewInt(0))
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = GCD(big.NewInt(-4), big.NewInt(2))
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestGCD_DoesNotMutateInputs(t *testing.T) {
	a := big.NewInt(48)
	b := big.NewInt(18)
	_, err := GCD(a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(48), a.Int64())
	assert.Equal(t, int64(18), b.Int64())
}

func TestModExp(t *testing.T) {
	tests := []struct {
		name              string
		base, exp, mod    string
		want              string
	}{
		{"small", "2", "10", "1000", "24"},
		{"exp zero", "7", "0", "13", "1"},
		{"base zero", "0", "5", "13", "0"},
		{"mod one", "9", "9", "1", "0"},
		{"fermat little", "2", "104728", "104729", "1"},
		{"large operands", "3", "1000000", "1000000007", "64935414"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModExp(bi(tt.base), bi(tt.exp), bi(tt.mod))
			require.NoError(t, err)

			want := new(big.Int).Exp(bi(tt.base), bi(tt.exp), bi(tt.mod))
			require.Equal(t, want.Text(10), got.Text(10), "disagrees with math/big reference")
			if tt.want != "" {
				assert.Equal(t, tt.want, got.Text(10))
			}
		})
	}
}

func TestModExp_Guards(t *testing.T) {
	_, err := ModExp(big.NewInt(2), big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(t, err, ErrZeroModulus)

	_, err = ModExp(big.NewInt(2), big.NewInt(-1), big.NewInt(7))
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestIsqrt(t *testing.T) {
	tests := []struct {
		n    string
		want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"2", "1"},
		{"3", "1"},
		{"4", "2"},
		{"15", "3"},
		{"16", "4"},
		{"17", "4"},
		{"1022117", "1010"},
		{"1000000000000000000000000000000", "1000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.n, func(t *testing.T) {
			s, err := Isqrt(bi(tt.n))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Text(10))

			// Floor property: s*s <= n < (s+1)*(s+1).
			n := bi(tt.n)
			sq := new(big.Int).Mul(s, s)
			assert.LessOrEqual(t, sq.Cmp(n), 0)
			s1 := new(big.Int).Add(s, big.NewInt(1))
			s1.Mul(s1, s1)
			assert.Greater(t, s1.Cmp(n), 0)
		})
	}

	_, err := Isqrt(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestOddInverse256(t *testing.T) {
	for d := 1; d < 256; d += 2 {
		inv, err := OddInverse256(uint8(d))
		require.NoError(t, err)
		assert.Equal(t, uint8(1), uint8(d)*inv, "inverse of %d", d)
	}

	_, err := OddInverse256(4)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	_, err = OddInverse256(0)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}
