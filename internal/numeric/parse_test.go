package numeric

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"int", 77, "77"},
		{"int64", int64(104729), "104729"},
		{"uint64 max", uint64(18446744073709551615), "18446744073709551615"},
		{"zero", 0, "0"},
		{"digit string", "1000000000000000000000000000000", "1000000000000000000000000000000"},
		{"string with spaces", "  561 ", "561"},
		{"big int", big.NewInt(42), "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseValue(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Text(10))
		})
	}
}

func TestParseValue_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr error
	}{
		{"negative int", -5, ErrNegativeValue},
		{"negative int64", int64(-1), ErrNegativeValue},
		{"negative string", "-77", ErrNegativeValue},
		{"negative big", big.NewInt(-3), ErrNegativeValue},
		{"decimal string", "3.14", ErrNotAnInteger},
		{"scientific string", "1e10", ErrNotAnInteger},
		{"empty string", "", ErrInvalidInput},
		{"garbage string", "seven", ErrInvalidInput},
		{"nil big", (*big.Int)(nil), ErrInvalidInput},
		{"unsupported type", 3.14, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValue(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseValue_CopiesBigInt(t *testing.T) {
	orig := big.NewInt(100)
	n, err := ParseValue(orig)
	require.NoError(t, err)
	n.Add(n, big.NewInt(1))
	assert.Equal(t, int64(100), orig.Int64(), "caller's value must not alias")
}
