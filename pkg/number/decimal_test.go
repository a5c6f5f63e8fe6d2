package number

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromWad(t *testing.T) {
	data := map[string]string{
		"1500000000000000000":     "1.5",
		"0":                       "0",
		"20000000000000000000000": "20000",
		"1":                       "0.000000000000000001",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v, FromWad(uint256.MustFromDecimal(k), WadDecimals).String())
		})
	}

	assert.True(t, FromWad(nil, WadDecimals).IsZero())
}

func TestToWad(t *testing.T) {
	v, ok := ToWad(Decimal("2000.123456789012345678999"), WadDecimals)
	require.True(t, ok)
	assert.Equal(t, "2000123456789012345678", v.Dec(), "extra digits truncated")

	_, ok = ToWad(Decimal("-1"), WadDecimals)
	assert.False(t, ok)

	_, ok = ToWad(Decimal("1e80"), 0)
	assert.False(t, ok, "does not fit 256 bits")
}

func TestToSigned(t *testing.T) {
	assert.Equal(t, big.NewInt(200000000000).String(), ToSigned(Decimal("2000"), 8).String())
	assert.Equal(t, big.NewInt(-100000000).String(), ToSigned(Decimal("-1"), 8).String())
}

func TestParseAmount(t *testing.T) {
	v, ok := ParseAmount("1500000000000000000", false)
	require.True(t, ok)
	assert.Equal(t, "1500000000000000000", v.Dec())

	_, ok = ParseAmount("1.5", false)
	assert.False(t, ok, "base units must be integral")

	v, ok = ParseAmount("1.5", true)
	require.True(t, ok)
	assert.Equal(t, "1500000000000000000", v.Dec())

	_, ok = ParseAmount("abc", true)
	assert.False(t, ok)
}
