package number

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// WadDecimals decimals of 18-decimal fixed point amounts
const WadDecimals = 18

// Decimal parse v, zero on failure
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// FromWad fixed point integer to decimal, e.g. 15e17 with 18 decimals -> 1.5
func FromWad(v *uint256.Int, decimals int32) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v.ToBig(), -decimals)
}

// ToWad decimal to fixed point integer, truncating extra digits.
// ok is false for negative values or values that do not fit 256 bits.
func ToWad(d decimal.Decimal, decimals int32) (*uint256.Int, bool) {
	if d.IsNegative() {
		return nil, false
	}

	v, overflow := uint256.FromBig(d.Shift(decimals).Truncate(0).BigInt())
	if overflow {
		return nil, false
	}

	return v, true
}

// ToSigned decimal to signed fixed point integer, truncating extra digits
func ToSigned(d decimal.Decimal, decimals int32) *big.Int {
	return d.Shift(decimals).Truncate(0).BigInt()
}

// ParseAmount parse an amount in base units, or in whole tokens
// (18 decimals) when whole is true
func ParseAmount(v string, whole bool) (*uint256.Int, bool) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, false
	}

	if whole {
		return ToWad(d, WadDecimals)
	}

	if !d.Equal(d.Truncate(0)) {
		return nil, false
	}

	return ToWad(d, 0)
}
