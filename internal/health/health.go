package health

import (
	"github.com/holiman/uint256"
)

var (
	// Precision 18 decimal fixed point unit
	Precision = uint256.NewInt(1e18)
	// FeedPrecision price feeds answer with 8 decimals
	FeedPrecision = uint256.NewInt(1e8)
	// AdditionalFeedPrecision rescales an 8 decimal price to 18 decimals
	AdditionalFeedPrecision = uint256.NewInt(1e10)
	// LiquidationThreshold percent of collateral value counted toward debt capacity
	LiquidationThreshold = uint256.NewInt(50)
	// LiquidationBonus percent of seized collateral paid to the liquidator
	LiquidationBonus = uint256.NewInt(10)
	// LiquidationPrecision denominator of threshold and bonus
	LiquidationPrecision = uint256.NewInt(100)
	// MinHealthFactor 1.0
	MinHealthFactor = uint256.NewInt(1e18)
	// Max sentinel health factor of an account without debt
	Max = new(uint256.Int).SetAllOne()
)

// Calculate health factor of an account, 18 decimals.
// Never fails: no debt or a ratio beyond 256 bits yields Max.
func Calculate(totalDebt, collateralValueUSD *uint256.Int) *uint256.Int {
	if totalDebt == nil || totalDebt.IsZero() {
		return Max.Clone()
	}

	if collateralValueUSD == nil {
		return new(uint256.Int)
	}

	// 512 bit intermediates, both divisions truncate
	adjusted, _ := new(uint256.Int).MulDivOverflow(collateralValueUSD, LiquidationThreshold, LiquidationPrecision)
	ratio, overflow := new(uint256.Int).MulDivOverflow(adjusted, Precision, totalDebt)
	if overflow {
		return Max.Clone()
	}

	return ratio
}

// IsHealthy hf >= MinHealthFactor
func IsHealthy(hf *uint256.Int) bool {
	return !hf.Lt(MinHealthFactor)
}

// IsMax account carries no debt
func IsMax(hf *uint256.Int) bool {
	return hf.Eq(Max)
}
