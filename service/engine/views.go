package engine

import (
	"context"

	"dsc/internal/health"

	"github.com/holiman/uint256"
)

// USDValue usd value of amount of asset, 18 decimals
func (e *Engine) USDValue(ctx context.Context, asset string, amount *uint256.Int) (*uint256.Int, error) {
	return e.oracle.USDValue(ctx, asset, amount)
}

// TokenAmountFromUSD amount of asset worth usdAmount, rounded down
func (e *Engine) TokenAmountFromUSD(ctx context.Context, asset string, usdAmount *uint256.Int) (*uint256.Int, error) {
	return e.oracle.TokenAmountFromUSD(ctx, asset, usdAmount)
}

// CollateralValueUSD usd value of all of user's collateral
func (e *Engine) CollateralValueUSD(ctx context.Context, user string) (*uint256.Int, error) {
	return e.ledger.CollateralValueUSD(ctx, e.store, user)
}

// HealthFactorOf committed health factor of user
func (e *Engine) HealthFactorOf(ctx context.Context, user string) (*uint256.Int, error) {
	return e.ledger.HealthFactor(ctx, e.store, user)
}

// AccountInformation user's debt and collateral usd value
func (e *Engine) AccountInformation(ctx context.Context, user string) (debt, collateralUSD *uint256.Int, err error) {
	return e.ledger.AccountInformation(ctx, e.store, user)
}

// CollateralBalanceOf user's deposited amount of asset
func (e *Engine) CollateralBalanceOf(ctx context.Context, user, asset string) (*uint256.Int, error) {
	return e.store.Collateral(ctx, user, asset)
}

// CalculateHealthFactor health factor for arbitrary debt and collateral value
func (e *Engine) CalculateHealthFactor(totalDebt, collateralValueUSD *uint256.Int) *uint256.Int {
	return health.Calculate(totalDebt, collateralValueUSD)
}

// Accounts identities that ever held collateral or debt
func (e *Engine) Accounts(ctx context.Context) ([]string, error) {
	return e.store.Accounts(ctx)
}

// Precision 18 decimal fixed point unit
func (e *Engine) Precision() *uint256.Int {
	return health.Precision.Clone()
}

// AdditionalFeedPrecision scale from 8 decimal prices to 18 decimals
func (e *Engine) AdditionalFeedPrecision() *uint256.Int {
	return health.AdditionalFeedPrecision.Clone()
}

// LiquidationThreshold percent of collateral value counted toward debt
func (e *Engine) LiquidationThreshold() *uint256.Int {
	return health.LiquidationThreshold.Clone()
}

// LiquidationBonus percent bonus paid to liquidators
func (e *Engine) LiquidationBonus() *uint256.Int {
	return health.LiquidationBonus.Clone()
}

// LiquidationPrecision denominator of threshold and bonus
func (e *Engine) LiquidationPrecision() *uint256.Int {
	return health.LiquidationPrecision.Clone()
}

// MinHealthFactor 1.0, 18 decimals
func (e *Engine) MinHealthFactor() *uint256.Int {
	return health.MinHealthFactor.Clone()
}
