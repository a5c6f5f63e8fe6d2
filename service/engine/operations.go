package engine

import (
	"context"

	"dsc/core"
	"dsc/service/liquidation"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// DepositCollateral lock amount of asset as user's collateral
func (e *Engine) DepositCollateral(ctx context.Context, user, asset string, amount *uint256.Int) error {
	fields := logrus.Fields{"user": user, "asset": asset, "amount": amount.Dec()}
	return e.exec(ctx, "deposit", fields, func(ctx context.Context, tx core.StateWriter) error {
		return e.ledger.DepositCollateral(ctx, tx, user, asset, amount)
	})
}

// RedeemCollateral withdraw amount of asset back to user, who must stay healthy
func (e *Engine) RedeemCollateral(ctx context.Context, user, asset string, amount *uint256.Int) error {
	fields := logrus.Fields{"user": user, "asset": asset, "amount": amount.Dec()}
	return e.exec(ctx, "redeem", fields, func(ctx context.Context, tx core.StateWriter) error {
		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		if err := e.ledger.RedeemCollateral(ctx, tx, user, user, asset, amount); err != nil {
			return err
		}

		return e.ledger.RequireHealthy(ctx, tx, user)
	})
}

// MintDebt mint amount of the synthetic token to user against their collateral
func (e *Engine) MintDebt(ctx context.Context, user string, amount *uint256.Int) error {
	fields := logrus.Fields{"user": user, "amount": amount.Dec()}
	return e.exec(ctx, "mint", fields, func(ctx context.Context, tx core.StateWriter) error {
		return e.ledger.MintDebt(ctx, tx, user, amount)
	})
}

// BurnDebt repay amount of user's debt with user's synthetic tokens
func (e *Engine) BurnDebt(ctx context.Context, user string, amount *uint256.Int) error {
	fields := logrus.Fields{"user": user, "amount": amount.Dec()}
	return e.exec(ctx, "burn", fields, func(ctx context.Context, tx core.StateWriter) error {
		if err := e.ledger.BurnDebt(ctx, tx, amount, user, user); err != nil {
			return err
		}

		return e.ledger.RequireHealthy(ctx, tx, user)
	})
}

// DepositCollateralAndMint deposit then mint in one transaction
func (e *Engine) DepositCollateralAndMint(ctx context.Context, user, asset string, amount, debtAmount *uint256.Int) error {
	fields := logrus.Fields{"user": user, "asset": asset, "amount": amount.Dec(), "debt_amount": debtAmount.Dec()}
	return e.exec(ctx, "deposit-mint", fields, func(ctx context.Context, tx core.StateWriter) error {
		if err := e.ledger.DepositCollateral(ctx, tx, user, asset, amount); err != nil {
			return err
		}

		return e.ledger.MintDebt(ctx, tx, user, debtAmount)
	})
}

// RedeemCollateralAndBurn burn debt first, then redeem, then check user's health
func (e *Engine) RedeemCollateralAndBurn(ctx context.Context, user, asset string, amount, debtAmount *uint256.Int) error {
	fields := logrus.Fields{"user": user, "asset": asset, "amount": amount.Dec(), "debt_amount": debtAmount.Dec()}
	return e.exec(ctx, "redeem-burn", fields, func(ctx context.Context, tx core.StateWriter) error {
		if amount.IsZero() {
			return core.ErrInvalidAmount
		}

		if err := e.ledger.BurnDebt(ctx, tx, debtAmount, user, user); err != nil {
			return err
		}

		if err := e.ledger.RedeemCollateral(ctx, tx, user, user, asset, amount); err != nil {
			return err
		}

		return e.ledger.RequireHealthy(ctx, tx, user)
	})
}

// Liquidate cover debtToCover of target's debt, the liquidator receives the
// equivalent asset plus the liquidation bonus
func (e *Engine) Liquidate(ctx context.Context, liquidator, asset, target string, debtToCover *uint256.Int) (*liquidation.Result, error) {
	var result *liquidation.Result
	fields := logrus.Fields{"user": liquidator, "asset": asset, "target": target, "debt_amount": debtToCover.Dec()}
	err := e.exec(ctx, "liquidate", fields, func(ctx context.Context, tx core.StateWriter) error {
		r, err := e.liquidator.Liquidate(ctx, tx, liquidator, asset, target, debtToCover)
		if err != nil {
			return err
		}

		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
