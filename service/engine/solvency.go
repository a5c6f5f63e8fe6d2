package engine

import (
	"context"

	"dsc/core"

	"github.com/holiman/uint256"
)

// Custody engine holding of one collateral asset
type Custody struct {
	Asset    string       `json:"asset"`
	Amount   *uint256.Int `json:"amount"`
	ValueUSD *uint256.Int `json:"value_usd"`
}

// Solvency custody value against synthetic supply
type Solvency struct {
	Assets          []*Custody   `json:"assets"`
	CollateralUSD   *uint256.Int `json:"collateral_usd"`
	SyntheticSupply *uint256.Int `json:"synthetic_supply"`
	Solvent         bool         `json:"solvent"`
}

// ProtocolSolvency value every collateral asset the engine holds and
// compare the sum with the synthetic supply
func (e *Engine) ProtocolSolvency(ctx context.Context) (*Solvency, error) {
	s := &Solvency{
		CollateralUSD: new(uint256.Int),
	}

	for _, asset := range e.registry.Assets() {
		token, err := e.tokens.Token(asset)
		if err != nil {
			return nil, err
		}

		amount, err := token.BalanceOf(ctx, e.store, e.address)
		if err != nil {
			return nil, err
		}

		value := new(uint256.Int)
		if !amount.IsZero() {
			if value, err = e.oracle.USDValue(ctx, asset, amount); err != nil {
				return nil, err
			}
		}

		if _, overflow := s.CollateralUSD.AddOverflow(s.CollateralUSD, value); overflow {
			return nil, core.ErrOverflow
		}

		s.Assets = append(s.Assets, &Custody{
			Asset:    asset,
			Amount:   amount,
			ValueUSD: value,
		})
	}

	supply, err := e.synthetic.TotalSupply(ctx, e.store)
	if err != nil {
		return nil, err
	}

	s.SyntheticSupply = supply
	s.Solvent = !s.CollateralUSD.Lt(supply)
	return s, nil
}

// Events committed ledger events after offset
func (e *Engine) Events(ctx context.Context, offset int64, limit int) ([]*core.Event, error) {
	return e.store.Events(ctx, offset, limit)
}
