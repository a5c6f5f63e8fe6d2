package liquidation

import (
	"context"

	"dsc/core"
	"dsc/internal/health"
	"dsc/pkg/id"
	"dsc/service/ledger"

	"github.com/holiman/uint256"
)

// Oracle converts a usd amount back into collateral units
type Oracle interface {
	TokenAmountFromUSD(ctx context.Context, asset string, usdAmount *uint256.Int) (*uint256.Int, error)
}

// Result outcome of a liquidation
type Result struct {
	Base              *uint256.Int `json:"base"`
	Bonus             *uint256.Int `json:"bonus"`
	Total             *uint256.Int `json:"total"`
	StartHealthFactor *uint256.Int `json:"start_health_factor"`
	EndHealthFactor   *uint256.Int `json:"end_health_factor"`
	DebtCovered       *uint256.Int `json:"debt_covered"`
	Asset             string       `json:"asset"`
	Target            string       `json:"target"`
	Liquidator        string       `json:"liquidator"`
}

// Liquidator seizes collateral of unhealthy accounts in exchange for their debt
type Liquidator struct {
	registry *core.AssetRegistry
	ledger   *ledger.Ledger
	oracle   Oracle
}

// New new liquidator
func New(registry *core.AssetRegistry, l *ledger.Ledger, oracle Oracle) *Liquidator {
	return &Liquidator{
		registry: registry,
		ledger:   l,
		oracle:   oracle,
	}
}

// SeizeAmount collateral owed for debtToCover: base and base plus the bonus
func (s *Liquidator) SeizeAmount(ctx context.Context, asset string, debtToCover *uint256.Int) (base, bonus, total *uint256.Int, err error) {
	base, err = s.oracle.TokenAmountFromUSD(ctx, asset, debtToCover)
	if err != nil {
		return nil, nil, nil, err
	}

	bonus, overflow := new(uint256.Int).MulDivOverflow(base, health.LiquidationBonus, health.LiquidationPrecision)
	if overflow {
		return nil, nil, nil, core.ErrOverflow
	}

	total, overflow = new(uint256.Int).AddOverflow(base, bonus)
	if overflow {
		return nil, nil, nil, core.ErrOverflow
	}

	return base, bonus, total, nil
}

// Liquidate cover debtToCover of target's debt and seize asset plus a bonus.
// Any failure leaves tx for the caller to discard.
func (s *Liquidator) Liquidate(ctx context.Context, tx core.StateWriter, liquidator, asset, target string, debtToCover *uint256.Int) (*Result, error) {
	if debtToCover.IsZero() {
		return nil, core.ErrInvalidAmount
	}

	if !s.registry.IsSupported(asset) {
		return nil, core.ErrUnsupportedAsset
	}

	if liquidator == "" || target == "" {
		return nil, core.ErrInvalidAddress
	}

	start, err := s.ledger.HealthFactor(ctx, tx, target)
	if err != nil {
		return nil, err
	}

	if health.IsHealthy(start) {
		return nil, core.ErrHealthFactorOK
	}

	base, bonus, total, err := s.SeizeAmount(ctx, asset, debtToCover)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.RedeemCollateral(ctx, tx, target, liquidator, asset, total); err != nil {
		return nil, err
	}

	// the liquidator must stay healthy after receiving the collateral
	if err := s.ledger.RequireHealthy(ctx, tx, liquidator); err != nil {
		return nil, err
	}

	if err := s.ledger.BurnDebt(ctx, tx, debtToCover, target, liquidator); err != nil {
		return nil, err
	}

	end, err := s.ledger.HealthFactor(ctx, tx, target)
	if err != nil {
		return nil, err
	}

	if !end.Gt(start) {
		return nil, core.ErrHealthFactorNotImproved
	}

	if err := s.ledger.RequireHealthy(ctx, tx, liquidator); err != nil {
		return nil, err
	}

	data := core.NewEventExtra()
	data.Put(core.EventKeyDebtCovered, debtToCover.Dec())
	data.Put(core.EventKeyBonus, bonus.Dec())
	data.Put(core.EventKeyStartHealthFactor, start.Dec())
	data.Put(core.EventKeyEndHealthFactor, end.Dec())

	event := core.NewEvent(core.EventLiquidated, liquidator, target, asset, total).WithData(data)
	event.TraceID = id.TraceIDOf(ctx)
	if err := tx.Emit(ctx, event); err != nil {
		return nil, err
	}

	return &Result{
		Base:              base,
		Bonus:             bonus,
		Total:             total,
		StartHealthFactor: start,
		EndHealthFactor:   end,
		DebtCovered:       debtToCover.Clone(),
		Asset:             asset,
		Target:            target,
		Liquidator:        liquidator,
	}, nil
}
