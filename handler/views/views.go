package views

import (
	"context"

	"dsc/core"
	"dsc/internal/health"
	"dsc/pkg/number"
	"dsc/service/engine"
	"dsc/service/liquidation"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Amount base units next to their 18 decimal reading
type Amount struct {
	Value   *uint256.Int    `json:"value"`
	Decimal decimal.Decimal `json:"decimal"`
}

// NewAmount new amount view
func NewAmount(v *uint256.Int) Amount {
	return Amount{Value: v, Decimal: number.FromWad(v, number.WadDecimals)}
}

// HealthFactor health factor view, Max marks an account without debt
type HealthFactor struct {
	Amount
	Max     bool `json:"max"`
	Healthy bool `json:"healthy"`
}

// NewHealthFactor new health factor view
func NewHealthFactor(hf *uint256.Int) HealthFactor {
	return HealthFactor{
		Amount:  NewAmount(hf),
		Max:     health.IsMax(hf),
		Healthy: health.IsHealthy(hf),
	}
}

// Params engine constants
type Params struct {
	Engine                  string       `json:"engine"`
	SyntheticToken          string       `json:"synthetic_token"`
	Precision               *uint256.Int `json:"precision"`
	AdditionalFeedPrecision *uint256.Int `json:"additional_feed_precision"`
	LiquidationThreshold    *uint256.Int `json:"liquidation_threshold"`
	LiquidationBonus        *uint256.Int `json:"liquidation_bonus"`
	LiquidationPrecision    *uint256.Int `json:"liquidation_precision"`
	MinHealthFactor         *uint256.Int `json:"min_health_factor"`
}

// NewParams params of e
func NewParams(e *engine.Engine) Params {
	return Params{
		Engine:                  e.Address(),
		SyntheticToken:          e.SyntheticToken(),
		Precision:               e.Precision(),
		AdditionalFeedPrecision: e.AdditionalFeedPrecision(),
		LiquidationThreshold:    e.LiquidationThreshold(),
		LiquidationBonus:        e.LiquidationBonus(),
		LiquidationPrecision:    e.LiquidationPrecision(),
		MinHealthFactor:         e.MinHealthFactor(),
	}
}

// Collateral deposited amount of one asset
type Collateral struct {
	Asset  string `json:"asset"`
	Amount Amount `json:"amount"`
}

// Account account view
type Account struct {
	User          string        `json:"user"`
	Collaterals   []*Collateral `json:"collaterals"`
	Debt          Amount        `json:"debt"`
	CollateralUSD Amount        `json:"collateral_usd"`
	HealthFactor  HealthFactor  `json:"health_factor"`
}

// NewAccount read the account view of user
func NewAccount(ctx context.Context, e *engine.Engine, user string) (*Account, error) {
	view := &Account{User: user}
	for _, asset := range e.SupportedAssets() {
		amount, err := e.CollateralBalanceOf(ctx, user, asset)
		if err != nil {
			return nil, err
		}

		view.Collaterals = append(view.Collaterals, &Collateral{
			Asset:  asset,
			Amount: NewAmount(amount),
		})
	}

	debt, usd, err := e.AccountInformation(ctx, user)
	if err != nil {
		return nil, err
	}

	view.Debt = NewAmount(debt)
	view.CollateralUSD = NewAmount(usd)
	view.HealthFactor = NewHealthFactor(e.CalculateHealthFactor(debt, usd))
	return view, nil
}

// Custody engine holding of one asset
type Custody struct {
	Asset    string `json:"asset"`
	Amount   Amount `json:"amount"`
	ValueUSD Amount `json:"value_usd"`
}

// Solvency protocol solvency view
type Solvency struct {
	Assets          []Custody `json:"assets"`
	CollateralUSD   Amount    `json:"collateral_usd"`
	SyntheticSupply Amount    `json:"synthetic_supply"`
	Solvent         bool      `json:"solvent"`
}

// NewSolvency new solvency view
func NewSolvency(s *engine.Solvency) Solvency {
	view := Solvency{
		CollateralUSD:   NewAmount(s.CollateralUSD),
		SyntheticSupply: NewAmount(s.SyntheticSupply),
		Solvent:         s.Solvent,
	}

	view.Assets = make([]Custody, len(s.Assets))
	for idx, c := range s.Assets {
		view.Assets[idx] = Custody{
			Asset:    c.Asset,
			Amount:   NewAmount(c.Amount),
			ValueUSD: NewAmount(c.ValueUSD),
		}
	}

	return view
}

// Liquidation liquidation result view
type Liquidation struct {
	Liquidator        string       `json:"liquidator"`
	Target            string       `json:"target"`
	Asset             string       `json:"asset"`
	DebtCovered       Amount       `json:"debt_covered"`
	Base              Amount       `json:"base"`
	Bonus             Amount       `json:"bonus"`
	Total             Amount       `json:"total"`
	StartHealthFactor HealthFactor `json:"start_health_factor"`
	EndHealthFactor   HealthFactor `json:"end_health_factor"`
}

// NewLiquidation new liquidation view
func NewLiquidation(r *liquidation.Result) Liquidation {
	return Liquidation{
		Liquidator:        r.Liquidator,
		Target:            r.Target,
		Asset:             r.Asset,
		DebtCovered:       NewAmount(r.DebtCovered),
		Base:              NewAmount(r.Base),
		Bonus:             NewAmount(r.Bonus),
		Total:             NewAmount(r.Total),
		StartHealthFactor: NewHealthFactor(r.StartHealthFactor),
		EndHealthFactor:   NewHealthFactor(r.EndHealthFactor),
	}
}

// Events events page
type Events struct {
	Events     []*core.Event `json:"events"`
	NextOffset int64         `json:"next_offset"`
}
