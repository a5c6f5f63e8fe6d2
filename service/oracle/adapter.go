package oracle

import (
	"context"
	"math/big"

	"dsc/core"
	"dsc/internal/health"

	"github.com/holiman/uint256"
)

// Adapter converts between asset quantities and USD values with the
// latest feed price. Every call reads the feed again, nothing is cached.
type Adapter struct {
	registry *core.AssetRegistry
	feed     core.IPriceFeed
}

// NewAdapter new oracle adapter
func NewAdapter(registry *core.AssetRegistry, feed core.IPriceFeed) *Adapter {
	return &Adapter{
		registry: registry,
		feed:     feed,
	}
}

// Price latest price of asset, 8 decimals
func (a *Adapter) Price(ctx context.Context, asset string) (*uint256.Int, error) {
	feed, ok := a.registry.PriceFeed(asset)
	if !ok {
		return nil, core.ErrUnsupportedAsset
	}

	round, err := a.feed.LatestRound(ctx, feed)
	if err != nil {
		return nil, err
	}

	answer, ok := round.AnswerValue()
	if !ok {
		return nil, core.ErrInvalidPrice
	}

	return toPrice(answer)
}

// USDValue price * 1e10 * amount / 1e18
func (a *Adapter) USDValue(ctx context.Context, asset string, amount *uint256.Int) (*uint256.Int, error) {
	price, err := a.Price(ctx, asset)
	if err != nil {
		return nil, err
	}

	scaled, overflow := new(uint256.Int).MulOverflow(price, health.AdditionalFeedPrecision)
	if overflow {
		return nil, core.ErrOverflow
	}

	value, overflow := new(uint256.Int).MulDivOverflow(scaled, amount, health.Precision)
	if overflow {
		return nil, core.ErrOverflow
	}

	return value, nil
}

// TokenAmountFromUSD usd * 1e18 / (price * 1e10), rounded down
func (a *Adapter) TokenAmountFromUSD(ctx context.Context, asset string, usdAmount *uint256.Int) (*uint256.Int, error) {
	price, err := a.Price(ctx, asset)
	if err != nil {
		return nil, err
	}

	scaled, overflow := new(uint256.Int).MulOverflow(price, health.AdditionalFeedPrecision)
	if overflow {
		return nil, core.ErrOverflow
	}

	amount, overflow := new(uint256.Int).MulDivOverflow(usdAmount, health.Precision, scaled)
	if overflow {
		return nil, core.ErrOverflow
	}

	return amount, nil
}

// a zero or negative answer would wrap or divide by zero downstream
func toPrice(answer *big.Int) (*uint256.Int, error) {
	if answer.Sign() <= 0 {
		return nil, core.ErrInvalidPrice
	}

	price, overflow := uint256.FromBig(answer)
	if overflow {
		return nil, core.ErrInvalidPrice
	}

	return price, nil
}
