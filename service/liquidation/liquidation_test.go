package liquidation

import (
	"context"
	"errors"
	"testing"

	"dsc/core"
	"dsc/internal/health"
	"dsc/internal/testutil"
	"dsc/service/ledger"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type suite struct {
	*testutil.Fixture
	ledger     *ledger.Ledger
	liquidator *Liquidator
}

func newSuite(t *testing.T) *suite {
	f := testutil.New(t)
	l := ledger.New(testutil.EngineAddress, f.Registry, f.Resolver, f.Synthetic, f.Oracle)
	return &suite{
		Fixture:    f,
		ledger:     l,
		liquidator: New(f.Registry, l, f.Oracle),
	}
}

// open deposits weth and mints debt at the current price
func (s *suite) open(t *testing.T, user string, collateral, debt *uint256.Int) {
	ctx := context.Background()
	s.Fund(t, user, testutil.WETH, collateral)
	s.ApproveSynthetic(t, user)

	require.Nil(t, s.Store.Update(ctx, func(tx core.StateWriter) error {
		if err := s.ledger.DepositCollateral(ctx, tx, user, testutil.WETH, collateral); err != nil {
			return err
		}
		return s.ledger.MintDebt(ctx, tx, user, debt)
	}))
}

func (s *suite) liquidate(t *testing.T, liquidator, target string, debtToCover *uint256.Int) (*Result, error) {
	ctx := context.Background()
	var result *Result
	err := s.Store.Update(ctx, func(tx core.StateWriter) error {
		r, err := s.liquidator.Liquidate(ctx, tx, liquidator, testutil.WETH, target, debtToCover)
		result = r
		return err
	})
	return result, err
}

func TestSeizeAmount(t *testing.T) {
	s := newSuite(t)
	s.Feed.SetUSD(testutil.ETHFeed, 1000)

	base, bonus, total, err := s.liquidator.SeizeAmount(context.Background(), testutil.WETH, testutil.Wad(5000))
	require.Nil(t, err)
	assert.Equal(t, "5000000000000000000", base.Dec())
	assert.Equal(t, "500000000000000000", bonus.Dec())
	assert.Equal(t, "5500000000000000000", total.Dec())
}

func TestLiquidateHealthyTarget(t *testing.T) {
	s := newSuite(t)
	s.open(t, "alice", testutil.Wad(10), testutil.Wad(10000))

	_, err := s.liquidate(t, "bob", "alice", testutil.Wad(1000))
	assert.True(t, errors.Is(err, core.ErrHealthFactorOK))
}

func TestLiquidateNotImproved(t *testing.T) {
	s := newSuite(t)
	s.open(t, "alice", testutil.Wad(10), testutil.Wad(10000))
	s.open(t, "bob", testutil.Wad(20), testutil.Wad(10000))
	s.Feed.SetUSD(testutil.ETHFeed, 1000)

	_, err := s.liquidate(t, "bob", "alice", testutil.Wad(5000))
	assert.True(t, errors.Is(err, core.ErrHealthFactorNotImproved))

	assert.Equal(t, testutil.Wad(10).Dec(), s.Collateral(t, "alice", testutil.WETH).Dec())
	assert.Equal(t, testutil.Wad(10000).Dec(), s.Debt(t, "alice").Dec())
	assert.Equal(t, testutil.Wad(10000).Dec(), s.Balance(t, testutil.Synthetic, "bob").Dec())
	assert.True(t, s.Balance(t, testutil.WETH, "bob").IsZero())
}

func TestLiquidateFull(t *testing.T) {
	s := newSuite(t)
	s.open(t, "alice", testutil.Wad(10), testutil.Wad(10000))
	s.open(t, "bob", testutil.Wad(20), testutil.Wad(10000))
	s.Feed.SetUSD(testutil.ETHFeed, 1800)

	result, err := s.liquidate(t, "bob", "alice", testutil.Wad(10000))
	require.Nil(t, err)

	assert.Equal(t, "5555555555555555555", result.Base.Dec())
	assert.Equal(t, "555555555555555555", result.Bonus.Dec())
	assert.Equal(t, "6111111111111111110", result.Total.Dec())
	assert.Equal(t, "900000000000000000", result.StartHealthFactor.Dec())
	assert.True(t, health.IsMax(result.EndHealthFactor))

	assert.True(t, s.Debt(t, "alice").IsZero())
	assert.Equal(t, "3888888888888888890", s.Collateral(t, "alice", testutil.WETH).Dec())
	assert.Equal(t, "6111111111111111110", s.Balance(t, testutil.WETH, "bob").Dec())
	assert.True(t, s.Balance(t, testutil.Synthetic, "bob").IsZero())
	// bob's own position is untouched
	assert.Equal(t, testutil.Wad(10000).Dec(), s.Debt(t, "bob").Dec())

	supply, _ := s.Synthetic.TotalSupply(context.Background(), s.Store)
	assert.Equal(t, testutil.Wad(10000).Dec(), supply.Dec())

	events, err := s.Store.Events(context.Background(), 0, 0)
	require.Nil(t, err)
	last := events[len(events)-1]
	assert.Equal(t, core.EventLiquidated, last.Type)
	assert.Equal(t, "bob", last.From)
	assert.Equal(t, "alice", last.To)
	assert.JSONEq(t, `{
		"debt_covered": "10000000000000000000000",
		"bonus": "555555555555555555",
		"start_health_factor": "900000000000000000",
		"end_health_factor": "`+health.Max.Dec()+`"
	}`, last.Data.String())
}

func TestLiquidatePartial(t *testing.T) {
	s := newSuite(t)
	s.open(t, "alice", testutil.Wad(10), testutil.Wad(10000))
	s.open(t, "bob", testutil.Wad(20), testutil.Wad(10000))
	s.Feed.SetUSD(testutil.ETHFeed, 1800)

	result, err := s.liquidate(t, "bob", "alice", testutil.Wad(2000))
	require.Nil(t, err)
	assert.True(t, result.EndHealthFactor.Gt(result.StartHealthFactor))
	assert.Equal(t, testutil.Wad(8000).Dec(), s.Debt(t, "alice").Dec())
}

func TestLiquidatorMustStayHealthy(t *testing.T) {
	s := newSuite(t)
	s.open(t, "alice", testutil.Wad(10), testutil.Wad(10000))
	s.open(t, "bob", testutil.Wad(10), testutil.Wad(10000))
	s.Feed.SetUSD(testutil.ETHFeed, 1800)

	_, err := s.liquidate(t, "bob", "alice", testutil.Wad(2000))
	var hfErr *core.HealthFactorError
	require.True(t, errors.As(err, &hfErr))
	assert.Equal(t, "bob", hfErr.User)
	assert.Equal(t, testutil.Wad(10).Dec(), s.Collateral(t, "alice", testutil.WETH).Dec())
}

func TestLiquidateValidation(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	err := s.Store.Update(ctx, func(tx core.StateWriter) error {
		_, err := s.liquidator.Liquidate(ctx, tx, "bob", testutil.WETH, "alice", new(uint256.Int))
		return err
	})
	assert.True(t, errors.Is(err, core.ErrInvalidAmount))

	err = s.Store.Update(ctx, func(tx core.StateWriter) error {
		_, err := s.liquidator.Liquidate(ctx, tx, "bob", "doge", "alice", uint256.NewInt(1))
		return err
	})
	assert.True(t, errors.Is(err, core.ErrUnsupportedAsset))
}
