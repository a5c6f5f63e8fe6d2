package ledger

import (
	"context"
	"errors"
	"testing"

	"dsc/core"
	"dsc/internal/health"
	"dsc/internal/testutil"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(f *testutil.Fixture) *Ledger {
	return New(testutil.EngineAddress, f.Registry, f.Resolver, f.Synthetic, f.Oracle)
}

func TestDepositAndRedeem(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	l := newLedger(f)
	f.Fund(t, "alice", testutil.WETH, testutil.Wad(10))

	require.Nil(t, f.Store.Update(ctx, func(tx core.StateWriter) error {
		return l.DepositCollateral(ctx, tx, "alice", testutil.WETH, testutil.Wad(10))
	}))

	assert.Equal(t, testutil.Wad(10).Dec(), f.Collateral(t, "alice", testutil.WETH).Dec())
	assert.Equal(t, testutil.Wad(10).Dec(), f.Balance(t, testutil.WETH, testutil.EngineAddress).Dec())
	assert.True(t, f.Balance(t, testutil.WETH, "alice").IsZero())

	require.Nil(t, f.Store.Update(ctx, func(tx core.StateWriter) error {
		return l.RedeemCollateral(ctx, tx, "alice", "bob", testutil.WETH, testutil.Wad(4))
	}))

	assert.Equal(t, testutil.Wad(6).Dec(), f.Collateral(t, "alice", testutil.WETH).Dec())
	assert.Equal(t, testutil.Wad(4).Dec(), f.Balance(t, testutil.WETH, "bob").Dec())

	events, err := f.Store.Events(ctx, 0, 0)
	require.Nil(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, core.EventCollateralDeposited, events[0].Type)
	assert.Equal(t, core.EventCollateralRedeemed, events[1].Type)
	assert.Equal(t, "bob", events[1].To)
}

func TestDepositValidation(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	l := newLedger(f)

	cases := []struct {
		name  string
		user  string
		asset string
		amt   *uint256.Int
		want  error
	}{
		{"zero amount", "alice", testutil.WETH, new(uint256.Int), core.ErrInvalidAmount},
		{"unsupported", "alice", "doge", uint256.NewInt(1), core.ErrUnsupportedAsset},
		{"empty user", "", testutil.WETH, uint256.NewInt(1), core.ErrInvalidAddress},
		{"not funded", "alice", testutil.WETH, uint256.NewInt(1), core.ErrTransferFailed},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := f.Store.Update(ctx, func(tx core.StateWriter) error {
				return l.DepositCollateral(ctx, tx, c.user, c.asset, c.amt)
			})
			assert.True(t, errors.Is(err, c.want), err)
			assert.True(t, f.Collateral(t, "alice", testutil.WETH).IsZero())
		})
	}
}

func TestRedeemTooMuch(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	l := newLedger(f)

	err := f.Store.Update(ctx, func(tx core.StateWriter) error {
		return l.RedeemCollateral(ctx, tx, "alice", "alice", testutil.WETH, uint256.NewInt(1))
	})
	assert.True(t, errors.Is(err, core.ErrInsufficientCollateral))
}

func TestMintAndBurnDebt(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	l := newLedger(f)
	f.Fund(t, "alice", testutil.WETH, testutil.Wad(10))
	f.ApproveSynthetic(t, "alice")

	// $20000 collateral supports exactly $10000
	require.Nil(t, f.Store.Update(ctx, func(tx core.StateWriter) error {
		if err := l.DepositCollateral(ctx, tx, "alice", testutil.WETH, testutil.Wad(10)); err != nil {
			return err
		}
		return l.MintDebt(ctx, tx, "alice", testutil.Wad(10000))
	}))

	assert.Equal(t, testutil.Wad(10000).Dec(), f.Debt(t, "alice").Dec())
	assert.Equal(t, testutil.Wad(10000).Dec(), f.Balance(t, testutil.Synthetic, "alice").Dec())

	hf, err := l.HealthFactor(ctx, f.Store, "alice")
	require.Nil(t, err)
	assert.Equal(t, health.MinHealthFactor.Dec(), hf.Dec())

	err = f.Store.Update(ctx, func(tx core.StateWriter) error {
		return l.MintDebt(ctx, tx, "alice", uint256.NewInt(1))
	})
	var hfErr *core.HealthFactorError
	require.True(t, errors.As(err, &hfErr))
	assert.Equal(t, "alice", hfErr.User)
	assert.Equal(t, "999999999999999999", hfErr.HealthFactor.Dec())
	assert.True(t, errors.Is(err, core.ErrBreaksHealthFactor))

	require.Nil(t, f.Store.Update(ctx, func(tx core.StateWriter) error {
		return l.BurnDebt(ctx, tx, testutil.Wad(4000), "alice", "alice")
	}))

	assert.Equal(t, testutil.Wad(6000).Dec(), f.Debt(t, "alice").Dec())
	assert.Equal(t, testutil.Wad(6000).Dec(), f.Balance(t, testutil.Synthetic, "alice").Dec())
	supply, _ := f.Synthetic.TotalSupply(ctx, f.Store)
	assert.Equal(t, testutil.Wad(6000).Dec(), supply.Dec())

	err = f.Store.Update(ctx, func(tx core.StateWriter) error {
		return l.BurnDebt(ctx, tx, testutil.Wad(6001), "alice", "alice")
	})
	assert.True(t, errors.Is(err, core.ErrInsufficientDebt))
}

func TestBurnDebtPayerWithoutTokens(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	l := newLedger(f)
	f.Fund(t, "alice", testutil.WETH, testutil.Wad(10))

	require.Nil(t, f.Store.Update(ctx, func(tx core.StateWriter) error {
		if err := l.DepositCollateral(ctx, tx, "alice", testutil.WETH, testutil.Wad(10)); err != nil {
			return err
		}
		return l.MintDebt(ctx, tx, "alice", testutil.Wad(100))
	}))

	// no allowance for the engine
	err := f.Store.Update(ctx, func(tx core.StateWriter) error {
		return l.BurnDebt(ctx, tx, testutil.Wad(100), "alice", "alice")
	})
	assert.True(t, errors.Is(err, core.ErrTransferFailed))
	assert.Equal(t, testutil.Wad(100).Dec(), f.Debt(t, "alice").Dec())
}

func TestValuation(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	l := newLedger(f)

	// nothing deposited, no oracle read
	f.Feed.Fail(errors.New("feed down"))
	v, err := l.CollateralValueUSD(ctx, f.Store, "alice")
	require.Nil(t, err)
	assert.True(t, v.IsZero())

	hf, err := l.HealthFactor(ctx, f.Store, "alice")
	require.Nil(t, err)
	assert.True(t, health.IsMax(hf))
	f.Feed.Fail(nil)

	f.Fund(t, "alice", testutil.WETH, testutil.Wad(1))
	f.Fund(t, "alice", testutil.WBTC, testutil.Wad(2))
	require.Nil(t, f.Store.Update(ctx, func(tx core.StateWriter) error {
		if err := l.DepositCollateral(ctx, tx, "alice", testutil.WETH, testutil.Wad(1)); err != nil {
			return err
		}
		return l.DepositCollateral(ctx, tx, "alice", testutil.WBTC, testutil.Wad(2))
	}))

	debt, usd, err := l.AccountInformation(ctx, f.Store, "alice")
	require.Nil(t, err)
	assert.True(t, debt.IsZero())
	assert.Equal(t, testutil.Wad(4000).Dec(), usd.Dec())

	f.Feed.Fail(errors.New("feed down"))
	_, err = l.CollateralValueUSD(ctx, f.Store, "alice")
	assert.NotNil(t, err)
}
