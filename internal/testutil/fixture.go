package testutil

import (
	"context"
	"testing"

	"dsc/core"
	"dsc/internal/health"
	"dsc/service/oracle"
	"dsc/service/token"
	"dsc/store/state"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const (
	EngineAddress = "engine"
	Faucet        = "faucet"
	Synthetic     = "DSC"

	WETH = "weth"
	WBTC = "wbtc"

	ETHFeed = "ETH/USD"
	BTCFeed = "BTC/USD"
)

// Fixture collateral tokens, synthetic token, static prices and a memory store
type Fixture struct {
	Store     core.IStateStore
	Feed      *oracle.StaticFeed
	Registry  *core.AssetRegistry
	Synthetic *token.Token
	Tokens    map[string]*token.Token
	Resolver  *token.Registry
	Oracle    *oracle.Adapter
}

// New fixture with weth at $2000 and wbtc at $1000
func New(t testing.TB) *Fixture {
	return NewWithStore(t, state.NewMemory())
}

// NewWithStore fixture on top of s
func NewWithStore(t testing.TB, s core.IStateStore) *Fixture {
	registry, err := core.NewAssetRegistry([]string{WETH, WBTC}, []string{ETHFeed, BTCFeed})
	require.Nil(t, err)

	feed := oracle.NewStaticFeed()
	feed.SetUSD(ETHFeed, 2000)
	feed.SetUSD(BTCFeed, 1000)

	tokens := map[string]*token.Token{
		WETH: token.New(WETH, Faucet),
		WBTC: token.New(WBTC, Faucet),
	}

	return &Fixture{
		Store:     s,
		Feed:      feed,
		Registry:  registry,
		Synthetic: token.New(Synthetic, EngineAddress),
		Tokens:    tokens,
		Resolver:  token.NewRegistry(tokens[WETH], tokens[WBTC]),
		Oracle:    oracle.NewAdapter(registry, feed),
	}
}

// Wad n whole units with 18 decimals
func Wad(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), health.Precision)
}

// Fund mint amount of asset to user and let the engine pull all of it
func (f *Fixture) Fund(t testing.TB, user, asset string, amount *uint256.Int) {
	ctx := context.Background()
	tok := f.Tokens[asset]
	require.NotNil(t, tok, asset)

	require.Nil(t, f.Store.Update(ctx, func(tx core.StateWriter) error {
		if _, err := tok.Mint(ctx, tx, Faucet, user, amount); err != nil {
			return err
		}

		_, err := tok.Approve(ctx, tx, user, EngineAddress, new(uint256.Int).SetAllOne())
		return err
	}))
}

// ApproveSynthetic let the engine pull user's synthetic tokens
func (f *Fixture) ApproveSynthetic(t testing.TB, user string) {
	ctx := context.Background()
	require.Nil(t, f.Store.Update(ctx, func(tx core.StateWriter) error {
		_, err := f.Synthetic.Approve(ctx, tx, user, EngineAddress, new(uint256.Int).SetAllOne())
		return err
	}))
}

// Collateral committed collateral of user
func (f *Fixture) Collateral(t testing.TB, user, asset string) *uint256.Int {
	v, err := f.Store.Collateral(context.Background(), user, asset)
	require.Nil(t, err)
	return v
}

// Debt committed debt of user
func (f *Fixture) Debt(t testing.TB, user string) *uint256.Int {
	v, err := f.Store.Debt(context.Background(), user)
	require.Nil(t, err)
	return v
}

// Balance committed token balance of holder
func (f *Fixture) Balance(t testing.TB, tokenAddress, holder string) *uint256.Int {
	v, err := f.Store.Balance(context.Background(), tokenAddress, holder)
	require.Nil(t, err)
	return v
}
