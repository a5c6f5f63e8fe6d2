package ledger

import (
	"context"

	"dsc/core"
	"dsc/internal/health"
	"dsc/pkg/id"

	"github.com/holiman/uint256"
)

// Oracle usd valuation of collateral
type Oracle interface {
	USDValue(ctx context.Context, asset string, amount *uint256.Int) (*uint256.Int, error)
}

// Ledger per account collateral and debt bookkeeping. Mutations work on a
// staged store transaction, the caller decides when to check health.
type Ledger struct {
	address   string
	registry  *core.AssetRegistry
	tokens    core.ITokenResolver
	synthetic core.ISyntheticToken
	oracle    Oracle
}

// New new ledger, address is the engine's custody identity
func New(
	address string,
	registry *core.AssetRegistry,
	tokens core.ITokenResolver,
	synthetic core.ISyntheticToken,
	oracle Oracle,
) *Ledger {
	return &Ledger{
		address:   address,
		registry:  registry,
		tokens:    tokens,
		synthetic: synthetic,
		oracle:    oracle,
	}
}

func (l *Ledger) emit(ctx context.Context, tx core.StateWriter, event *core.Event) error {
	event.TraceID = id.TraceIDOf(ctx)
	return tx.Emit(ctx, event)
}

func (l *Ledger) collateralToken(asset string) (core.IToken, error) {
	if !l.registry.IsSupported(asset) {
		return nil, core.ErrUnsupportedAsset
	}

	return l.tokens.Token(asset)
}

// DepositCollateral credit amount of asset to user and pull it into custody
func (l *Ledger) DepositCollateral(ctx context.Context, tx core.StateWriter, user, asset string, amount *uint256.Int) error {
	if amount.IsZero() {
		return core.ErrInvalidAmount
	}

	if user == "" {
		return core.ErrInvalidAddress
	}

	token, err := l.collateralToken(asset)
	if err != nil {
		return err
	}

	balance, err := tx.Collateral(ctx, user, asset)
	if err != nil {
		return err
	}

	balance, overflow := new(uint256.Int).AddOverflow(balance, amount)
	if overflow {
		return core.ErrOverflow
	}

	if err := tx.SetCollateral(ctx, user, asset, balance); err != nil {
		return err
	}

	if err := l.emit(ctx, tx, core.NewEvent(core.EventCollateralDeposited, user, "", asset, amount)); err != nil {
		return err
	}

	ok, err := token.TransferFrom(ctx, tx, l.address, user, l.address, amount)
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrTransferFailed
	}

	return nil
}

// RedeemCollateral debit amount of asset from `from` and send it to `to`
func (l *Ledger) RedeemCollateral(ctx context.Context, tx core.StateWriter, from, to, asset string, amount *uint256.Int) error {
	if to == "" {
		return core.ErrInvalidAddress
	}

	token, err := l.collateralToken(asset)
	if err != nil {
		return err
	}

	balance, err := tx.Collateral(ctx, from, asset)
	if err != nil {
		return err
	}

	if balance.Lt(amount) {
		return core.ErrInsufficientCollateral
	}

	if err := tx.SetCollateral(ctx, from, asset, new(uint256.Int).Sub(balance, amount)); err != nil {
		return err
	}

	if err := l.emit(ctx, tx, core.NewEvent(core.EventCollateralRedeemed, from, to, asset, amount)); err != nil {
		return err
	}

	ok, err := token.Transfer(ctx, tx, l.address, to, amount)
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrTransferFailed
	}

	return nil
}

// MintDebt record new debt for user, check its health and mint the synthetic token
func (l *Ledger) MintDebt(ctx context.Context, tx core.StateWriter, user string, amount *uint256.Int) error {
	if amount.IsZero() {
		return core.ErrInvalidAmount
	}

	if user == "" {
		return core.ErrInvalidAddress
	}

	debt, err := tx.Debt(ctx, user)
	if err != nil {
		return err
	}

	debt, overflow := new(uint256.Int).AddOverflow(debt, amount)
	if overflow {
		return core.ErrOverflow
	}

	if err := tx.SetDebt(ctx, user, debt); err != nil {
		return err
	}

	if err := l.RequireHealthy(ctx, tx, user); err != nil {
		return err
	}

	ok, err := l.synthetic.Mint(ctx, tx, l.address, user, amount)
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrMintFailed
	}

	return l.emit(ctx, tx, core.NewEvent(core.EventDebtMinted, user, "", "", amount))
}

// BurnDebt reduce the debt of onBehalfOf, paid with payer's synthetic tokens
func (l *Ledger) BurnDebt(ctx context.Context, tx core.StateWriter, amount *uint256.Int, onBehalfOf, payer string) error {
	if amount.IsZero() {
		return core.ErrInvalidAmount
	}

	debt, err := tx.Debt(ctx, onBehalfOf)
	if err != nil {
		return err
	}

	if debt.Lt(amount) {
		return core.ErrInsufficientDebt
	}

	if err := tx.SetDebt(ctx, onBehalfOf, new(uint256.Int).Sub(debt, amount)); err != nil {
		return err
	}

	ok, err := l.synthetic.TransferFrom(ctx, tx, l.address, payer, l.address, amount)
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrTransferFailed
	}

	if err := l.synthetic.Burn(ctx, tx, l.address, amount); err != nil {
		return err
	}

	return l.emit(ctx, tx, core.NewEvent(core.EventDebtBurned, onBehalfOf, payer, "", amount))
}

// CollateralValueUSD usd value of every supported asset user holds, 18 decimals
func (l *Ledger) CollateralValueUSD(ctx context.Context, r core.StateReader, user string) (*uint256.Int, error) {
	total := new(uint256.Int)

	for _, asset := range l.registry.Assets() {
		amount, err := r.Collateral(ctx, user, asset)
		if err != nil {
			return nil, err
		}

		if amount.IsZero() {
			continue
		}

		value, err := l.oracle.USDValue(ctx, asset, amount)
		if err != nil {
			return nil, err
		}

		if _, overflow := total.AddOverflow(total, value); overflow {
			return nil, core.ErrOverflow
		}
	}

	return total, nil
}

// AccountInformation debt and collateral usd value of user
func (l *Ledger) AccountInformation(ctx context.Context, r core.StateReader, user string) (debt, collateralUSD *uint256.Int, err error) {
	debt, err = r.Debt(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	collateralUSD, err = l.CollateralValueUSD(ctx, r, user)
	if err != nil {
		return nil, nil, err
	}

	return debt, collateralUSD, nil
}

// HealthFactor health factor of user, the max sentinel when user owes nothing
func (l *Ledger) HealthFactor(ctx context.Context, r core.StateReader, user string) (*uint256.Int, error) {
	debt, err := r.Debt(ctx, user)
	if err != nil {
		return nil, err
	}

	if debt.IsZero() {
		return health.Max.Clone(), nil
	}

	collateralUSD, err := l.CollateralValueUSD(ctx, r, user)
	if err != nil {
		return nil, err
	}

	return health.Calculate(debt, collateralUSD), nil
}

// RequireHealthy fails with *core.HealthFactorError when user is below the minimum
func (l *Ledger) RequireHealthy(ctx context.Context, r core.StateReader, user string) error {
	hf, err := l.HealthFactor(ctx, r, user)
	if err != nil {
		return err
	}

	if !health.IsHealthy(hf) {
		return &core.HealthFactorError{User: user, HealthFactor: hf}
	}

	return nil
}
