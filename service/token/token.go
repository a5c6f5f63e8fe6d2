package token

import (
	"context"

	"dsc/core"

	"github.com/holiman/uint256"
)

// Token fungible token ledger kept in the engine state store.
// Only the owner may mint or burn.
type Token struct {
	address string
	owner   string
}

// New new token ledger
func New(address, owner string) *Token {
	return &Token{
		address: address,
		owner:   owner,
	}
}

// Address token handle
func (t *Token) Address() string {
	return t.address
}

// Owner identity allowed to mint and burn
func (t *Token) Owner() string {
	return t.owner
}

// BalanceOf balance of account
func (t *Token) BalanceOf(ctx context.Context, r core.StateReader, account string) (*uint256.Int, error) {
	return r.Balance(ctx, t.address, account)
}

// Allowance remaining amount spender may move from owner
func (t *Token) Allowance(ctx context.Context, r core.StateReader, owner, spender string) (*uint256.Int, error) {
	return r.Allowance(ctx, t.address, owner, spender)
}

// TotalSupply total minted minus burned
func (t *Token) TotalSupply(ctx context.Context, r core.StateReader) (*uint256.Int, error) {
	return r.TotalSupply(ctx, t.address)
}

// Approve set the allowance of spender over owner's tokens
func (t *Token) Approve(ctx context.Context, tx core.StateWriter, owner, spender string, amount *uint256.Int) (bool, error) {
	if owner == "" || spender == "" {
		return false, core.ErrInvalidAddress
	}

	if err := tx.SetAllowance(ctx, t.address, owner, spender, amount); err != nil {
		return false, err
	}

	return true, nil
}

// Transfer move amount from -> to, false if from holds too little
func (t *Token) Transfer(ctx context.Context, tx core.StateWriter, from, to string, amount *uint256.Int) (bool, error) {
	if to == "" {
		return false, core.ErrInvalidAddress
	}

	return t.move(ctx, tx, from, to, amount)
}

// TransferFrom move amount from -> to on behalf of spender, consuming allowance.
// A max allowance is never decremented.
func (t *Token) TransferFrom(ctx context.Context, tx core.StateWriter, spender, from, to string, amount *uint256.Int) (bool, error) {
	if to == "" {
		return false, core.ErrInvalidAddress
	}

	allowance, err := tx.Allowance(ctx, t.address, from, spender)
	if err != nil {
		return false, err
	}

	if allowance.Lt(amount) {
		return false, nil
	}

	ok, err := t.move(ctx, tx, from, to, amount)
	if err != nil || !ok {
		return ok, err
	}

	if isInfinite(allowance) {
		return true, nil
	}

	left := new(uint256.Int).Sub(allowance, amount)
	if err := tx.SetAllowance(ctx, t.address, from, spender, left); err != nil {
		return false, err
	}

	return true, nil
}

// Mint create amount for to
func (t *Token) Mint(ctx context.Context, tx core.StateWriter, caller, to string, amount *uint256.Int) (bool, error) {
	if caller != t.owner {
		return false, core.ErrNotOwner
	}

	if to == "" {
		return false, core.ErrInvalidAddress
	}

	if amount.IsZero() {
		return false, core.ErrInvalidAmount
	}

	supply, err := tx.TotalSupply(ctx, t.address)
	if err != nil {
		return false, err
	}

	supply, overflow := new(uint256.Int).AddOverflow(supply, amount)
	if overflow {
		return false, core.ErrOverflow
	}

	balance, err := tx.Balance(ctx, t.address, to)
	if err != nil {
		return false, err
	}

	// balance <= supply, so this cannot overflow once supply did not
	balance = new(uint256.Int).Add(balance, amount)

	if err := tx.SetTotalSupply(ctx, t.address, supply); err != nil {
		return false, err
	}

	if err := tx.SetBalance(ctx, t.address, to, balance); err != nil {
		return false, err
	}

	return true, nil
}

// Burn destroy amount of the caller's own balance
func (t *Token) Burn(ctx context.Context, tx core.StateWriter, caller string, amount *uint256.Int) error {
	if caller != t.owner {
		return core.ErrNotOwner
	}

	if amount.IsZero() {
		return core.ErrInvalidAmount
	}

	balance, err := tx.Balance(ctx, t.address, caller)
	if err != nil {
		return err
	}

	if balance.Lt(amount) {
		return core.ErrBurnFailed
	}

	supply, err := tx.TotalSupply(ctx, t.address)
	if err != nil {
		return err
	}

	if err := tx.SetBalance(ctx, t.address, caller, new(uint256.Int).Sub(balance, amount)); err != nil {
		return err
	}

	return tx.SetTotalSupply(ctx, t.address, new(uint256.Int).Sub(supply, amount))
}

func (t *Token) move(ctx context.Context, tx core.StateWriter, from, to string, amount *uint256.Int) (bool, error) {
	balance, err := tx.Balance(ctx, t.address, from)
	if err != nil {
		return false, err
	}

	if balance.Lt(amount) {
		return false, nil
	}

	if from == to {
		return true, nil
	}

	received, err := tx.Balance(ctx, t.address, to)
	if err != nil {
		return false, err
	}

	received, overflow := new(uint256.Int).AddOverflow(received, amount)
	if overflow {
		return false, core.ErrOverflow
	}

	if err := tx.SetBalance(ctx, t.address, from, new(uint256.Int).Sub(balance, amount)); err != nil {
		return false, err
	}

	if err := tx.SetBalance(ctx, t.address, to, received); err != nil {
		return false, err
	}

	return true, nil
}

func isInfinite(v *uint256.Int) bool {
	return v.Eq(new(uint256.Int).SetAllOne())
}
