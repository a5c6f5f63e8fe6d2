package core

import (
	"context"

	"github.com/holiman/uint256"
)

// StateReader ledger and token state, committed or staged
type StateReader interface {
	Collateral(ctx context.Context, user, asset string) (*uint256.Int, error)
	Debt(ctx context.Context, user string) (*uint256.Int, error)
	Balance(ctx context.Context, token, holder string) (*uint256.Int, error)
	Allowance(ctx context.Context, token, owner, spender string) (*uint256.Int, error)
	TotalSupply(ctx context.Context, token string) (*uint256.Int, error)
}

// StateWriter staged writes of one store transaction
type StateWriter interface {
	StateReader
	SetCollateral(ctx context.Context, user, asset string, amount *uint256.Int) error
	SetDebt(ctx context.Context, user string, amount *uint256.Int) error
	SetBalance(ctx context.Context, token, holder string, amount *uint256.Int) error
	SetAllowance(ctx context.Context, token, owner, spender string, amount *uint256.Int) error
	SetTotalSupply(ctx context.Context, token string, amount *uint256.Int) error
	Emit(ctx context.Context, event *Event) error
}

// IStateStore transactional ledger store
type IStateStore interface {
	StateReader
	// Update stages every write done by fn and commits them together only
	// when fn returns nil. Update calls must not be nested.
	Update(ctx context.Context, fn func(tx StateWriter) error) error
	// Accounts identities that ever held collateral or debt
	Accounts(ctx context.Context) ([]string, error)
	// Events committed events with id > offset, ascending
	Events(ctx context.Context, offset int64, limit int) ([]*Event, error)
}
