package core

import (
	"context"

	"github.com/holiman/uint256"
)

// IToken fungible token ledger. Writes go through the caller's store
// transaction so they commit or roll back with the engine operation.
type IToken interface {
	Address() string
	BalanceOf(ctx context.Context, r StateReader, account string) (*uint256.Int, error)
	Allowance(ctx context.Context, r StateReader, owner, spender string) (*uint256.Int, error)
	Approve(ctx context.Context, tx StateWriter, owner, spender string, amount *uint256.Int) (bool, error)
	Transfer(ctx context.Context, tx StateWriter, from, to string, amount *uint256.Int) (bool, error)
	TransferFrom(ctx context.Context, tx StateWriter, spender, from, to string, amount *uint256.Int) (bool, error)
}

// ISyntheticToken the dollar pegged token minted against collateral
type ISyntheticToken interface {
	IToken
	Mint(ctx context.Context, tx StateWriter, caller, to string, amount *uint256.Int) (bool, error)
	Burn(ctx context.Context, tx StateWriter, caller string, amount *uint256.Int) error
	TotalSupply(ctx context.Context, r StateReader) (*uint256.Int, error)
}

// ITokenResolver collateral token by asset handle
type ITokenResolver interface {
	Token(asset string) (IToken, error)
}
