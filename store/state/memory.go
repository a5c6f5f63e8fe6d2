package state

import (
	"context"
	"sort"
	"sync"
	"time"

	"dsc/core"

	"github.com/holiman/uint256"
	"github.com/jmoiron/sqlx/types"
)

type collateralKey struct{ user, asset string }

type balanceKey struct{ token, holder string }

type allowanceKey struct{ token, owner, spender string }

type tables struct {
	collateral map[collateralKey]*uint256.Int
	debt       map[string]*uint256.Int
	balances   map[balanceKey]*uint256.Int
	allowances map[allowanceKey]*uint256.Int
	supply     map[string]*uint256.Int
}

func newTables() tables {
	return tables{
		collateral: make(map[collateralKey]*uint256.Int),
		debt:       make(map[string]*uint256.Int),
		balances:   make(map[balanceKey]*uint256.Int),
		allowances: make(map[allowanceKey]*uint256.Int),
		supply:     make(map[string]*uint256.Int),
	}
}

type memoryStore struct {
	// serializes Update calls
	writeMu sync.Mutex
	// guards committed data
	mu       sync.RWMutex
	data     tables
	accounts map[string]struct{}
	events   []*core.Event
	lastID   int64
}

// NewMemory new in memory state store
func NewMemory() core.IStateStore {
	return &memoryStore{
		data:     newTables(),
		accounts: make(map[string]struct{}),
	}
}

func valueOf(v *uint256.Int, ok bool) *uint256.Int {
	if !ok || v == nil {
		return new(uint256.Int)
	}

	return v.Clone()
}

func (s *memoryStore) Collateral(_ context.Context, user, asset string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.collateral[collateralKey{user, asset}]
	return valueOf(v, ok), nil
}

func (s *memoryStore) Debt(_ context.Context, user string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.debt[user]
	return valueOf(v, ok), nil
}

func (s *memoryStore) Balance(_ context.Context, token, holder string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.balances[balanceKey{token, holder}]
	return valueOf(v, ok), nil
}

func (s *memoryStore) Allowance(_ context.Context, token, owner, spender string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.allowances[allowanceKey{token, owner, spender}]
	return valueOf(v, ok), nil
}

func (s *memoryStore) TotalSupply(_ context.Context, token string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.supply[token]
	return valueOf(v, ok), nil
}

func (s *memoryStore) Accounts(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]string, 0, len(s.accounts))
	for account := range s.accounts {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts, nil
}

func (s *memoryStore) Events(_ context.Context, offset int64, limit int) ([]*core.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].ID > offset
	})

	events := make([]*core.Event, 0)
	for _, e := range s.events[idx:] {
		if limit > 0 && len(events) >= limit {
			break
		}

		event := *e
		events = append(events, &event)
	}

	return events, nil
}

func (s *memoryStore) Update(ctx context.Context, fn func(tx core.StateWriter) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx := &memoryTx{
		store:    s,
		staged:   newTables(),
		accounts: make(map[string]struct{}),
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.commit(tx)
	return nil
}

func (s *memoryStore) commit(tx *memoryTx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range tx.staged.collateral {
		s.data.collateral[k] = v
	}
	for k, v := range tx.staged.debt {
		s.data.debt[k] = v
	}
	for k, v := range tx.staged.balances {
		s.data.balances[k] = v
	}
	for k, v := range tx.staged.allowances {
		s.data.allowances[k] = v
	}
	for k, v := range tx.staged.supply {
		s.data.supply[k] = v
	}
	for account := range tx.accounts {
		s.accounts[account] = struct{}{}
	}

	now := time.Now()
	for _, e := range tx.events {
		s.lastID++
		e.ID = s.lastID
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		s.events = append(s.events, e)
	}
}

// memoryTx staged writes, reads fall through to committed data
type memoryTx struct {
	store    *memoryStore
	staged   tables
	accounts map[string]struct{}
	events   []*core.Event
}

func (tx *memoryTx) Collateral(ctx context.Context, user, asset string) (*uint256.Int, error) {
	if v, ok := tx.staged.collateral[collateralKey{user, asset}]; ok {
		return v.Clone(), nil
	}

	return tx.store.Collateral(ctx, user, asset)
}

func (tx *memoryTx) Debt(ctx context.Context, user string) (*uint256.Int, error) {
	if v, ok := tx.staged.debt[user]; ok {
		return v.Clone(), nil
	}

	return tx.store.Debt(ctx, user)
}

func (tx *memoryTx) Balance(ctx context.Context, token, holder string) (*uint256.Int, error) {
	if v, ok := tx.staged.balances[balanceKey{token, holder}]; ok {
		return v.Clone(), nil
	}

	return tx.store.Balance(ctx, token, holder)
}

func (tx *memoryTx) Allowance(ctx context.Context, token, owner, spender string) (*uint256.Int, error) {
	if v, ok := tx.staged.allowances[allowanceKey{token, owner, spender}]; ok {
		return v.Clone(), nil
	}

	return tx.store.Allowance(ctx, token, owner, spender)
}

func (tx *memoryTx) TotalSupply(ctx context.Context, token string) (*uint256.Int, error) {
	if v, ok := tx.staged.supply[token]; ok {
		return v.Clone(), nil
	}

	return tx.store.TotalSupply(ctx, token)
}

func (tx *memoryTx) SetCollateral(_ context.Context, user, asset string, amount *uint256.Int) error {
	tx.staged.collateral[collateralKey{user, asset}] = amount.Clone()
	tx.accounts[user] = struct{}{}
	return nil
}

func (tx *memoryTx) SetDebt(_ context.Context, user string, amount *uint256.Int) error {
	tx.staged.debt[user] = amount.Clone()
	tx.accounts[user] = struct{}{}
	return nil
}

func (tx *memoryTx) SetBalance(_ context.Context, token, holder string, amount *uint256.Int) error {
	tx.staged.balances[balanceKey{token, holder}] = amount.Clone()
	return nil
}

func (tx *memoryTx) SetAllowance(_ context.Context, token, owner, spender string, amount *uint256.Int) error {
	tx.staged.allowances[allowanceKey{token, owner, spender}] = amount.Clone()
	return nil
}

func (tx *memoryTx) SetTotalSupply(_ context.Context, token string, amount *uint256.Int) error {
	tx.staged.supply[token] = amount.Clone()
	return nil
}

func (tx *memoryTx) Emit(_ context.Context, event *core.Event) error {
	e := *event
	if len(e.Data) == 0 {
		e.Data = types.JSONText("{}")
	}

	tx.events = append(tx.events, &e)
	return nil
}
