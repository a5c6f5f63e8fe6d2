package state

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"dsc/core"
	"dsc/store"

	"github.com/holiman/uint256"
	"github.com/jmoiron/sqlx/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// amounts are stored as decimal strings so both dialects hold the full 256 bits

type collateralRow struct {
	Account   string `gorm:"primaryKey;size:128"`
	Asset     string `gorm:"primaryKey;size:128"`
	Amount    string `gorm:"size:80"`
	UpdatedAt time.Time
}

func (collateralRow) TableName() string { return "collaterals" }

type debtRow struct {
	Account   string `gorm:"primaryKey;size:128"`
	Amount    string `gorm:"size:80"`
	UpdatedAt time.Time
}

func (debtRow) TableName() string { return "debts" }

type balanceRow struct {
	Token     string `gorm:"primaryKey;size:128"`
	Holder    string `gorm:"primaryKey;size:128"`
	Amount    string `gorm:"size:80"`
	UpdatedAt time.Time
}

func (balanceRow) TableName() string { return "token_balances" }

type allowanceRow struct {
	Token     string `gorm:"primaryKey;size:128"`
	Owner     string `gorm:"primaryKey;size:128"`
	Spender   string `gorm:"primaryKey;size:128"`
	Amount    string `gorm:"size:80"`
	UpdatedAt time.Time
}

func (allowanceRow) TableName() string { return "token_allowances" }

type supplyRow struct {
	Token     string `gorm:"primaryKey;size:128"`
	Amount    string `gorm:"size:80"`
	UpdatedAt time.Time
}

func (supplyRow) TableName() string { return "token_supplies" }

func init() {
	store.RegisterMigrate(func(db *gorm.DB) error {
		return db.AutoMigrate(
			&collateralRow{},
			&debtRow{},
			&balanceRow{},
			&allowanceRow{},
			&supplyRow{},
			&core.Event{},
		)
	})
}

type stateStore struct {
	db *gorm.DB
}

// New new sql state store
func New(db *gorm.DB) core.IStateStore {
	return &stateStore{db: db}
}

func (s *stateStore) Collateral(ctx context.Context, user, asset string) (*uint256.Int, error) {
	return reader{s.db.WithContext(ctx)}.Collateral(ctx, user, asset)
}

func (s *stateStore) Debt(ctx context.Context, user string) (*uint256.Int, error) {
	return reader{s.db.WithContext(ctx)}.Debt(ctx, user)
}

func (s *stateStore) Balance(ctx context.Context, token, holder string) (*uint256.Int, error) {
	return reader{s.db.WithContext(ctx)}.Balance(ctx, token, holder)
}

func (s *stateStore) Allowance(ctx context.Context, token, owner, spender string) (*uint256.Int, error) {
	return reader{s.db.WithContext(ctx)}.Allowance(ctx, token, owner, spender)
}

func (s *stateStore) TotalSupply(ctx context.Context, token string) (*uint256.Int, error) {
	return reader{s.db.WithContext(ctx)}.TotalSupply(ctx, token)
}

func (s *stateStore) Accounts(ctx context.Context) ([]string, error) {
	var collateralAccounts, debtAccounts []string
	db := s.db.WithContext(ctx)

	if err := db.Model(&collateralRow{}).Distinct().Pluck("account", &collateralAccounts).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&debtRow{}).Distinct().Pluck("account", &debtAccounts).Error; err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(collateralAccounts)+len(debtAccounts))
	for _, account := range append(collateralAccounts, debtAccounts...) {
		set[account] = struct{}{}
	}

	accounts := make([]string, 0, len(set))
	for account := range set {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts, nil
}

func (s *stateStore) Events(ctx context.Context, offset int64, limit int) ([]*core.Event, error) {
	if limit <= 0 {
		limit = -1
	}

	var events []*core.Event
	if err := s.db.WithContext(ctx).
		Where("id > ?", offset).
		Order("id").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (s *stateStore) Update(ctx context.Context, fn func(tx core.StateWriter) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&writer{reader{tx}})
	}, txOptions(s.db.Dialector.Name())...)
}

// txOptions isolation of write transactions. Several processes may share the
// database, so postgres runs them serializable; sqlite already serializes
// writers on the database lock.
func txOptions(dialect string) []*sql.TxOptions {
	if dialect == "postgres" {
		return []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	}

	return nil
}

type reader struct {
	db *gorm.DB
}

func parseAmount(v string) (*uint256.Int, error) {
	if v == "" {
		return new(uint256.Int), nil
	}

	return uint256.FromDecimal(v)
}

// find loads the row matching conds into dest, a missing row reads as zero
func (r reader) find(dest interface{}, amount *string, conds ...interface{}) (*uint256.Int, error) {
	tx := r.db.Where(conds[0], conds[1:]...).Limit(1).Find(dest)
	if tx.Error != nil {
		return nil, tx.Error
	}

	if tx.RowsAffected == 0 {
		return new(uint256.Int), nil
	}

	return parseAmount(*amount)
}

func (r reader) Collateral(_ context.Context, user, asset string) (*uint256.Int, error) {
	var row collateralRow
	return r.find(&row, &row.Amount, "account = ? AND asset = ?", user, asset)
}

func (r reader) Debt(_ context.Context, user string) (*uint256.Int, error) {
	var row debtRow
	return r.find(&row, &row.Amount, "account = ?", user)
}

func (r reader) Balance(_ context.Context, token, holder string) (*uint256.Int, error) {
	var row balanceRow
	return r.find(&row, &row.Amount, "token = ? AND holder = ?", token, holder)
}

func (r reader) Allowance(_ context.Context, token, owner, spender string) (*uint256.Int, error) {
	var row allowanceRow
	return r.find(&row, &row.Amount, "token = ? AND owner = ? AND spender = ?", token, owner, spender)
}

func (r reader) TotalSupply(_ context.Context, token string) (*uint256.Int, error) {
	var row supplyRow
	return r.find(&row, &row.Amount, "token = ?", token)
}

type writer struct {
	reader
}

func (w *writer) upsert(row interface{}) error {
	return w.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

func (w *writer) SetCollateral(_ context.Context, user, asset string, amount *uint256.Int) error {
	return w.upsert(&collateralRow{Account: user, Asset: asset, Amount: amount.Dec()})
}

func (w *writer) SetDebt(_ context.Context, user string, amount *uint256.Int) error {
	return w.upsert(&debtRow{Account: user, Amount: amount.Dec()})
}

func (w *writer) SetBalance(_ context.Context, token, holder string, amount *uint256.Int) error {
	return w.upsert(&balanceRow{Token: token, Holder: holder, Amount: amount.Dec()})
}

func (w *writer) SetAllowance(_ context.Context, token, owner, spender string, amount *uint256.Int) error {
	return w.upsert(&allowanceRow{Token: token, Owner: owner, Spender: spender, Amount: amount.Dec()})
}

func (w *writer) SetTotalSupply(_ context.Context, token string, amount *uint256.Int) error {
	return w.upsert(&supplyRow{Token: token, Amount: amount.Dec()})
}

func (w *writer) Emit(_ context.Context, event *core.Event) error {
	e := *event
	if len(e.Data) == 0 {
		e.Data = types.JSONText("{}")
	}

	return w.db.Create(&e).Error
}
