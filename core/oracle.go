package core

import (
	"context"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// FeedDecimals implied decimals of PriceRound answers
const FeedDecimals = 8

// PriceRound latest answer of a price feed, 8 implied decimals
type PriceRound struct {
	Feed      string    `gorm:"primaryKey;size:128" json:"feed"`
	RoundID   uint64    `json:"round_id"`
	Answer    string    `gorm:"size:80" json:"answer"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TableName gorm table name
func (PriceRound) TableName() string {
	return "price_rounds"
}

// AnswerValue answer as a signed integer
func (r *PriceRound) AnswerValue() (*big.Int, bool) {
	return new(big.Int).SetString(r.Answer, 10)
}

// PriceTicker price ticker pulled from the price endpoint
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Feed     string          `json:"feed,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceFeed external read-only price source
type IPriceFeed interface {
	LatestRound(ctx context.Context, feed string) (*PriceRound, error)
}

// IPriceStore price round store
type IPriceStore interface {
	Save(ctx context.Context, feed string, answer *big.Int, updatedAt time.Time) (*PriceRound, error)
	Find(ctx context.Context, feed string) (*PriceRound, error)
	All(ctx context.Context) ([]*PriceRound, error)
}

// IPriceTickerService pulls prices from the configured endpoint
type IPriceTickerService interface {
	PullPriceTicker(ctx context.Context, feed string) (*PriceTicker, error)
}
