package oracle

import (
	"context"
	"math/big"
	"sync"
	"time"

	"dsc/core"
)

// StaticFeed in memory feed with prices set by hand
type StaticFeed struct {
	mu     sync.RWMutex
	rounds map[string]*core.PriceRound
	err    error
}

// NewStaticFeed new static feed
func NewStaticFeed() *StaticFeed {
	return &StaticFeed{rounds: make(map[string]*core.PriceRound)}
}

// Set publish a new answer for feed, 8 decimals
func (f *StaticFeed) Set(feed string, answer *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var roundID uint64 = 1
	if r, ok := f.rounds[feed]; ok {
		roundID = r.RoundID + 1
	}

	f.rounds[feed] = &core.PriceRound{
		Feed:      feed,
		RoundID:   roundID,
		Answer:    answer.String(),
		UpdatedAt: time.Now(),
	}
}

// SetUSD publish a whole dollar price
func (f *StaticFeed) SetUSD(feed string, usd int64) {
	f.Set(feed, new(big.Int).Mul(big.NewInt(usd), big.NewInt(1e8)))
}

// Fail make every read fail with err, nil restores normal reads
func (f *StaticFeed) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// LatestRound latest round of feed
func (f *StaticFeed) LatestRound(_ context.Context, feed string) (*core.PriceRound, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.err != nil {
		return nil, f.err
	}

	r, ok := f.rounds[feed]
	if !ok {
		return nil, core.ErrPriceNotFound
	}

	round := *r
	return &round, nil
}
