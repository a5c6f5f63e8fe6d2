package oracle

import (
	"context"
	"time"

	"dsc/core"
)

// Feed price feed backed by the price store
type Feed struct {
	store      core.IPriceStore
	staleAfter time.Duration
	now        func() time.Time
}

// NewFeed new store backed feed, staleAfter <= 0 disables the staleness check
func NewFeed(store core.IPriceStore, staleAfter time.Duration) *Feed {
	return &Feed{
		store:      store,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// LatestRound latest round of feed
func (f *Feed) LatestRound(ctx context.Context, feed string) (*core.PriceRound, error) {
	round, err := f.store.Find(ctx, feed)
	if err != nil {
		return nil, err
	}

	if f.staleAfter > 0 && f.now().Sub(round.UpdatedAt) > f.staleAfter {
		return nil, core.ErrStalePrice
	}

	return round, nil
}
