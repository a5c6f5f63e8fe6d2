package oracle

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"dsc/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundStore map[string]*core.PriceRound

func (s roundStore) Save(_ context.Context, feed string, answer *big.Int, updatedAt time.Time) (*core.PriceRound, error) {
	r := &core.PriceRound{Feed: feed, Answer: answer.String(), UpdatedAt: updatedAt}
	if old, ok := s[feed]; ok {
		r.RoundID = old.RoundID
	}
	r.RoundID++
	s[feed] = r
	return r, nil
}

func (s roundStore) Find(_ context.Context, feed string) (*core.PriceRound, error) {
	if r, ok := s[feed]; ok {
		return r, nil
	}

	return nil, core.ErrPriceNotFound
}

func (s roundStore) All(_ context.Context) ([]*core.PriceRound, error) {
	rounds := make([]*core.PriceRound, 0, len(s))
	for _, r := range s {
		rounds = append(rounds, r)
	}
	return rounds, nil
}

func TestFeedStaleness(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	store := roundStore{}
	_, _ = store.Save(ctx, "eth-usd", big.NewInt(2000e8), now.Add(-time.Hour))
	_, _ = store.Save(ctx, "btc-usd", big.NewInt(30000e8), now.Add(-4*time.Hour))

	feed := NewFeed(store, 3*time.Hour)
	feed.now = func() time.Time { return now }

	r, err := feed.LatestRound(ctx, "eth-usd")
	require.Nil(t, err)
	assert.Equal(t, "200000000000", r.Answer)

	_, err = feed.LatestRound(ctx, "btc-usd")
	assert.True(t, errors.Is(err, core.ErrStalePrice))

	_, err = feed.LatestRound(ctx, "sol-usd")
	assert.True(t, errors.Is(err, core.ErrPriceNotFound))

	feed = NewFeed(store, 0)
	feed.now = func() time.Time { return now }
	_, err = feed.LatestRound(ctx, "btc-usd")
	assert.Nil(t, err)
}

func TestStaticFeedRounds(t *testing.T) {
	feed := NewStaticFeed()
	feed.SetUSD("eth-usd", 2000)
	feed.SetUSD("eth-usd", 2100)

	r, err := feed.LatestRound(context.Background(), "eth-usd")
	require.Nil(t, err)
	assert.EqualValues(t, 2, r.RoundID)
	assert.Equal(t, "210000000000", r.Answer)
}
