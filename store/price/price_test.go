package price

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"dsc/core"
	"dsc/pkg/id"
	"dsc/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceStore(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(core.DB{
		Dialect: "sqlite",
		DSN:     fmt.Sprintf("file:%s?mode=memory&cache=shared", id.GenUUIDString()),
	})
	require.Nil(t, err)
	require.Nil(t, store.Migrate(db))

	s := New(db)

	_, err = s.Find(ctx, "ETH/USD")
	assert.True(t, errors.Is(err, core.ErrPriceNotFound))

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r, err := s.Save(ctx, "ETH/USD", big.NewInt(200000000000), at)
	require.Nil(t, err)
	assert.EqualValues(t, 1, r.RoundID)

	r, err = s.Save(ctx, "ETH/USD", big.NewInt(210000000000), at.Add(time.Minute))
	require.Nil(t, err)
	assert.EqualValues(t, 2, r.RoundID)

	_, err = s.Save(ctx, "BTC/USD", big.NewInt(3000000000000), at)
	require.Nil(t, err)

	r, err = s.Find(ctx, "ETH/USD")
	require.Nil(t, err)
	assert.Equal(t, "210000000000", r.Answer)
	assert.True(t, r.UpdatedAt.Equal(at.Add(time.Minute)))

	rounds, err := s.All(ctx)
	require.Nil(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "BTC/USD", rounds[0].Feed)
}
