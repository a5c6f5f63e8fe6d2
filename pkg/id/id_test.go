package id

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUUIDFromString(t *testing.T) {
	a := UUIDFromString("price-ETH/USD-1")
	b := UUIDFromString("price-ETH/USD-1")
	c := UUIDFromString("price-ETH/USD-2")

	assert.Equal(t, a, b, "same text same id")
	assert.NotEqual(t, a, c)

	u, err := uuid.FromString(a)
	assert.NoError(t, err)
	assert.Equal(t, byte(3), u.Version())
}

func TestGenTraceID(t *testing.T) {
	assert.NotEqual(t, GenTraceID(), GenTraceID())
}

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDOf(ctx))

	traceID := GenTraceID()
	ctx = WithTraceID(ctx, traceID)
	assert.Equal(t, traceID, TraceIDOf(ctx))
}
