package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, L, FromContext(ctx))

	entry := L.WithField("op", "deposit")
	ctx = WithContext(ctx, entry)
	assert.Equal(t, "deposit", FromContext(ctx).Data["op"])
}

func TestWithRequestID(t *testing.T) {
	var got interface{}
	h := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context()).Data["request_id"]
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-1")
	h.ServeHTTP(w, req)
	assert.Equal(t, "req-1", got)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, w.Header().Get("X-Request-Id"), got)
}
