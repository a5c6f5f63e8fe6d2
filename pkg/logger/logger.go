package logger

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

// L default entry
var L = logrus.NewEntry(logrus.StandardLogger())

// WithContext attach entry to ctx
func WithContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry)
}

// FromContext entry attached to ctx, L if none
func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
		return entry
	}

	return L
}

// WithRequestID tag every request log with a request id
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		w.Header().Set("X-Request-Id", requestID)
		ctx := r.Context()
		ctx = WithContext(ctx, FromContext(ctx).WithField("request_id", requestID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
