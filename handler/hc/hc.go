package hc

import (
	"context"
	"net/http"
	"time"

	"dsc/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Pinger dependency checked on every request, *sql.DB fits
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handle handle hc request
func Handle(version string, pingers ...Pinger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(version, pingers))
	return r
}

func handle(version string, pingers []Pinger) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		for _, p := range pingers {
			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			err := p.PingContext(ctx)
			cancel()

			if err != nil {
				render.Error(w, err)
				return
			}
		}

		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
		})
	}
}
