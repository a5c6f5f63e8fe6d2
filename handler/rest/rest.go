package rest

import (
	"errors"
	"net/http"
	"sync"

	"dsc/handler/render"
	"dsc/service/engine"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(e *engine.Engine) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/params", paramsHandler(e))
	router.Get("/assets", assetsHandler(e))
	router.Get("/accounts/{user}", accountHandler(e))
	router.Get("/accounts/{user}/health", healthHandler(e))
	router.Get("/usd-value", usdValueHandler(e))
	router.Get("/token-amount", tokenAmountHandler(e))
	router.Get("/solvency", solvencyHandler(e))
	router.Get("/events", eventsHandler(e))

	// actions queue here instead of tripping the engine's reentrancy guard
	var mu sync.Mutex
	router.Post("/actions/{action}", actionHandler(e, &mu, actions))

	return router
}
