package rest

import (
	"net/http"

	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/service/engine"

	"github.com/go-chi/chi"
)

func paramsHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, views.NewParams(e))
	}
}

func assetsHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, e.Pairs())
	}
}

func accountHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := views.NewAccount(r.Context(), e, chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, view)
	}
}

func healthHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hf, err := e.HealthFactorOf(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.NewHealthFactor(hf))
	}
}

func solvencyHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := e.ProtocolSolvency(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.NewSolvency(s))
	}
}
