package rest

import (
	"net/http"

	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/service/engine"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

func eventsHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Offset int64 `json:"offset"`
			Limit  int   `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 {
			params.Limit = defaultEventLimit
		} else if params.Limit > maxEventLimit {
			params.Limit = maxEventLimit
		}

		events, err := e.Events(r.Context(), params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		view := views.Events{Events: events, NextOffset: params.Offset}
		if n := len(events); n > 0 {
			view.NextOffset = events[n-1].ID
		}

		render.JSON(w, view)
	}
}
