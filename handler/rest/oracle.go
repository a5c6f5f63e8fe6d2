package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/pkg/number"
	"dsc/service/engine"
)

func usdValueHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Asset  string `json:"asset" valid:"required"`
			Amount string `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, ok := number.ParseAmount(params.Amount, false)
		if !ok {
			render.Error(w, core.ErrInvalidAmount)
			return
		}

		usd, err := e.USDValue(r.Context(), params.Asset, amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.NewAmount(usd))
	}
}

func tokenAmountHandler(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Asset string `json:"asset" valid:"required"`
			USD   string `json:"usd" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		usd, ok := number.ParseAmount(params.USD, false)
		if !ok {
			render.Error(w, core.ErrInvalidAmount)
			return
		}

		amount, err := e.TokenAmountFromUSD(r.Context(), params.Asset, usd)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.NewAmount(amount))
	}
}
