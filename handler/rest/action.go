package rest

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/pkg/number"
	"dsc/service/engine"

	"github.com/go-chi/chi"
	"github.com/holiman/uint256"
)

type actionRequest struct {
	User       string `json:"user" valid:"required"`
	Asset      string `json:"asset"`
	Amount     string `json:"amount"`
	DebtAmount string `json:"debt_amount"`
	Target     string `json:"target"`
}

// amounts are optional per action, a missing one reads as zero and is
// rejected by the engine where it matters
func parseOptional(v string) (*uint256.Int, error) {
	if v == "" {
		return new(uint256.Int), nil
	}

	amount, ok := number.ParseAmount(v, false)
	if !ok {
		return nil, core.ErrInvalidAmount
	}

	return amount, nil
}

type action func(ctx context.Context, e *engine.Engine, req actionRequest, amount, debtAmount *uint256.Int) (interface{}, error)

var actions = map[string]action{
	"deposit": func(ctx context.Context, e *engine.Engine, req actionRequest, amount, _ *uint256.Int) (interface{}, error) {
		return nil, e.DepositCollateral(ctx, req.User, req.Asset, amount)
	},
	"redeem": func(ctx context.Context, e *engine.Engine, req actionRequest, amount, _ *uint256.Int) (interface{}, error) {
		return nil, e.RedeemCollateral(ctx, req.User, req.Asset, amount)
	},
	"mint": func(ctx context.Context, e *engine.Engine, req actionRequest, _, debtAmount *uint256.Int) (interface{}, error) {
		return nil, e.MintDebt(ctx, req.User, debtAmount)
	},
	"burn": func(ctx context.Context, e *engine.Engine, req actionRequest, _, debtAmount *uint256.Int) (interface{}, error) {
		return nil, e.BurnDebt(ctx, req.User, debtAmount)
	},
	"deposit-mint": func(ctx context.Context, e *engine.Engine, req actionRequest, amount, debtAmount *uint256.Int) (interface{}, error) {
		return nil, e.DepositCollateralAndMint(ctx, req.User, req.Asset, amount, debtAmount)
	},
	"redeem-burn": func(ctx context.Context, e *engine.Engine, req actionRequest, amount, debtAmount *uint256.Int) (interface{}, error) {
		return nil, e.RedeemCollateralAndBurn(ctx, req.User, req.Asset, amount, debtAmount)
	},
	"liquidate": func(ctx context.Context, e *engine.Engine, req actionRequest, _, debtAmount *uint256.Int) (interface{}, error) {
		if req.Target == "" {
			return nil, core.ErrInvalidAddress
		}

		result, err := e.Liquidate(ctx, req.User, req.Asset, req.Target, debtAmount)
		if err != nil {
			return nil, err
		}

		return views.NewLiquidation(result), nil
	},
}

func actionHandler(e *engine.Engine, mu *sync.Mutex, table map[string]action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn, ok := table[chi.URLParam(r, "action")]
		if !ok {
			render.NotFoundRequest(w, errors.New("unknown action"))
			return
		}

		var req actionRequest
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseOptional(req.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		debtAmount, err := parseOptional(req.DebtAmount)
		if err != nil {
			render.Error(w, err)
			return
		}

		result, err := func() (interface{}, error) {
			mu.Lock()
			defer mu.Unlock()
			return fn(r.Context(), e, req, amount, debtAmount)
		}()

		if err != nil {
			render.Error(w, err)
			return
		}

		if result == nil {
			result = render.H{"ok": true}
		}

		render.JSON(w, result)
	}
}
