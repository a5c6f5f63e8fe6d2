package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dsc/handler/rest"
	"dsc/internal/testutil"
	"dsc/service/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Data json.RawMessage `json:"data"`
	Code int             `json:"code"`
	Kind string          `json:"kind"`
	Msg  string          `json:"msg"`
}

type amount struct {
	Value   string `json:"value"`
	Decimal string `json:"decimal"`
}

func setup(t *testing.T) (*testutil.Fixture, http.Handler) {
	f := testutil.New(t)
	e, err := engine.New(engine.Config{
		Address:   testutil.EngineAddress,
		Registry:  f.Registry,
		Synthetic: f.Synthetic,
		Tokens:    f.Resolver,
		Feed:      f.Feed,
		Store:     f.Store,
	})
	require.Nil(t, err)

	return f, rest.Handle(e)
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, response) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp response
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestParams(t *testing.T) {
	_, h := setup(t)

	status, resp := do(t, h, http.MethodGet, "/params", "")
	require.Equal(t, http.StatusOK, status)

	var params struct {
		Engine          string `json:"engine"`
		SyntheticToken  string `json:"synthetic_token"`
		MinHealthFactor string `json:"min_health_factor"`
	}
	require.Nil(t, json.Unmarshal(resp.Data, &params))
	assert.Equal(t, testutil.EngineAddress, params.Engine)
	assert.Equal(t, testutil.Synthetic, params.SyntheticToken)
	assert.Equal(t, "1000000000000000000", params.MinHealthFactor)

	status, resp = do(t, h, http.MethodGet, "/assets", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), testutil.ETHFeed)
}

func TestActionsAndAccount(t *testing.T) {
	f, h := setup(t)
	f.Fund(t, "alice", testutil.WETH, testutil.Wad(10))

	status, _ := do(t, h, http.MethodPost, "/actions/deposit-mint",
		`{"user":"alice","asset":"weth","amount":"10000000000000000000","debt_amount":"10000000000000000000000"}`)
	require.Equal(t, http.StatusOK, status)

	status, resp := do(t, h, http.MethodGet, "/accounts/alice", "")
	require.Equal(t, http.StatusOK, status)

	var account struct {
		User          string `json:"user"`
		Debt          amount `json:"debt"`
		CollateralUSD amount `json:"collateral_usd"`
		Collaterals   []struct {
			Asset  string `json:"asset"`
			Amount amount `json:"amount"`
		} `json:"collaterals"`
		HealthFactor struct {
			Value   string `json:"value"`
			Healthy bool   `json:"healthy"`
			Max     bool   `json:"max"`
		} `json:"health_factor"`
	}
	require.Nil(t, json.Unmarshal(resp.Data, &account))
	assert.Equal(t, "alice", account.User)
	assert.Equal(t, "10000000000000000000000", account.Debt.Value)
	assert.Equal(t, "20000", account.CollateralUSD.Decimal)
	require.Len(t, account.Collaterals, 2)
	assert.Equal(t, testutil.WETH, account.Collaterals[0].Asset)
	assert.Equal(t, "10", account.Collaterals[0].Amount.Decimal)
	assert.Equal(t, "1000000000000000000", account.HealthFactor.Value)
	assert.True(t, account.HealthFactor.Healthy)
	assert.False(t, account.HealthFactor.Max)

	status, resp = do(t, h, http.MethodPost, "/actions/mint", `{"user":"alice","debt_amount":"1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, 100301, resp.Code)
	assert.Equal(t, "solvency", resp.Kind)

	status, resp = do(t, h, http.MethodGet, "/accounts/bob/health", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), `"max":true`)
}

func TestActionValidation(t *testing.T) {
	_, h := setup(t)

	status, _ := do(t, h, http.MethodPost, "/actions/steal", `{"user":"alice"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, resp := do(t, h, http.MethodPost, "/actions/deposit", `{"asset":"weth","amount":"1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, -1, resp.Code)

	status, resp = do(t, h, http.MethodPost, "/actions/deposit", `{"user":"alice","asset":"weth","amount":"1.5"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 100101, resp.Code)

	status, resp = do(t, h, http.MethodPost, "/actions/deposit", `{"user":"alice","asset":"doge","amount":"1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 100102, resp.Code)

	status, resp = do(t, h, http.MethodPost, "/actions/liquidate", `{"user":"bob","asset":"weth","debt_amount":"1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 100104, resp.Code)
}

func TestOracleViews(t *testing.T) {
	_, h := setup(t)

	status, resp := do(t, h, http.MethodGet, "/usd-value?asset=weth&amount=1000000000000000000", "")
	require.Equal(t, http.StatusOK, status)
	var v amount
	require.Nil(t, json.Unmarshal(resp.Data, &v))
	assert.Equal(t, "2000000000000000000000", v.Value)

	status, resp = do(t, h, http.MethodGet, "/token-amount?asset=wbtc&usd=500000000000000000000", "")
	require.Equal(t, http.StatusOK, status)
	require.Nil(t, json.Unmarshal(resp.Data, &v))
	assert.Equal(t, "500000000000000000", v.Value)

	status, _ = do(t, h, http.MethodGet, "/usd-value?asset=weth", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLiquidateAndEvents(t *testing.T) {
	f, h := setup(t)
	f.Fund(t, "alice", testutil.WETH, testutil.Wad(10))
	f.Fund(t, "liquidator", testutil.WETH, testutil.Wad(20))
	f.ApproveSynthetic(t, "liquidator")

	status, _ := do(t, h, http.MethodPost, "/actions/deposit-mint",
		`{"user":"alice","asset":"weth","amount":"10000000000000000000","debt_amount":"10000000000000000000000"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = do(t, h, http.MethodPost, "/actions/deposit-mint",
		`{"user":"liquidator","asset":"weth","amount":"20000000000000000000","debt_amount":"10000000000000000000000"}`)
	require.Equal(t, http.StatusOK, status)

	status, resp := do(t, h, http.MethodPost, "/actions/liquidate",
		`{"user":"liquidator","asset":"weth","target":"alice","debt_amount":"10000000000000000000000"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "liquidation", resp.Kind)

	f.Feed.SetUSD(testutil.ETHFeed, 1800)

	status, resp = do(t, h, http.MethodPost, "/actions/liquidate",
		`{"user":"liquidator","asset":"weth","target":"alice","debt_amount":"10000000000000000000000"}`)
	require.Equal(t, http.StatusOK, status)

	var result struct {
		Target string `json:"target"`
		Total  amount `json:"total"`
	}
	require.Nil(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "alice", result.Target)
	assert.Equal(t, "6111111111111111110", result.Total.Value)

	status, resp = do(t, h, http.MethodGet, "/events?limit=2", "")
	require.Equal(t, http.StatusOK, status)

	var page struct {
		Events []struct {
			ID int64 `json:"id"`
		} `json:"events"`
		NextOffset int64 `json:"next_offset"`
	}
	require.Nil(t, json.Unmarshal(resp.Data, &page))
	require.Len(t, page.Events, 2)
	assert.Equal(t, page.Events[1].ID, page.NextOffset)

	status, resp = do(t, h, http.MethodGet, "/solvency", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), `"solvent":true`)
}
