package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gratuity-box/internal/handler"
	"gratuity-box/internal/model"
	"gratuity-box/internal/service/gratuity"
	"gratuity-box/pkg/config"
)

type stubLedger struct {
	coins []model.FundObject
}

func (s stubLedger) GetBalance(context.Context, string, string) (uint64, error) {
	return 2_000_000_000, nil
}

func (s stubLedger) ListFundObjects(context.Context, string, string) ([]model.FundObject, error) {
	return s.coins, nil
}

func (s stubLedger) GetObjectFields(context.Context, string) (map[string]string, error) {
	return map[string]string{"owner": "0xowner", "total_gratuities": "100000000", "gratuity_count": "1"}, nil
}

type stubExecutor struct{}

func (stubExecutor) Execute(context.Context, model.CallDescription, string) (*model.ExecutionResult, error) {
	return &model.ExecutionResult{Digest: "DgHTTP", Status: "success"}, nil
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestRouter(cfg *config.GratuityConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := gratuity.NewService(gratuity.Options{
		Config:   cfg,
		Ledger:   stubLedger{coins: []model.FundObject{{ObjectID: "0xcoin", Balance: 500_000_000}}},
		Executor: stubExecutor{},
	})
	return NewHTTPRouter(handler.NewGratuityHandler(svc))
}

func do(t *testing.T, r *gin.Engine, method, path, wallet, body string) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if wallet != "" {
		req.Header.Set("X-Wallet-Address", wallet)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRouter_Ping(t *testing.T) {
	r := newTestRouter(&config.GratuityConfig{PackageID: "0xpkg", VaultID: "0xvault"})

	env := do(t, r, http.MethodGet, "/api/v1/ping", "", "")
	assert.Equal(t, 0, env.Code)
	assert.JSONEq(t, `{"pong":true}`, string(env.Data))
}

func TestRouter_SendGratuity(t *testing.T) {
	r := newTestRouter(&config.GratuityConfig{PackageID: "0xpkg", VaultID: "0xvault"})

	env := do(t, r, http.MethodPost, "/api/v1/gratuity", "0xabc", `{"amount":"0.1"}`)
	require.Equal(t, 0, env.Code, env.Msg)

	var res gratuity.SendResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "DgHTTP", res.Digest)
	assert.Equal(t, uint64(100_000_000), res.AmountBaseUnits)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000abc", res.Sender)
}

func TestRouter_SendErrors(t *testing.T) {
	r := newTestRouter(&config.GratuityConfig{PackageID: "0xpkg", VaultID: "0xvault"})

	tests := []struct {
		name     string
		wallet   string
		body     string
		wantCode int
	}{
		{"missing amount", "0xabc", `{}`, 10002},
		{"bad wallet header", "alice", `{"amount":"0.1"}`, 10003},
		{"no wallet", "", `{"amount":"0.1"}`, 30007},
		{"invalid amount", "0xabc", `{"amount":"abc"}`, 30001},
		{"insufficient", "0xabc", `{"amount":"1"}`, 30003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := do(t, r, http.MethodPost, "/api/v1/gratuity", tt.wallet, tt.body)
			assert.Equal(t, tt.wantCode, env.Code, env.Msg)
		})
	}
}

func TestRouter_NotConfigured(t *testing.T) {
	r := newTestRouter(&config.GratuityConfig{PackageID: "0x0", VaultID: "0x0"})

	env := do(t, r, http.MethodPost, "/api/v1/gratuity", "0xabc", `{"amount":"0.1"}`)
	assert.Equal(t, 30006, env.Code)

	env = do(t, r, http.MethodGet, "/api/v1/config", "", "")
	assert.JSONEq(t, `{"package_id":"0x0","vault_id":"0x0","sends_enabled":false}`, string(env.Data))

	env = do(t, r, http.MethodGet, "/api/v1/dashboard", "0xabc", "")
	require.Equal(t, 0, env.Code)
	var view gratuity.DashboardView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Nil(t, view.Stats)
	assert.Equal(t, "2.0000", view.Balance)
}

func TestRouter_BuildAndStats(t *testing.T) {
	r := newTestRouter(&config.GratuityConfig{PackageID: "0xpkg", VaultID: "0xvault"})

	env := do(t, r, http.MethodPost, "/api/v1/gratuity/build", "0xabc", `{"amount":"0.25"}`)
	require.Equal(t, 0, env.Code, env.Msg)
	var built gratuity.BuildResult
	require.NoError(t, json.Unmarshal(env.Data, &built))
	assert.Equal(t, "0xpkg::gratuity_box::deposit_gratuity", built.Call.Call.Target)
	assert.Equal(t, uint64(250_000_000), built.Call.Split.Amount)

	env = do(t, r, http.MethodGet, "/api/v1/vault/stats", "", "")
	require.Equal(t, 0, env.Code)
	var stats gratuity.StatsView
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, "0.100", stats.TotalDisplay)

	env = do(t, r, http.MethodGet, "/api/v1/wallet/balance", "", "")
	assert.Equal(t, 30007, env.Code)
}
