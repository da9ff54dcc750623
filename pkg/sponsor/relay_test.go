package sponsor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gratuity-box/internal/model"
)

func testCall() model.CallDescription {
	return model.CallDescription{
		Split: model.SplitIntent{CoinObjectID: "0xcoin", Amount: 100_000_000},
		Call: model.MoveCall{
			Target: "0xpkg::gratuity_box::deposit_gratuity",
			Arguments: []model.CallArgument{
				{Kind: model.ArgKindObject, ObjectID: "0xvault"},
				{Kind: model.ArgKindResult, Result: 0},
			},
		},
	}
}

func TestRelayExecutor_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, executePath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req executeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "0xsender", req.Sender)
		assert.Equal(t, "testnet", req.Network)
		assert.Equal(t, uint64(100_000_000), req.Call.Split.Amount)

		_ = json.NewEncoder(w).Encode(executeResponse{Digest: "9xDigest", Status: "success"})
	}))
	defer srv.Close()

	exec := NewRelayExecutor(srv.URL+"/", "secret", "testnet", 5*time.Second)
	res, err := exec.Execute(context.Background(), testCall(), "0xsender")
	require.NoError(t, err)
	assert.Equal(t, "9xDigest", res.Digest)
}

func TestRelayExecutor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"relay error field", http.StatusBadRequest, `{"error":"Sponsor budget exhausted"}`, "Sponsor budget exhausted"},
		{"plain text 5xx", http.StatusBadGateway, "upstream down", "upstream down"},
		{"failed status", http.StatusOK, `{"digest":"abc","status":"failure"}`, "transaction status: failure"},
		{"missing digest", http.StatusOK, `{"status":"success"}`, "relay returned no digest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			exec := NewRelayExecutor(srv.URL, "", "testnet", 5*time.Second)
			_, err := exec.Execute(context.Background(), testCall(), "0xsender")

			var relayErr *RelayError
			require.True(t, errors.As(err, &relayErr))
			assert.Equal(t, tt.wantMsg, relayErr.Message)
		})
	}
}

type stubExecutor struct {
	res *model.ExecutionResult
	err error
}

func (s stubExecutor) Execute(context.Context, model.CallDescription, string) (*model.ExecutionResult, error) {
	return s.res, s.err
}

func TestGo_DeliversExactlyOnce(t *testing.T) {
	ch := Go(context.Background(), stubExecutor{res: &model.ExecutionResult{Digest: "d"}}, testCall(), "0xs")

	out, ok := <-ch
	require.True(t, ok)
	require.NoError(t, out.Err)
	assert.Equal(t, "d", out.Result.Digest)

	_, ok = <-ch
	assert.False(t, ok, "channel is closed after the single outcome")
}

func TestGo_Error(t *testing.T) {
	out := <-Go(context.Background(), stubExecutor{err: errors.New("rejected")}, testCall(), "0xs")
	assert.Nil(t, out.Result)
	assert.EqualError(t, out.Err, "rejected")

	out = <-Go(context.Background(), stubExecutor{}, testCall(), "0xs")
	assert.Error(t, out.Err, "nil result without error is treated as failure")
}
