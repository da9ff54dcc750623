package sui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newNode 模拟 Sui 全节点，handle 返回 result 或 error message
func newNode(t *testing.T, handle func(req rpcRequest) (interface{}, string)) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, errMsg := handle(req)
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if errMsg != "" {
			resp["error"] = map[string]interface{}{"code": -32000, "message": errMsg}
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))

	c, err := Dial(context.Background(), srv.URL)
	require.NoError(t, err)
	return c, func() {
		c.Close()
		srv.Close()
	}
}

func TestGetBalance(t *testing.T) {
	c, done := newNode(t, func(req rpcRequest) (interface{}, string) {
		assert.Equal(t, "suix_getBalance", req.Method)
		assert.JSONEq(t, `"0xowner"`, string(req.Params[0]))
		assert.JSONEq(t, `"0x2::sui::SUI"`, string(req.Params[1]))
		return map[string]interface{}{"coinType": SuiCoinType, "coinObjectCount": 2, "totalBalance": "1500000000"}, ""
	})
	defer done()

	bal, err := c.GetBalance(context.Background(), "0xowner", SuiCoinType)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000_000), bal)
}

func TestGetBalance_RPCError(t *testing.T) {
	c, done := newNode(t, func(req rpcRequest) (interface{}, string) {
		return nil, "Invalid params"
	})
	defer done()

	_, err := c.GetBalance(context.Background(), "bad", SuiCoinType)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid params")
}

func TestListFundObjects_Paginates(t *testing.T) {
	calls := 0
	c, done := newNode(t, func(req rpcRequest) (interface{}, string) {
		assert.Equal(t, "suix_getCoins", req.Method)
		calls++
		if string(req.Params[2]) == "null" {
			return map[string]interface{}{
				"data": []map[string]string{
					{"coinType": SuiCoinType, "coinObjectId": "0xa", "balance": "30000000", "version": "1", "digest": "d1"},
				},
				"nextCursor":  "0xa",
				"hasNextPage": true,
			}, ""
		}
		assert.JSONEq(t, `"0xa"`, string(req.Params[2]))
		return map[string]interface{}{
			"data": []map[string]string{
				{"coinType": SuiCoinType, "coinObjectId": "0xb", "balance": "150000000", "version": "2", "digest": "d2"},
			},
			"nextCursor":  "0xb",
			"hasNextPage": false,
		}, ""
	})
	defer done()

	coins, err := c.ListFundObjects(context.Background(), "0xowner", SuiCoinType)
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "0xa", coins[0].ObjectID)
	assert.Equal(t, uint64(30_000_000), coins[0].Balance)
	assert.Equal(t, "0xb", coins[1].ObjectID)
	assert.Equal(t, uint64(150_000_000), coins[1].Balance)
}

func TestListFundObjects_Empty(t *testing.T) {
	c, done := newNode(t, func(req rpcRequest) (interface{}, string) {
		return map[string]interface{}{"data": []interface{}{}, "nextCursor": nil, "hasNextPage": false}, ""
	})
	defer done()

	coins, err := c.ListFundObjects(context.Background(), "0xowner", SuiCoinType)
	require.NoError(t, err)
	assert.Empty(t, coins)
}

func TestGetObjectFields(t *testing.T) {
	c, done := newNode(t, func(req rpcRequest) (interface{}, string) {
		assert.Equal(t, "sui_getObject", req.Method)
		assert.JSONEq(t, `{"showContent":true}`, string(req.Params[1]))
		return map[string]interface{}{
			"data": map[string]interface{}{
				"objectId": "0xvault",
				"content": map[string]interface{}{
					"dataType": "moveObject",
					"type":     "0xpkg::gratuity_box::Vault",
					"fields": map[string]interface{}{
						"owner":            "0xowner",
						"total_gratuities": "2500000000",
						"gratuity_count":   7,
						"last_tipper":      nil,
						"id":               map[string]string{"id": "0xvault"},
					},
				},
			},
		}, ""
	})
	defer done()

	fields, err := c.GetObjectFields(context.Background(), "0xvault")
	require.NoError(t, err)
	assert.Equal(t, "0xowner", fields["owner"])
	assert.Equal(t, "2500000000", fields["total_gratuities"])
	assert.Equal(t, "7", fields["gratuity_count"])
	assert.Equal(t, "", fields["last_tipper"])
	assert.JSONEq(t, `{"id":"0xvault"}`, fields["id"])
}

func TestGetObjectFields_NotFound(t *testing.T) {
	c, done := newNode(t, func(req rpcRequest) (interface{}, string) {
		return map[string]interface{}{"error": map[string]string{"code": "notExists", "object_id": "0xvault"}}, ""
	})
	defer done()

	_, err := c.GetObjectFields(context.Background(), "0xvault")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestNormalizeAddress(t *testing.T) {
	got, err := NormalizeAddress(" 0xABC ")
	require.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000abc", got)

	for _, bad := range []string{"", "abc", "0x", "0xzz", "0x" + strings.Repeat("a", 65)} {
		_, err := NormalizeAddress(bad)
		assert.Error(t, err, bad)
	}
}
