package sui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"

	"gratuity-box/internal/model"
)

const (
	// SuiCoinType 原生 SUI
	SuiCoinType = "0x2::sui::SUI"

	pageLimit = 50
	maxPages  = 100
)

// ErrObjectNotFound 对象不存在或没有 Move 字段
var ErrObjectNotFound = errors.New("object not found")

// Client Sui 全节点 JSON-RPC 客户端
type Client struct {
	rpc *rpc.Client
}

// Dial 连接到 Sui 全节点 (http/https/ws)
func Dial(ctx context.Context, url string) (*Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial sui rpc %s: %w", url, err)
	}
	return &Client{rpc: c}, nil
}

func (c *Client) Close() {
	c.rpc.Close()
}

type balanceResult struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

// GetBalance suix_getBalance，返回 MIST
func (c *Client) GetBalance(ctx context.Context, owner, coinType string) (uint64, error) {
	var res balanceResult
	if err := c.rpc.CallContext(ctx, &res, "suix_getBalance", owner, coinType); err != nil {
		return 0, fmt.Errorf("suix_getBalance: %w", err)
	}
	total, err := strconv.ParseUint(res.TotalBalance, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("suix_getBalance: bad totalBalance %q: %w", res.TotalBalance, err)
	}
	return total, nil
}

type coinData struct {
	CoinType     string `json:"coinType"`
	CoinObjectID string `json:"coinObjectId"`
	Version      string `json:"version"`
	Digest       string `json:"digest"`
	Balance      string `json:"balance"`
}

type coinPage struct {
	Data        []coinData `json:"data"`
	NextCursor  *string    `json:"nextCursor"`
	HasNextPage bool       `json:"hasNextPage"`
}

// ListFundObjects suix_getCoins，按节点返回的顺序翻页拉取全部 Coin
func (c *Client) ListFundObjects(ctx context.Context, owner, coinType string) ([]model.FundObject, error) {
	var (
		objects []model.FundObject
		cursor  *string
	)

	for page := 0; page < maxPages; page++ {
		var res coinPage
		if err := c.rpc.CallContext(ctx, &res, "suix_getCoins", owner, coinType, cursor, pageLimit); err != nil {
			return nil, fmt.Errorf("suix_getCoins: %w", err)
		}

		for _, coin := range res.Data {
			bal, err := strconv.ParseUint(coin.Balance, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("suix_getCoins: bad balance %q for %s: %w", coin.Balance, coin.CoinObjectID, err)
			}
			objects = append(objects, model.FundObject{
				ObjectID: coin.CoinObjectID,
				Balance:  bal,
				CoinType: coin.CoinType,
				Version:  coin.Version,
				Digest:   coin.Digest,
			})
		}

		if !res.HasNextPage || res.NextCursor == nil {
			return objects, nil
		}
		cursor = res.NextCursor
	}

	return objects, nil
}

type objectResponse struct {
	Data *struct {
		ObjectID string `json:"objectId"`
		Content  *struct {
			DataType string                     `json:"dataType"`
			Type     string                     `json:"type"`
			Fields   map[string]json.RawMessage `json:"fields"`
		} `json:"content"`
	} `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

// GetObjectFields sui_getObject(showContent)，字段统一转为字符串；嵌套结构保留 JSON
func (c *Client) GetObjectFields(ctx context.Context, objectID string) (map[string]string, error) {
	var res objectResponse
	opts := map[string]bool{"showContent": true}
	if err := c.rpc.CallContext(ctx, &res, "sui_getObject", objectID, opts); err != nil {
		return nil, fmt.Errorf("sui_getObject: %w", err)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("sui_getObject %s: %w (%s)", objectID, ErrObjectNotFound, res.Error.Code)
	}
	if res.Data == nil || res.Data.Content == nil || res.Data.Content.Fields == nil {
		return nil, fmt.Errorf("sui_getObject %s: %w", objectID, ErrObjectNotFound)
	}

	fields := make(map[string]string, len(res.Data.Content.Fields))
	for k, raw := range res.Data.Content.Fields {
		fields[k] = stringify(raw)
	}
	return fields, nil
}

func stringify(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	switch {
	case s == "null":
		return ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			return str
		}
	}
	return s
}
