package gratuity

import (
	"context"
	"strings"

	"gratuity-box/internal/model"
)

// WalletSession 当前连接的钱包
type WalletSession interface {
	// CurrentAddress 返回发送方地址；未连接时 ok 为 false
	CurrentAddress() (address string, ok bool)
}

// Address 固定地址的会话 (HTTP 请求头 / CLI 参数)
type Address string

func (a Address) CurrentAddress() (string, bool) {
	s := strings.TrimSpace(string(a))
	return s, s != ""
}

// LedgerQuery 链上只读查询
type LedgerQuery interface {
	GetBalance(ctx context.Context, owner, coinType string) (uint64, error)
	ListFundObjects(ctx context.Context, owner, coinType string) ([]model.FundObject, error)
	GetObjectFields(ctx context.Context, objectID string) (map[string]string, error)
}
