package model

// MistPerSui 1 SUI = 10^9 MIST
const MistPerSui = 1_000_000_000

// FundObject 发送方持有的单个可拆分 Coin 对象
type FundObject struct {
	ObjectID string `json:"coin_object_id"`
	Balance  uint64 `json:"balance"` // MIST
	CoinType string `json:"coin_type,omitempty"`
	Version  string `json:"version,omitempty"`
	Digest   string `json:"digest,omitempty"`
}

// SplitIntent 从 Coin 中拆出精确金额
type SplitIntent struct {
	CoinObjectID string `json:"coin_object_id"`
	Amount       uint64 `json:"amount"`
}

// CallArgument 是 Move 调用的一个参数：对象引用或前一步命令的结果
type CallArgument struct {
	Kind     string `json:"kind"` // "object" | "result"
	ObjectID string `json:"object_id,omitempty"`
	Result   int    `json:"result,omitempty"` // 命令序号
}

const (
	ArgKindObject = "object"
	ArgKindResult = "result"
)

// MoveCall 描述一次 Move 函数调用
type MoveCall struct {
	Target    string         `json:"target"` // <package>::<module>::<function>
	Arguments []CallArgument `json:"arguments"`
}

// CallDescription 一次打赏交易的完整描述 (split + deposit)，每次尝试重新构造，不落库
type CallDescription struct {
	Split SplitIntent `json:"split"`
	Call  MoveCall    `json:"call"`
}

// VaultStats 金库对象字段的只读投影
type VaultStats struct {
	Owner           string `json:"owner"`
	TotalGratuities uint64 `json:"total_gratuities"` // MIST
	GratuityCount   uint64 `json:"gratuity_count"`
	LastTipper      string `json:"last_tipper"`
}

// ExecutionResult 代付执行服务返回的结果
type ExecutionResult struct {
	Digest string `json:"digest"`
	Status string `json:"status"`
}
