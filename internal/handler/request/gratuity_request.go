package request

// GratuityRequest 打赏请求
type GratuityRequest struct {
	// Amount SUI 显示单位，例如 "0.1"
	Amount string `json:"amount" binding:"required,max=32" example:"0.1"`
}

// WalletHeader 请求方钱包，未携带视为未连接
type WalletHeader struct {
	Address string `header:"X-Wallet-Address" binding:"omitempty,sui_address"`
}
