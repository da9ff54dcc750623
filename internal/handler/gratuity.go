package handler

import (
	"github.com/gin-gonic/gin"

	"gratuity-box/internal/handler/request"
	"gratuity-box/internal/handler/response"
	"gratuity-box/internal/service/gratuity"
	"gratuity-box/pkg/errno"
	"gratuity-box/pkg/sui"
	"gratuity-box/pkg/validator"
)

type GratuityHandler struct {
	svc *gratuity.Service
}

func NewGratuityHandler(svc *gratuity.Service) *GratuityHandler {
	return &GratuityHandler{svc: svc}
}

// session 从请求头解析钱包会话；未携带时返回空会话
func session(c *gin.Context) (gratuity.Address, error) {
	var hdr request.WalletHeader
	if err := c.ShouldBindHeader(&hdr); err != nil {
		return "", errno.ErrWalletHeader.WithMessage(validator.GetErrorMsg(err))
	}
	if hdr.Address == "" {
		return "", nil
	}
	addr, err := sui.NormalizeAddress(hdr.Address)
	if err != nil {
		return "", errno.ErrWalletHeader.WithMessage(err.Error())
	}
	return gratuity.Address(addr), nil
}

// Config 当前链上配置
// @Summary 获取打赏配置
// @Tags Gratuity
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/config [get]
func (h *GratuityHandler) Config(c *gin.Context) {
	response.Success(c, gin.H{
		"package_id":    h.svc.PackageID(),
		"vault_id":      h.svc.VaultID(),
		"sends_enabled": h.svc.SendsEnabled(),
	})
}

// VaultStats 金库统计
// @Summary 获取金库统计
// @Tags Gratuity
// @Produce json
// @Success 200 {object} response.Response{data=gratuity.StatsView}
// @Router /api/v1/vault/stats [get]
func (h *GratuityHandler) VaultStats(c *gin.Context) {
	stats, err := h.svc.VaultStats(c.Request.Context())
	if err != nil {
		response.Error(c, gratuity.ToErrno(err))
		return
	}
	response.Success(c, stats)
}

// Balance 钱包余额
// @Summary 查询钱包 SUI 余额
// @Tags Wallet
// @Produce json
// @Param X-Wallet-Address header string true "钱包地址"
// @Success 200 {object} response.Response{data=gratuity.BalanceView}
// @Router /api/v1/wallet/balance [get]
func (h *GratuityHandler) Balance(c *gin.Context) {
	sess, err := session(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	bal, err := h.svc.Balance(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, gratuity.ToErrno(err))
		return
	}
	response.Success(c, bal)
}

// Dashboard 余额 + 金库统计，查询失败时字段使用占位值
// @Summary 获取页面数据
// @Tags Gratuity
// @Produce json
// @Param X-Wallet-Address header string false "钱包地址"
// @Success 200 {object} response.Response{data=gratuity.DashboardView}
// @Router /api/v1/dashboard [get]
func (h *GratuityHandler) Dashboard(c *gin.Context) {
	sess, err := session(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, h.svc.Dashboard(c.Request.Context(), sess))
}

// Build 构造未提交的打赏调用
// @Summary 构造打赏调用 (不提交)
// @Tags Gratuity
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "钱包地址"
// @Param request body request.GratuityRequest true "打赏金额"
// @Success 200 {object} response.Response{data=gratuity.BuildResult}
// @Router /api/v1/gratuity/build [post]
func (h *GratuityHandler) Build(c *gin.Context) {
	sess, req, ok := h.bind(c)
	if !ok {
		return
	}
	res, err := h.svc.Build(c.Request.Context(), sess, req.Amount)
	if err != nil {
		response.Error(c, gratuity.ToErrno(err))
		return
	}
	response.Success(c, res)
}

// Send 发送打赏 (代付)
// @Summary 发送打赏
// @Tags Gratuity
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "钱包地址"
// @Param request body request.GratuityRequest true "打赏金额"
// @Success 200 {object} response.Response{data=gratuity.SendResult}
// @Router /api/v1/gratuity [post]
func (h *GratuityHandler) Send(c *gin.Context) {
	sess, req, ok := h.bind(c)
	if !ok {
		return
	}
	res, err := h.svc.Send(c.Request.Context(), sess, req.Amount)
	if err != nil {
		response.Error(c, gratuity.ToErrno(err))
		return
	}
	response.Success(c, res)
}

func (h *GratuityHandler) bind(c *gin.Context) (gratuity.Address, request.GratuityRequest, bool) {
	var req request.GratuityRequest

	// 1. Bind & Validate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return "", req, false
	}

	// 2. 钱包会话
	sess, err := session(c)
	if err != nil {
		response.Error(c, err)
		return "", req, false
	}
	return sess, req, true
}
