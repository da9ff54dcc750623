package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"gratuity-box/internal/handler"
	"gratuity-box/internal/handler/response"
	"gratuity-box/pkg/logger"
	"gratuity-box/pkg/monitor"
	"gratuity-box/pkg/validator"
)

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(gratuityHandler *handler.GratuityHandler) *gin.Engine {
	// 0. 初始化监控指标与校验规则
	monitor.Init()
	if err := validator.Init(); err != nil {
		logger.Error("注册自定义校验规则失败", zap.Error(err))
	}

	// 1. 创建 Engine (Logger, Recovery)
	r := gin.Default()

	// 2. 通用中间件
	r.Use(monitor.PrometheusMiddleware())

	// 3. 基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. API 路由组
	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		api.GET("/config", gratuityHandler.Config)
		api.GET("/dashboard", gratuityHandler.Dashboard)
		api.GET("/vault/stats", gratuityHandler.VaultStats)
		api.GET("/wallet/balance", gratuityHandler.Balance)

		g := api.Group("/gratuity")
		g.POST("", gratuityHandler.Send)
		g.POST("/build", gratuityHandler.Build)
	}

	return r
}
