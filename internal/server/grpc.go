package server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// GratuityServiceName gRPC 健康检查中的服务名
const GratuityServiceName = "gratuity"

// NewGRPCServer 注册标准健康检查与反射
// 未配置 package/vault 时 gratuity 服务报告 NOT_SERVING，进程本身仍为 SERVING
func NewGRPCServer(sendsEnabled bool) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer()

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if sendsEnabled {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus(GratuityServiceName, status)

	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return srv, hs
}
