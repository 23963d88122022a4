package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/service"
)

// Handler is the root gRPC transport handler.
//
// It owns the standard grpc.health.v1.Health implementation whose serving
// status follows the readiness report of [service.HealthService].
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Until the first refresh every service
// is reported as NOT_SERVING.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.health.SetServingStatus(overallService, healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// Register attaches the handler's services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// Shutdown switches every service to NOT_SERVING; later status updates are ignored.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
