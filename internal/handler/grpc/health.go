package grpc

import (
	"context"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-bank-cards/models"
)

// overallService is the empty service name clients use to ask about the
// server as a whole.
const overallService = ""

// RefreshHealth runs the readiness checks and publishes the result: the
// overall status and one status per checked component.
func (h *Handler) RefreshHealth(ctx context.Context) models.HealthReport {
	report := h.services.HealthService.Readiness(ctx)

	for component, status := range report.Components {
		h.health.SetServingStatus(component, servingStatus(status))
	}
	h.health.SetServingStatus(overallService, servingStatus(report.Status))

	return report
}

// WatchHealth refreshes the health status immediately and then every
// interval until ctx is cancelled.
func (h *Handler) WatchHealth(ctx context.Context, interval time.Duration) {
	h.RefreshHealth(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if report := h.RefreshHealth(ctx); report.Status != models.HealthUp {
				h.logger.Warn().Any("components", report.Components).Msg("gRPC health is NOT_SERVING")
			}
		}
	}
}

func servingStatus(status string) healthpb.HealthCheckResponse_ServingStatus {
	if status == models.HealthUp {
		return healthpb.HealthCheckResponse_SERVING
	}
	return healthpb.HealthCheckResponse_NOT_SERVING
}
