package http

import (
	"net/http"

	"github.com/MKhiriev/go-bank-cards/internal/utils"
	"github.com/MKhiriev/go-bank-cards/models"
)

func (h *Handler) liveness(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.HealthService.Liveness(r.Context()), http.StatusOK)
}

// readiness answers 503 when any dependency is down.
func (h *Handler) readiness(w http.ResponseWriter, r *http.Request) {
	report := h.services.HealthService.Readiness(r.Context())

	status := http.StatusOK
	if report.Status != models.HealthUp {
		status = http.StatusServiceUnavailable
	}
	utils.WriteJSON(w, report, status)
}
