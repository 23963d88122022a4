package handler

import (
	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/handler/grpc"
	"github.com/MKhiriev/go-bank-cards/internal/handler/http"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/service"
)

// Handlers holds the transport handlers enabled by the server configuration.
// A nil field means the corresponding transport is switched off.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a handler for every transport that has an address.
// The REST API lives on HTTP; gRPC only carries the health service.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	var handlers Handlers

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	logger.Info().
		Bool("http", handlers.HTTP != nil).
		Bool("grpc", handlers.GRPC != nil).
		Msg("handlers created")

	return &handlers, nil
}
