package service

import (
	"fmt"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/crypto"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/store"
	"github.com/MKhiriev/go-bank-cards/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	CardService    CardService
	HealthService  HealthService
	AppInfoService AppInfoService
}

// Dependencies are the optional collaborators of [NewServices].
type Dependencies struct {
	// Limiter throttles failed sign ins; nil disables throttling.
	Limiter SignInLimiter
	// Checkers are probed by the readiness endpoint.
	Checkers  []HealthChecker
	BuildInfo models.AppBuildInfo
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, deps Dependencies, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(storages.UserRepository, deps.Limiter, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	securityService, err := NewCardSecurityService(crypto.NewKeyChainService(), cfg.App)
	if err != nil {
		return nil, fmt.Errorf("error creating card security service: %w", err)
	}

	return &Services{
		AuthService:    authService,
		UserService:    NewUserService(storages.UserRepository, authService, cfg.App, logger),
		CardService:    NewCardService(storages, securityService, cfg.App, logger),
		HealthService:  NewHealthService(logger, deps.Checkers...),
		AppInfoService: NewAppInfoService(deps.BuildInfo, cfg.App.Version, logger),
	}, nil
}
