package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/go-bank-cards/internal/cache"
	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/handler"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/server"
	"github.com/MKhiriev/go-bank-cards/internal/service"
	"github.com/MKhiriev/go-bank-cards/internal/store"
	"github.com/MKhiriev/go-bank-cards/internal/workers"
	"github.com/MKhiriev/go-bank-cards/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-bank-cards-server")

	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("error loading .env file")
	}

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	deps := service.Dependencies{
		BuildInfo: models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		Checkers: []service.HealthChecker{
			service.NewPingChecker("db", storages.DB.PingContext),
		},
	}

	if cfg.Storage.Cache.RedisAddress != "" {
		redisCache, err := cache.NewCache(ctx, cfg.Storage.Cache, log)
		if err != nil {
			return fmt.Errorf("error creating cache: %w", err)
		}
		defer redisCache.Close()

		deps.Limiter = cache.NewSignInLimiter(redisCache, cfg.App.SignInMaxAttempts, cfg.App.SignInWindow)
		deps.Checkers = append(deps.Checkers, service.NewPingChecker("redis", redisCache.Ping))
	} else {
		log.Warn().Msg("redis address is not set, sign in throttling is disabled")
	}

	services, err := service.NewServices(storages, *cfg, deps, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	servers, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating servers: %w", err)
	}

	backgroundWorkers := workers.NewWorkers(
		workers.NewCardExpiryWorker(services.CardService, cfg.Workers.ExpiryInterval, log),
	)

	var wg sync.WaitGroup
	workersCtx, stopWorkers := context.WithCancel(log.WithContext(ctx))
	wg.Go(func() {
		backgroundWorkers.Run(workersCtx)
	})

	err = servers.Run(ctx)

	stopWorkers()
	wg.Wait()

	return err
}

// printBuildInfo prints the linker-injected metadata. Empty values stay empty
// so the app info service can fall back to the configured version.
func printBuildInfo() {
	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
