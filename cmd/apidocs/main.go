// Command apidocs downloads the OpenAPI document of a running server.
//
// Usage:
//
//	apidocs [-prod] [-o build] [-f openapi.json] [-local-url URL] [-prod-url URL]
//
// -prod selects the Docker host bridge address instead of localhost; DOCS_*
// environment variables (or a .env file) provide the same settings.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/go-bank-cards/internal/apidocs"
	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
)

func main() {
	log := logger.NewLogger("go-bank-cards-apidocs")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("error loading .env file")
	}

	cfg, err := config.GetDocsConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting docs configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	path, err := apidocs.Export(log.WithContext(ctx), *cfg)
	if err != nil {
		log.Error().Err(err).Str("url", cfg.URL()).Msg("error exporting OpenAPI document")
		stop()
		os.Exit(1)
	}

	log.Info().Str("path", path).Msg("done")
}
