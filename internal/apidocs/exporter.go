// Package apidocs fetches the OpenAPI document from a running server and
// stores it on disk. It backs the cmd/apidocs build step.
package apidocs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
)

const fetchRetries = 3

// Export downloads the document from cfg.URL() and writes it to
// cfg.OutputDir/cfg.OutputFile, creating the directory when needed.
// It returns the path of the written file.
func Export(ctx context.Context, cfg config.Docs) (string, error) {
	url := cfg.URL()
	log := logger.FromContext(ctx)
	log.Info().Str("url", url).Msg("fetching OpenAPI document")

	resp, err := utils.NewHTTPClient(cfg.Timeout, fetchRetries).R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("error fetching %s: %w", url, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, url, resp.StatusCode())
	}

	body := resp.Body()
	if !json.Valid(body) {
		return "", fmt.Errorf("%w: %s", ErrNotJSON, url)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	path := filepath.Join(cfg.OutputDir, cfg.OutputFile)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("error writing %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("bytes", len(body)).Msg("OpenAPI document written")
	return path, nil
}
