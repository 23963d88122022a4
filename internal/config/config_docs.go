package config

import (
	"fmt"
	"time"
)

// Default locations of the OpenAPI document.
const (
	DefaultDocsLocalURL   = "http://localhost:8080/v3/api-docs"
	DefaultDocsProdURL    = "http://host.docker.internal:8080/v3/api-docs"
	DefaultDocsOutputDir  = "build"
	DefaultDocsOutputFile = "openapi.json"
	DefaultDocsTimeout    = 10 * time.Second
)

// Docs holds settings of the OpenAPI document exporter.
type Docs struct {
	// Prod selects the Docker host bridge URL instead of the loopback one.
	// Env: DOCS_PROD
	Prod bool `env:"PROD"`

	// LocalURL is the documentation endpoint used for local and test runs.
	// Env: DOCS_LOCAL_URL
	LocalURL string `env:"LOCAL_URL"`

	// ProdURL is the documentation endpoint used for production-like runs.
	// Env: DOCS_PROD_URL
	ProdURL string `env:"PROD_URL"`

	// OutputDir is the directory the document is written to.
	// Env: DOCS_OUTPUT_DIR
	OutputDir string `env:"OUTPUT_DIR"`

	// OutputFile is the name of the written document.
	// Env: DOCS_OUTPUT_FILE
	OutputFile string `env:"OUTPUT_FILE"`

	// Timeout bounds a single fetch attempt.
	// Env: DOCS_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// URL returns the documentation endpoint selected by the Prod toggle.
func (d Docs) URL() string {
	if d.Prod {
		return d.ProdURL
	}
	return d.LocalURL
}

func (d *Docs) setDefaults() {
	if d.LocalURL == "" {
		d.LocalURL = DefaultDocsLocalURL
	}
	if d.ProdURL == "" {
		d.ProdURL = DefaultDocsProdURL
	}
	if d.OutputDir == "" {
		d.OutputDir = DefaultDocsOutputDir
	}
	if d.OutputFile == "" {
		d.OutputFile = DefaultDocsOutputFile
	}
	if d.Timeout == 0 {
		d.Timeout = DefaultDocsTimeout
	}
}

// GetDocsConfig builds the exporter configuration from environment
// variables and the exporter's own flags (-prod, -o, -f, -local-url, -prod-url).
// Server-only settings are not validated.
func GetDocsConfig(args []string) (*Docs, error) {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, fmt.Errorf("error occured during building docs config: %w", err)
	}

	flagsCfg, err := parseDocsFlags(args)
	if err != nil {
		return nil, fmt.Errorf("error occured during building docs config: %w", err)
	}

	docs := envCfg.Docs
	// -prod on the command line wins over DOCS_PROD=false
	if flagsCfg.Prod {
		docs.Prod = true
	}
	if flagsCfg.OutputDir != "" {
		docs.OutputDir = flagsCfg.OutputDir
	}
	if flagsCfg.OutputFile != "" {
		docs.OutputFile = flagsCfg.OutputFile
	}
	if flagsCfg.LocalURL != "" {
		docs.LocalURL = flagsCfg.LocalURL
	}
	if flagsCfg.ProdURL != "" {
		docs.ProdURL = flagsCfg.ProdURL
	}

	docs.setDefaults()
	return &docs, nil
}
