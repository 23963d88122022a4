// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/base64"
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.JWTSecret == "" || cfg.App.AdminSecretHash == "" {
		return ErrInvalidAppConfigs
	}

	if err := validateBase64Key(cfg.App.CardMasterKey, 16, 24, 32); err != nil {
		return fmt.Errorf("%w: card master key: %w", ErrInvalidAppConfigs, err)
	}
	if err := validateBase64Key(cfg.App.CardHMACKey); err != nil {
		return fmt.Errorf("%w: card hmac key: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.App.CardMonthsUntilExpires < 0 || cfg.App.SignInMaxAttempts < 0 {
		return ErrInvalidAppConfigs
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.ExpiryInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// validateBase64Key checks that key is valid base64 and, when sizes are
// given, that the decoded length is one of them.
func validateBase64Key(key string, sizes ...int) error {
	if key == "" {
		return ErrEmptyKey
	}

	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return err
	}

	if len(sizes) == 0 {
		return nil
	}
	for _, s := range sizes {
		if len(raw) == s {
			return nil
		}
	}
	return fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(raw))
}
