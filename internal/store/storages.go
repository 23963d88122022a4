// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
)

// Storages groups all repositories into a single value that can be passed
// around the service layer. Every repository joins the transaction started
// by TxManager when one is present in the context.
type Storages struct {
	UserRepository          UserRepository
	CardRepository          CardRepository
	CardKeyRepository       CardKeyRepository
	CardHashRepository      CardHashRepository
	StatusRequestRepository StatusRequestRepository

	TxManager trm.Manager
	DB        *DB
}

// NewStorages opens the configured database, applies pending migrations and
// builds the repositories on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db, logger)
}

// NewStoragesFromDB builds the repositories on an already opened database.
func NewStoragesFromDB(db *DB, logger *logger.Logger) (*Storages, error) {
	txManager, err := NewTransactionManager(db)
	if err != nil {
		return nil, fmt.Errorf("error creating transaction manager: %w", err)
	}

	return &Storages{
		UserRepository:          NewUserRepository(db, logger),
		CardRepository:          NewCardRepository(db, logger),
		CardKeyRepository:       NewCardKeyRepository(db, logger),
		CardHashRepository:      NewCardHashRepository(db, logger),
		StatusRequestRepository: NewStatusRequestRepository(db, logger),
		TxManager:               txManager,
		DB:                      db,
	}, nil
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
