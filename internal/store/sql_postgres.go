package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
)

type poolLimits struct {
	maxOpen     int
	maxIdle     int
	maxIdleTime time.Duration
}

var postgresPool = poolLimits{maxOpen: 10, maxIdle: 4, maxIdleTime: 5 * time.Minute}

// NewConnectPostgres opens a pgx-backed pool and checks it with a ping.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := openAndPing(ctx, "pgx", cfg.DSN, postgresPool)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return newDB(conn, config.DriverPostgres, log), nil
}

func openAndPing(ctx context.Context, driverName, dsn string, pool poolLimits) (*sql.DB, error) {
	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	conn.SetMaxOpenConns(pool.maxOpen)
	conn.SetMaxIdleConns(pool.maxIdle)
	conn.SetConnMaxIdleTime(pool.maxIdleTime)

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error pinging DB: %w", err)
	}

	return conn, nil
}
