package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
)

// NewPostgresDBWithClassifier builds a DB over conn with its retry policy
// replaced.
func NewPostgresDBWithClassifier(conn *sql.DB, classifier ErrorClassificator, delays []time.Duration) *DB {
	db := newDB(conn, config.DriverPostgres, logger.Nop())
	db.errorClassificator = classifier
	db.retryDelays = delays
	return db
}

func (db *DB) ExecStatement(ctx context.Context, query sq.Sqlizer) (sql.Result, error) {
	return db.exec(ctx, query)
}

func (db *DB) Builder() sq.StatementBuilderType {
	return db.builder
}
