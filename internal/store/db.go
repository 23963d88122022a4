package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/migrations"
)

// retryDelays is the backoff between attempts of a statement that failed
// with a retryable error.
var retryDelays = []time.Duration{20 * time.Millisecond, 100 * time.Millisecond, 250 * time.Millisecond}

// DB is a database/sql connection pool together with the dialect-specific
// pieces the repositories need: the placeholder format of the query builder
// and the driver error classifier.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	retryDelays        []time.Duration
	logger             *logger.Logger
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate applies the embedded schema of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Driver returns the name of the database driver in use.
func (db *DB) Driver() string {
	return db.driver
}

// NewTransactionManager returns a manager whose transactions are picked up
// by every repository built on db.
func NewTransactionManager(db *DB) (trm.Manager, error) {
	return manager.New(trmsql.NewDefaultFactory(db.DB))
}

// conn returns the transaction stored in ctx, or the pool when there is none.
func (db *DB) conn(ctx context.Context) trmsql.Tr {
	return trmsql.DefaultCtxGetter.DefaultTrOrDB(ctx, db.DB)
}

func (db *DB) queryRow(ctx context.Context, query sq.Sqlizer) (*sql.Row, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	conn := db.conn(ctx)
	var row *sql.Row
	// Row.Err reports a failed statement before Scan; ErrNoRows only shows up in Scan
	_ = db.withRetry(ctx, conn, func() error {
		row = conn.QueryRowContext(ctx, sqlStr, args...)
		return row.Err()
	})
	return row, nil
}

func (db *DB) query(ctx context.Context, query sq.Sqlizer) (*sql.Rows, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	conn := db.conn(ctx)
	var rows *sql.Rows
	err = db.withRetry(ctx, conn, func() (err error) {
		rows, err = conn.QueryContext(ctx, sqlStr, args...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return rows, nil
}

func (db *DB) exec(ctx context.Context, query sq.Sqlizer) (sql.Result, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	conn := db.conn(ctx)
	var result sql.Result
	err = db.withRetry(ctx, conn, func() (err error) {
		result, err = conn.ExecContext(ctx, sqlStr, args...)
		return err
	})
	return result, err
}

// withRetry runs statement and repeats it after each of db.retryDelays while
// the error is Retryable. Statements inside a transaction run once: the
// transaction is already broken and only the caller can restart it.
func (db *DB) withRetry(ctx context.Context, conn trmsql.Tr, statement func() error) error {
	err := statement()
	if _, pooled := conn.(*sql.DB); !pooled {
		return err
	}

	for _, delay := range db.retryDelays {
		if err == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		logger.FromContext(ctx).Warn().Err(err).Dur("delay", delay).
			Str("func", "DB.withRetry").Msg("retrying statement")

		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
		err = statement()
	}
	return err
}

// newDB wraps an already opened pool. Used by tests with sqlmock.
func newDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	placeholder := sq.PlaceholderFormat(sq.Question)
	var classifier ErrorClassificator = NewSQLiteErrorClassifier()
	if driver == config.DriverPostgres {
		placeholder = sq.Dollar
		classifier = NewPostgresErrorClassifier()
	}

	return &DB{
		DB:                 conn,
		driver:             driver,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		retryDelays:        retryDelays,
		logger:             log,
	}
}
