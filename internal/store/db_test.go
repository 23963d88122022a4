package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRetryTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock := newTestDB(t)
	db.retryDelays = []time.Duration{0, 0, 0}
	return db, sqlMock
}

func TestDBExec_RetriesSerializationFailure(t *testing.T) {
	db, sqlMock := newRetryTestDB(t)

	sqlMock.ExpectExec("UPDATE cards SET status").WillReturnError(pgError(pgerrcode.SerializationFailure))
	sqlMock.ExpectExec("UPDATE cards SET status").WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := db.exec(context.Background(), db.builder.Update("cards").Set("status", "BLOCKED"))

	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDBExec_DoesNotRetryConstraintViolation(t *testing.T) {
	db, sqlMock := newRetryTestDB(t)

	sqlMock.ExpectExec("INSERT INTO users").WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := db.exec(context.Background(), db.builder.Insert("users").Columns("login").Values("john"))

	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDBExec_DoesNotRetryInsideTransaction(t *testing.T) {
	db, sqlMock := newRetryTestDB(t)
	manager, err := NewTransactionManager(db)
	require.NoError(t, err)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("UPDATE cards SET balance").WillReturnError(pgError(pgerrcode.DeadlockDetected))
	sqlMock.ExpectRollback()

	err = manager.Do(context.Background(), func(ctx context.Context) error {
		_, err := db.exec(ctx, db.builder.Update("cards").Set("balance", 100))
		return err
	})

	require.Error(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDBQuery_RetriesDeadlock(t *testing.T) {
	db, sqlMock := newRetryTestDB(t)

	sqlMock.ExpectQuery("SELECT id FROM cards").WillReturnError(pgError(pgerrcode.DeadlockDetected))
	sqlMock.ExpectQuery("SELECT id FROM cards").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	rows, err := db.query(context.Background(), db.builder.Select("id").From("cards"))
	require.NoError(t, err)
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDBQueryRow_RetriesLostConnection(t *testing.T) {
	db, sqlMock := newRetryTestDB(t)

	sqlMock.ExpectQuery("SELECT balance FROM cards").WillReturnError(pgError(pgerrcode.ConnectionFailure))
	sqlMock.ExpectQuery("SELECT balance FROM cards").WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(250)))

	row, err := db.queryRow(context.Background(), db.builder.Select("balance").From("cards"))
	require.NoError(t, err)

	var balance int64
	require.NoError(t, row.Scan(&balance))
	assert.EqualValues(t, 250, balance)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
