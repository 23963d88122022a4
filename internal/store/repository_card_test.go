package store

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/models"
)

var cardRowColumns = []string{"id", "encrypted_number", "owner_id", "login", "validity_period", "status", "balance", "encrypted_key"}

func newTestCardRepo(t *testing.T) (*cardRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &cardRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateCard_UniqueViolation(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	mock.ExpectExec("INSERT INTO cards").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.CreateCard(context.Background(), models.Card{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrCardAlreadyExists)
}

func TestFindCardByID(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	id, owner := uuid.New(), uuid.New()
	validity := time.Date(2028, 10, 31, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(cardRowColumns).
		AddRow(id.String(), "enc", owner.String(), "john", validity, "ACTIVE", int64(150), "key")

	mock.ExpectQuery(`SELECT c.id, .* FROM cards c JOIN users u ON u.id = c.owner_id LEFT JOIN card_keys k ON k.card_id = c.id WHERE c.id = \$1`).
		WithArgs(id).
		WillReturnRows(rows)

	card, err := repo.FindCardByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, card.ID)
	assert.Equal(t, owner, card.OwnerID)
	assert.Equal(t, "john", card.OwnerLogin)
	assert.Equal(t, models.CardStatusActive, card.Status)
	assert.Equal(t, int64(150), card.Balance)
	assert.Equal(t, "key", card.EncryptedKey)
	assert.True(t, validity.Equal(card.ValidityPeriod))
}

func TestFindCardByID_NotFound(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindCardByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestListCards_Filters(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	status := models.CardStatusActive
	requested := models.CardStatusBlocked
	owner := uuid.New()
	filter := models.CardFilter{
		Status:          &status,
		OwnerID:         &owner,
		RequestedStatus: &requested,
		SortBy:          "balance",
		SortDirection:   models.SortDesc,
		Page:            models.Page{Page: 2, Size: 5},
	}

	mock.ExpectQuery(`WHERE c.status = \$1 AND c.owner_id = \$2 AND EXISTS \(SELECT 1 FROM card_status_requests r WHERE r.card_id = c.id AND r.status = \$3\) ORDER BY c.balance DESC LIMIT 5 OFFSET 10`).
		WithArgs("ACTIVE", owner, "BLOCKED").
		WillReturnRows(sqlmock.NewRows(cardRowColumns))

	cards, err := repo.ListCards(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCards_DefaultOrder(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	mock.ExpectQuery(`FROM cards c .* ORDER BY c.id ASC LIMIT 5 OFFSET 0`).
		WillReturnRows(sqlmock.NewRows(cardRowColumns))

	_, err := repo.ListCards(context.Background(), models.CardFilter{Page: models.Page{Size: 5}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	mock.ExpectExec(`UPDATE cards SET status = \$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), uuid.New(), models.CardStatusBlocked)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestUpdateBalance(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		delta   int64
		setup   func(mock sqlmock.Sqlmock)
		want    int64
		wantErr error
	}{
		{
			name:  "credit",
			delta: 50,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE cards SET balance = balance \+ \$1 WHERE id = \$2 AND balance <= \$3 RETURNING balance`).
					WithArgs(int64(50), id, int64(math.MaxInt64-50)).
					WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(150)))
			},
			want: 150,
		},
		{
			name:  "debit",
			delta: -30,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE id = \$2 AND balance >= \$3 RETURNING balance`).
					WithArgs(int64(-30), id, int64(30)).
					WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(70)))
			},
			want: 70,
		},
		{
			name:  "insufficient funds",
			delta: -500,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE cards").WillReturnRows(sqlmock.NewRows([]string{"balance"}))
				mock.ExpectQuery(`SELECT 1 FROM cards WHERE id = \$1`).
					WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
			},
			wantErr: ErrInsufficientFunds,
		},
		{
			name:  "overflow guard",
			delta: math.MaxInt64,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE cards").WillReturnRows(sqlmock.NewRows([]string{"balance"}))
				mock.ExpectQuery("SELECT 1 FROM cards").
					WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
			},
			wantErr: ErrBalanceOverflow,
		},
		{
			name:  "numeric overflow from driver",
			delta: 10,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE cards").WillReturnError(pgError(pgerrcode.NumericValueOutOfRange))
			},
			wantErr: ErrBalanceOverflow,
		},
		{
			name:  "card not found",
			delta: 10,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE cards").WillReturnRows(sqlmock.NewRows([]string{"balance"}))
				mock.ExpectQuery("SELECT 1 FROM cards").WillReturnRows(sqlmock.NewRows([]string{"1"}))
			},
			wantErr: ErrCardNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestCardRepo(t)
			tt.setup(mock)

			got, err := repo.UpdateBalance(context.Background(), id, tt.delta)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransfer_StopsOnFailedDebit(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	from, to := uuid.New(), uuid.New()
	mock.ExpectQuery("UPDATE cards").
		WithArgs(int64(-10), from, int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectQuery("SELECT 1 FROM cards").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	err := repo.Transfer(context.Background(), from, to, 10)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCard(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM cards WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteCard(context.Background(), id))
}

func TestExpireBefore(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	day := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
	mock.ExpectExec(`UPDATE cards SET status = \$1 WHERE status = \$2 AND validity_period < \$3`).
		WithArgs("EXPIRED", "ACTIVE", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.ExpireBefore(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestExpireBefore_Error(t *testing.T) {
	repo, mock := newTestCardRepo(t)

	mock.ExpectExec("UPDATE cards").WillReturnError(errors.New("boom"))

	_, err := repo.ExpireBefore(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrExecutingStatement)
}
