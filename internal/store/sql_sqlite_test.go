package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/models"
)

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "data", "cards.db") + "?_foreign_keys=on"
	cfg := config.Storage{DB: config.DB{Driver: config.DriverSQLite, DSN: dsn}}

	s, err := NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUser(t *testing.T, s *Storages, login string) models.User {
	t.Helper()
	user, err := s.UserRepository.CreateUser(context.Background(), models.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: "hash",
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return user
}

func seedCard(t *testing.T, s *Storages, owner uuid.UUID, validity time.Time, balance int64) models.Card {
	t.Helper()
	ctx := context.Background()
	card := models.Card{
		ID:              uuid.New(),
		EncryptedNumber: uuid.NewString(),
		OwnerID:         owner,
		ValidityPeriod:  validity,
		Status:          models.CardStatusActive,
		Balance:         balance,
	}
	require.NoError(t, s.CardRepository.CreateCard(ctx, card))
	require.NoError(t, s.CardKeyRepository.CreateKey(ctx, models.CardKey{ID: uuid.New(), CardID: card.ID, EncryptedKey: "wrapped"}))
	return card
}

func TestSQLite_Users(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	user := seedUser(t, s, "alice")

	_, err := s.UserRepository.CreateUser(ctx, models.User{ID: uuid.New(), Login: "alice", PasswordHash: "x", Role: models.RoleUser, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)

	found, err := s.UserRepository.FindUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, s.UserRepository.UpdateRole(ctx, user.ID, models.RoleAdmin))
	found, err = s.UserRepository.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, found.Role)

	_, err = s.UserRepository.FindUserByLogin(ctx, "bob")
	assert.ErrorIs(t, err, ErrNoUserWasFound)

	seedUser(t, s, "bob")
	page, err := s.UserRepository.ListUsers(ctx, models.Page{Page: 0, Size: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
}

func TestSQLite_Cards(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	owner := seedUser(t, s, "alice")
	validity := time.Date(2028, 10, 31, 0, 0, 0, 0, time.UTC)
	card := seedCard(t, s, owner.ID, validity, 100)

	found, err := s.CardRepository.FindCardByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.OwnerLogin)
	assert.Equal(t, "wrapped", found.EncryptedKey)
	assert.True(t, validity.Equal(found.ValidityPeriod))

	balance, err := s.CardRepository.UpdateBalance(ctx, card.ID, -40)
	require.NoError(t, err)
	assert.Equal(t, int64(60), balance)

	_, err = s.CardRepository.UpdateBalance(ctx, card.ID, -61)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = s.CardRepository.UpdateBalance(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrCardNotFound)

	require.NoError(t, s.StatusRequestRepository.CreateRequest(ctx, models.StatusUpdateRequest{
		ID: uuid.New(), CardID: card.ID, Status: models.CardStatusBlocked, CreatedAt: time.Now(),
	}))
	err = s.StatusRequestRepository.CreateRequest(ctx, models.StatusUpdateRequest{
		ID: uuid.New(), CardID: card.ID, Status: models.CardStatusBlocked, CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrStatusRequestExists)

	requested := models.CardStatusBlocked
	cards, err := s.CardRepository.ListCards(ctx, models.CardFilter{RequestedStatus: &requested, Page: models.Page{Size: 5}})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].ID)

	require.NoError(t, s.StatusRequestRepository.DeleteRequestByCardID(ctx, card.ID))
	cards, err = s.CardRepository.ListCards(ctx, models.CardFilter{RequestedStatus: &requested, Page: models.Page{Size: 5}})
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestSQLite_TransferRollsBack(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	owner := seedUser(t, s, "alice")
	validity := time.Date(2028, 10, 31, 0, 0, 0, 0, time.UTC)
	from := seedCard(t, s, owner.ID, validity, 100)
	to := seedCard(t, s, owner.ID, validity, 0)

	require.NoError(t, s.TxManager.Do(ctx, func(ctx context.Context) error {
		return s.CardRepository.Transfer(ctx, from.ID, to.ID, 30)
	}))

	// the credit fails, so the debit must be rolled back
	err := s.TxManager.Do(ctx, func(ctx context.Context) error {
		return s.CardRepository.Transfer(ctx, from.ID, uuid.New(), 30)
	})
	assert.True(t, errors.Is(err, ErrCardNotFound))

	got, err := s.CardRepository.FindCardByID(ctx, from.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), got.Balance)

	got, err = s.CardRepository.FindCardByID(ctx, to.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), got.Balance)
}

func TestSQLite_ExpireAndDelete(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	owner := seedUser(t, s, "alice")
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	overdue := seedCard(t, s, owner.ID, today.AddDate(0, 0, -1), 0)
	lastDay := seedCard(t, s, owner.ID, today, 0)

	n, err := s.CardRepository.ExpireBefore(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := s.CardRepository.FindCardByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusExpired, got.Status)

	got, err = s.CardRepository.FindCardByID(ctx, lastDay.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusActive, got.Status)

	require.NoError(t, s.CardHashRepository.CreateHash(ctx, "fp"))
	assert.ErrorIs(t, s.CardHashRepository.CreateHash(ctx, "fp"), ErrCardAlreadyExists)
	exists, err := s.CardHashRepository.HashExists(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, s.CardHashRepository.DeleteHash(ctx, "fp"))

	require.NoError(t, s.CardKeyRepository.DeleteKeyByCardID(ctx, overdue.ID))
	_, err = s.CardKeyRepository.FindKeyByCardID(ctx, overdue.ID)
	assert.ErrorIs(t, err, ErrCardKeyNotFound)

	require.NoError(t, s.CardRepository.DeleteCard(ctx, overdue.ID))
	assert.ErrorIs(t, s.CardRepository.DeleteCard(ctx, overdue.ID), ErrCardNotFound)
}

func TestSqliteFilePath(t *testing.T) {
	assert.Equal(t, "data/cards.db", sqliteFilePath("file:data/cards.db?_foreign_keys=on"))
	assert.Equal(t, "", sqliteFilePath("file::memory:?cache=shared"))
	assert.Equal(t, "cards.db", sqliteFilePath("cards.db"))
}

func TestNewConnect_UnsupportedDriver(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{Driver: "oracle"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
