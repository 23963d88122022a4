package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bank-cards/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role models.Role) error
	ListUsers(ctx context.Context, page models.Page) ([]models.User, error)
}

// CardRepository persists cards. Read methods join the owner login and the
// wrapped card key.
type CardRepository interface {
	CreateCard(ctx context.Context, card models.Card) error
	FindCardByID(ctx context.Context, cardID uuid.UUID) (models.Card, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	UpdateStatus(ctx context.Context, cardID uuid.UUID, status models.CardStatus) error
	// UpdateBalance adds delta to the balance and returns the new balance.
	// It fails with ErrInsufficientFunds when the result would be negative.
	UpdateBalance(ctx context.Context, cardID uuid.UUID, delta int64) (int64, error)
	// Transfer must run inside a transaction started by the caller.
	Transfer(ctx context.Context, from, to uuid.UUID, amount int64) error
	DeleteCard(ctx context.Context, cardID uuid.UUID) error
	// ExpireBefore switches ACTIVE cards whose validity ended before day to
	// EXPIRED and returns how many were changed.
	ExpireBefore(ctx context.Context, day time.Time) (int64, error)
}

// CardKeyRepository persists the wrapped per-card keys.
type CardKeyRepository interface {
	CreateKey(ctx context.Context, key models.CardKey) error
	FindKeyByCardID(ctx context.Context, cardID uuid.UUID) (models.CardKey, error)
	DeleteKeyByCardID(ctx context.Context, cardID uuid.UUID) error
}

// CardHashRepository persists card number fingerprints used to keep
// generated numbers unique.
type CardHashRepository interface {
	HashExists(ctx context.Context, hash string) (bool, error)
	CreateHash(ctx context.Context, hash string) error
	DeleteHash(ctx context.Context, hash string) error
}

// StatusRequestRepository persists pending status change requests.
type StatusRequestRepository interface {
	CreateRequest(ctx context.Context, request models.StatusUpdateRequest) error
	DeleteRequestByCardID(ctx context.Context, cardID uuid.UUID) error
}

// ErrorClassificator decides whether a failed statement may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
