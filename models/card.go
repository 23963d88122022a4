package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusBlocked CardStatus = "BLOCKED"
	CardStatusExpired CardStatus = "EXPIRED"
)

// Valid reports whether s is a known card status.
func (s CardStatus) Valid() bool {
	switch s {
	case CardStatusActive, CardStatusBlocked, CardStatusExpired:
		return true
	}
	return false
}

// BalanceAction selects the direction of a balance change.
type BalanceAction string

const (
	DepositMoney  BalanceAction = "DEPOSIT_MONEY"
	WithdrawMoney BalanceAction = "WITHDRAW_MONEY"
)

// Valid reports whether a is a known balance action.
func (a BalanceAction) Valid() bool {
	return a == DepositMoney || a == WithdrawMoney
}

// ValidityLayout is the display format of a card validity period.
const ValidityLayout = "01/06"

// Card is a bank card as stored in the database.
// The card number is kept encrypted with the card's own key (see [CardKey]).
type Card struct {
	ID              uuid.UUID
	EncryptedNumber string
	OwnerID         uuid.UUID
	// OwnerLogin is filled by queries that join users.
	OwnerLogin string
	// ValidityPeriod is the last day the card can be used, at midnight UTC.
	ValidityPeriod time.Time
	Status         CardStatus
	// Balance is kept in minor currency units.
	Balance int64
	// EncryptedKey is the wrapped card key, filled by queries that join card_keys.
	EncryptedKey string
}

// TableName returns the name of the database table
// associated with the Card model.
func (c Card) TableName() string {
	return "cards"
}

// Available reports whether the card may take part in money operations on
// the given day: it must be ACTIVE and its validity period must not be over.
func (c Card) Available(today time.Time) bool {
	return c.Status == CardStatusActive && !c.ValidityPeriod.Before(Date(today))
}

// CanApply reports whether delta can be added to the balance.
// It returns ErrBalanceTooHigh on overflow and ErrNotEnoughBalance when the
// result would be negative.
func (c Card) CanApply(delta int64) error {
	if delta > 0 && c.Balance > math.MaxInt64-delta {
		return ErrBalanceTooHigh
	}
	if c.Balance+delta < 0 {
		return ErrNotEnoughBalance
	}
	return nil
}

// CardKey is the per-card AES key wrapped with the master key.
type CardKey struct {
	ID           uuid.UUID
	CardID       uuid.UUID
	EncryptedKey string
}

// StatusUpdateRequest is a pending request of a card owner to change the
// card's status. A card has at most one pending request.
type StatusUpdateRequest struct {
	ID        uuid.UUID
	CardID    uuid.UUID
	Status    CardStatus
	CreatedAt time.Time
}

// MaskCardNumber hides all but the last four digits of number.
// Numbers of four characters or less are returned unchanged.
func MaskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "**** **** **** " + number[len(number)-4:]
}

// FormatValidity renders a validity period as MM/yy.
func FormatValidity(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(ValidityLayout)
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidityPeriodFrom returns the last day of the month that is months after today.
func ValidityPeriodFrom(today time.Time, months int) time.Time {
	y, m, _ := today.Date()
	// day 0 of the following month is the last day of the target month
	return time.Date(y, m+time.Month(months)+1, 0, 0, 0, 0, 0, time.UTC)
}
