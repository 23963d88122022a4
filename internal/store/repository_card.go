package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/models"
)

const defaultCardOrder = "c.id ASC"

var cardColumns = []string{
	"c.id",
	"c.encrypted_number",
	"c.owner_id",
	"u.login",
	"c.validity_period",
	"c.status",
	"c.balance",
	"COALESCE(k.encrypted_key, '')",
}

// cardRepository is the SQL implementation of [CardRepository].
type cardRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCardRepository(db *DB, logger *logger.Logger) CardRepository {
	logger.Debug().Msg("creating card repository")
	return &cardRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cardRepository) selectCards() sq.SelectBuilder {
	return r.db.builder.
		Select(cardColumns...).
		From("cards c").
		Join("users u ON u.id = c.owner_id").
		LeftJoin("card_keys k ON k.card_id = c.id")
}

// CreateCard inserts the card row. The key and fingerprint are stored by
// their own repositories in the same transaction.
func (r *cardRepository) CreateCard(ctx context.Context, card models.Card) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Insert(card.TableName()).
		Columns("id", "encrypted_number", "owner_id", "validity_period", "status", "balance").
		Values(card.ID, card.EncryptedNumber, card.OwnerID, card.ValidityPeriod, string(card.Status), card.Balance)

	if _, err := r.db.exec(ctx, query); err != nil {
		log.Err(err).Str("func", "*cardRepository.CreateCard").Msg("error inserting card")
		if isUniqueViolation(err) {
			return ErrCardAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindCardByID returns the card with its owner login and wrapped key,
// or [ErrCardNotFound].
func (r *cardRepository) FindCardByID(ctx context.Context, cardID uuid.UUID) (models.Card, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.selectCards().Where(sq.Eq{"c.id": cardID}))
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.FindCardByID").Msg("error building query")
		return models.Card{}, err
	}

	card, err := scanCard(row)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.FindCardByID").Msg("error scanning card")
		return models.Card{}, mapNotFound(err, ErrCardNotFound)
	}

	return card, nil
}

// ListCards returns one page of cards matching filter.
func (r *cardRepository) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	query := r.selectCards()
	if filter.Status != nil {
		query = query.Where(sq.Eq{"c.status": string(*filter.Status)})
	}
	if filter.OwnerID != nil {
		query = query.Where(sq.Eq{"c.owner_id": *filter.OwnerID})
	}
	if filter.RequestedStatus != nil {
		query = query.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM card_status_requests r WHERE r.card_id = c.id AND r.status = ?)",
			string(*filter.RequestedStatus),
		))
	}

	orderBy := filter.OrderBy()
	if orderBy == "" {
		orderBy = defaultCardOrder
	}
	query = query.
		OrderBy(orderBy).
		Limit(uint64(filter.Size)).
		Offset(filter.Offset())

	rows, err := r.db.query(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.ListCards").Msg("error selecting cards")
		return nil, err
	}
	defer rows.Close()

	cards := make([]models.Card, 0, filter.Size)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Err(err).Str("func", "*cardRepository.ListCards").Msg("error scanning card")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		cards = append(cards, card)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return cards, nil
}

// UpdateStatus sets the card status or returns [ErrCardNotFound].
func (r *cardRepository) UpdateStatus(ctx context.Context, cardID uuid.UUID, status models.CardStatus) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Update(models.Card{}.TableName()).
		Set("status", string(status)).
		Where(sq.Eq{"id": cardID})

	result, err := r.db.exec(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.UpdateStatus").Msg("error updating status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrCardNotFound)
}

// UpdateBalance adds delta to the card balance in a single statement. The
// WHERE clause keeps the balance within 0..MaxInt64, so a concurrent update
// can never push it out of range.
func (r *cardRepository) UpdateBalance(ctx context.Context, cardID uuid.UUID, delta int64) (int64, error) {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Update(models.Card{}.TableName()).
		Set("balance", sq.Expr("balance + ?", delta)).
		Where(sq.Eq{"id": cardID}).
		Suffix("RETURNING balance")
	if delta < 0 {
		query = query.Where(sq.GtOrEq{"balance": -delta})
	} else {
		query = query.Where(sq.LtOrEq{"balance": math.MaxInt64 - delta})
	}

	row, err := r.db.queryRow(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.UpdateBalance").Msg("error building query")
		return 0, err
	}

	var balance int64
	err = row.Scan(&balance)
	switch {
	case err == nil:
		return balance, nil
	case errors.Is(err, sql.ErrNoRows):
		return 0, r.balanceGuardError(ctx, cardID, delta)
	case isNumericOverflow(err):
		return 0, ErrBalanceOverflow
	default:
		log.Err(err).Str("func", "*cardRepository.UpdateBalance").Msg("error updating balance")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

// balanceGuardError tells a missing card from a rejected balance change.
func (r *cardRepository) balanceGuardError(ctx context.Context, cardID uuid.UUID, delta int64) error {
	query := r.db.builder.
		Select("1").
		From(models.Card{}.TableName()).
		Where(sq.Eq{"id": cardID})

	row, err := r.db.queryRow(ctx, query)
	if err != nil {
		return err
	}

	var one int
	if err = row.Scan(&one); err != nil {
		return mapNotFound(err, ErrCardNotFound)
	}
	if delta < 0 {
		return ErrInsufficientFunds
	}
	return ErrBalanceOverflow
}

// Transfer moves amount between two cards. Callers run it inside a
// transaction so that a failed credit rolls the debit back.
func (r *cardRepository) Transfer(ctx context.Context, from, to uuid.UUID, amount int64) error {
	if _, err := r.UpdateBalance(ctx, from, -amount); err != nil {
		return err
	}
	if _, err := r.UpdateBalance(ctx, to, amount); err != nil {
		return err
	}
	return nil
}

// DeleteCard removes the card row or returns [ErrCardNotFound].
func (r *cardRepository) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Delete(models.Card{}.TableName()).
		Where(sq.Eq{"id": cardID})

	result, err := r.db.exec(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.DeleteCard").Msg("error deleting card")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrCardNotFound)
}

func (r *cardRepository) ExpireBefore(ctx context.Context, day time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Update(models.Card{}.TableName()).
		Set("status", string(models.CardStatusExpired)).
		Where(sq.Eq{"status": string(models.CardStatusActive)}).
		Where(sq.Lt{"validity_period": models.Date(day)})

	result, err := r.db.exec(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.ExpireBefore").Msg("error expiring cards")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (models.Card, error) {
	var card models.Card
	var status string
	err := row.Scan(
		&card.ID,
		&card.EncryptedNumber,
		&card.OwnerID,
		&card.OwnerLogin,
		&card.ValidityPeriod,
		&status,
		&card.Balance,
		&card.EncryptedKey,
	)
	if err != nil {
		return models.Card{}, err
	}
	card.Status = models.CardStatus(status)
	card.ValidityPeriod = models.Date(card.ValidityPeriod)
	return card, nil
}

func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
