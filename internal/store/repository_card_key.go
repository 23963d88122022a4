package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/models"
)

const cardKeysTable = "card_keys"

type cardKeyRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCardKeyRepository(db *DB, logger *logger.Logger) CardKeyRepository {
	logger.Debug().Msg("creating card key repository")
	return &cardKeyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cardKeyRepository) CreateKey(ctx context.Context, key models.CardKey) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Insert(cardKeysTable).
		Columns("id", "card_id", "encrypted_key").
		Values(key.ID, key.CardID, key.EncryptedKey)

	if _, err := r.db.exec(ctx, query); err != nil {
		log.Err(err).Str("func", "*cardKeyRepository.CreateKey").Msg("error inserting card key")
		if isUniqueViolation(err) {
			return ErrCardAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *cardKeyRepository) FindKeyByCardID(ctx context.Context, cardID uuid.UUID) (models.CardKey, error) {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Select("id", "card_id", "encrypted_key").
		From(cardKeysTable).
		Where(sq.Eq{"card_id": cardID})

	row, err := r.db.queryRow(ctx, query)
	if err != nil {
		return models.CardKey{}, err
	}

	var key models.CardKey
	if err = row.Scan(&key.ID, &key.CardID, &key.EncryptedKey); err != nil {
		log.Err(err).Str("func", "*cardKeyRepository.FindKeyByCardID").Msg("error scanning card key")
		return models.CardKey{}, mapNotFound(err, ErrCardKeyNotFound)
	}

	return key, nil
}

func (r *cardKeyRepository) DeleteKeyByCardID(ctx context.Context, cardID uuid.UUID) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Delete(cardKeysTable).
		Where(sq.Eq{"card_id": cardID})

	result, err := r.db.exec(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "*cardKeyRepository.DeleteKeyByCardID").Msg("error deleting card key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result, ErrCardKeyNotFound)
}
