package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
)

const cardHashesTable = "card_hashes"

// cardHashRepository stores HMAC fingerprints of issued card numbers.
// Encrypted numbers use a fresh key and nonce per card, so uniqueness can
// only be checked on the fingerprint.
type cardHashRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCardHashRepository(db *DB, logger *logger.Logger) CardHashRepository {
	logger.Debug().Msg("creating card hash repository")
	return &cardHashRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cardHashRepository) HashExists(ctx context.Context, hash string) (bool, error) {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Select("COUNT(*)").
		From(cardHashesTable).
		Where(sq.Eq{"hmac_hash": hash})

	row, err := r.db.queryRow(ctx, query)
	if err != nil {
		return false, err
	}

	var count int
	if err = row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*cardHashRepository.HashExists").Msg("error counting hashes")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count > 0, nil
}

func (r *cardHashRepository) CreateHash(ctx context.Context, hash string) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Insert(cardHashesTable).
		Columns("id", "hmac_hash").
		Values(uuid.New(), hash)

	if _, err := r.db.exec(ctx, query); err != nil {
		log.Err(err).Str("func", "*cardHashRepository.CreateHash").Msg("error inserting hash")
		if isUniqueViolation(err) {
			return ErrCardAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteHash removes the fingerprint. A missing fingerprint is not an error.
func (r *cardHashRepository) DeleteHash(ctx context.Context, hash string) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Delete(cardHashesTable).
		Where(sq.Eq{"hmac_hash": hash})

	if _, err := r.db.exec(ctx, query); err != nil {
		log.Err(err).Str("func", "*cardHashRepository.DeleteHash").Msg("error deleting hash")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
