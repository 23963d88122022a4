package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/models"
)

const statusRequestsTable = "card_status_requests"

type statusRequestRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewStatusRequestRepository(db *DB, logger *logger.Logger) StatusRequestRepository {
	logger.Debug().Msg("creating status request repository")
	return &statusRequestRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRequest stores a pending request. A second request for the same
// card fails with [ErrStatusRequestExists].
func (r *statusRequestRepository) CreateRequest(ctx context.Context, request models.StatusUpdateRequest) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Insert(statusRequestsTable).
		Columns("id", "card_id", "status", "created_at").
		Values(request.ID, request.CardID, string(request.Status), request.CreatedAt)

	if _, err := r.db.exec(ctx, query); err != nil {
		log.Err(err).Str("func", "*statusRequestRepository.CreateRequest").Msg("error inserting request")
		if isUniqueViolation(err) {
			return ErrStatusRequestExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteRequestByCardID drops the pending request of the card, if any.
func (r *statusRequestRepository) DeleteRequestByCardID(ctx context.Context, cardID uuid.UUID) error {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Delete(statusRequestsTable).
		Where(sq.Eq{"card_id": cardID})

	if _, err := r.db.exec(ctx, query); err != nil {
		log.Err(err).Str("func", "*statusRequestRepository.DeleteRequestByCardID").Msg("error deleting request")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
