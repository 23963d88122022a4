// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/store"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
	"github.com/MKhiriev/go-bank-cards/models"
)

// MaxCardNumberAttempts bounds the search for an unused card number.
const MaxCardNumberAttempts = 100

// cardService implements [CardService]. Every operation that touches more
// than one row runs inside a transaction of txManager; repositories pick the
// transaction up from the context.
type cardService struct {
	cards          store.CardRepository
	cardKeys       store.CardKeyRepository
	cardHashes     store.CardHashRepository
	statusRequests store.StatusRequestRepository
	users          store.UserRepository

	txManager trm.Manager
	security  CardSecurityService

	defaultMonths int
	ids           *utils.UUIDGenerator
	now           func() time.Time

	logger *logger.Logger
}

func NewCardService(storages *store.Storages, security CardSecurityService, cfg config.App, logger *logger.Logger) CardService {
	return &cardService{
		cards:          storages.CardRepository,
		cardKeys:       storages.CardKeyRepository,
		cardHashes:     storages.CardHashRepository,
		statusRequests: storages.StatusRequestRepository,
		users:          storages.UserRepository,
		txManager:      storages.TxManager,
		security:       security,
		defaultMonths:  cfg.CardMonthsUntilExpires,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

// Create issues a new ACTIVE card with a zero balance to the owner.
func (s *cardService) Create(ctx context.Context, request models.CardCreateRequest) (models.CardView, error) {
	log := logger.FromContext(ctx)

	months := s.defaultMonths
	if request.MonthsQuantityUntilExpires != nil {
		months = *request.MonthsQuantityUntilExpires
	}
	if months < 1 {
		return models.CardView{}, ErrInvalidMonths
	}

	owner, err := s.users.FindUserByID(ctx, request.OwnerID)
	if err != nil {
		log.Err(err).Str("owner_id", request.OwnerID.String()).Msg("card owner lookup failed")
		return models.CardView{}, mapUserError(err)
	}

	var card models.Card
	var number string
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		generated, hash, err := s.uniqueNumber(ctx)
		if err != nil {
			return err
		}
		number = generated

		encryptedNumber, encryptedKey, err := s.security.Seal(number)
		if err != nil {
			return err
		}

		card = models.Card{
			ID:              s.ids.Generate(),
			EncryptedNumber: encryptedNumber,
			OwnerID:         owner.ID,
			OwnerLogin:      owner.Login,
			ValidityPeriod:  models.ValidityPeriodFrom(s.now(), months),
			Status:          models.CardStatusActive,
		}

		if err = s.cardHashes.CreateHash(ctx, hash); err != nil {
			return err
		}
		if err = s.cards.CreateCard(ctx, card); err != nil {
			return err
		}
		return s.cardKeys.CreateKey(ctx, models.CardKey{
			ID:           s.ids.Generate(),
			CardID:       card.ID,
			EncryptedKey: encryptedKey,
		})
	})
	if err != nil {
		log.Err(err).Str("owner_id", owner.ID.String()).Msg("card creation failed")
		return models.CardView{}, mapCardError(err)
	}

	log.Info().Str("card_id", card.ID.String()).Str("owner_id", owner.ID.String()).Msg("card issued")
	return models.NewCardView(card, number), nil
}

// uniqueNumber generates numbers until one with an unused fingerprint is found.
func (s *cardService) uniqueNumber(ctx context.Context) (string, string, error) {
	for attempt := 0; attempt < MaxCardNumberAttempts; attempt++ {
		number, err := s.security.GenerateNumber()
		if err != nil {
			return "", "", err
		}

		hash := s.security.Hash(number)
		exists, err := s.cardHashes.HashExists(ctx, hash)
		if err != nil {
			return "", "", err
		}
		if !exists {
			return number, hash, nil
		}
	}
	return "", "", ErrCardNumberExhausted
}

// UpdateStatus sets the status of a card. When the change answers an owner's
// request, the pending request is removed.
func (s *cardService) UpdateStatus(ctx context.Context, cardID uuid.UUID, request models.CardUpdateStatusRequest) error {
	if !request.Status.Valid() {
		return ErrInvalidStatus
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.cards.UpdateStatus(ctx, cardID, request.Status); err != nil {
			return err
		}
		if request.IsRequested {
			return s.statusRequests.DeleteRequestByCardID(ctx, cardID)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("card_id", cardID.String()).Msg("card status update failed")
		return mapCardError(err)
	}

	return nil
}

// Delete removes the card together with its fingerprint, key and pending request.
func (s *cardService) Delete(ctx context.Context, cardID uuid.UUID) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		card, err := s.cards.FindCardByID(ctx, cardID)
		if err != nil {
			return err
		}

		number, err := s.security.Open(card.EncryptedNumber, card.EncryptedKey)
		if err != nil {
			return err
		}

		if err = s.cardHashes.DeleteHash(ctx, s.security.Hash(number)); err != nil {
			return err
		}
		if err = s.statusRequests.DeleteRequestByCardID(ctx, card.ID); err != nil {
			return err
		}
		if err = s.cardKeys.DeleteKeyByCardID(ctx, card.ID); err != nil && !errors.Is(err, store.ErrCardKeyNotFound) {
			return err
		}
		return s.cards.DeleteCard(ctx, card.ID)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("card_id", cardID.String()).Msg("card deletion failed")
		return mapCardError(err)
	}

	return nil
}

// List returns a page of cards of any owner.
func (s *cardService) List(ctx context.Context, filter models.CardFilter) ([]models.CardView, error) {
	filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	cards, err := s.cards.ListCards(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("card listing failed")
		return nil, mapCardError(err)
	}

	views := make([]models.CardView, 0, len(cards))
	for _, card := range cards {
		number, err := s.security.Open(card.EncryptedNumber, card.EncryptedKey)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("card_id", card.ID.String()).Msg("card number could not be decrypted")
			return nil, err
		}
		views = append(views, models.NewCardView(card, number))
	}

	return views, nil
}

// ListOwn returns a page of the caller's cards.
func (s *cardService) ListOwn(ctx context.Context, userID uuid.UUID, filter models.CardFilter) ([]models.CardView, error) {
	return s.List(ctx, filter.OwnOnly(userID))
}

func (s *cardService) Balance(ctx context.Context, userID, cardID uuid.UUID) (models.BalanceView, error) {
	card, err := s.ownCard(ctx, userID, cardID)
	if err != nil {
		return models.BalanceView{}, err
	}
	return models.BalanceView{Balance: card.Balance}, nil
}

// ChangeBalance deposits or withdraws money on an available card of the caller.
func (s *cardService) ChangeBalance(ctx context.Context, userID, cardID uuid.UUID, request models.CardBalanceRequest) (models.BalanceView, error) {
	var balance int64
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		card, err := s.ownCard(ctx, userID, cardID)
		if err != nil {
			return err
		}

		if !request.Action.Valid() {
			return ErrInvalidAction
		}
		if request.Amount < 0 {
			return ErrNegativeAmount
		}
		if !card.Available(s.now()) {
			return ErrCardNotAvailable
		}

		delta := request.Amount
		if request.Action == models.WithdrawMoney {
			delta = -delta
		}
		if err = card.CanApply(delta); err != nil {
			return err
		}

		balance, err = s.cards.UpdateBalance(ctx, card.ID, delta)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("card_id", cardID.String()).Msg("balance change failed")
		return models.BalanceView{}, mapCardError(err)
	}

	return models.BalanceView{Balance: balance}, nil
}

// Transfer moves money from a card of the caller to another available card.
func (s *cardService) Transfer(ctx context.Context, userID uuid.UUID, request models.CardTransferRequest) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		from, err := s.ownCard(ctx, userID, request.From)
		if err != nil {
			return err
		}

		if request.Amount < 0 {
			return ErrNegativeAmount
		}
		if request.From == request.To {
			return ErrSameCard
		}

		to, err := s.cards.FindCardByID(ctx, request.To)
		if err != nil {
			return err
		}

		today := s.now()
		if !from.Available(today) || !to.Available(today) {
			return ErrCardNotAvailable
		}
		if err = from.CanApply(-request.Amount); err != nil {
			return err
		}
		if err = to.CanApply(request.Amount); err != nil {
			return err
		}

		return s.cards.Transfer(ctx, from.ID, to.ID, request.Amount)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("from", request.From.String()).
			Str("to", request.To.String()).
			Msg("transfer failed")
		return mapCardError(err)
	}

	return nil
}

// RequestStatusUpdate records the owner's wish to change the card status.
func (s *cardService) RequestStatusUpdate(ctx context.Context, userID, cardID uuid.UUID, status models.CardStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	card, err := s.ownCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if !card.Available(s.now()) {
		return ErrCardNotAvailable
	}

	err = s.statusRequests.CreateRequest(ctx, models.StatusUpdateRequest{
		ID:        s.ids.Generate(),
		CardID:    card.ID,
		Status:    status,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("card_id", cardID.String()).Msg("status request failed")
		return mapCardError(err)
	}

	return nil
}

func (s *cardService) ExpireOverdue(ctx context.Context, today time.Time) (int64, error) {
	n, err := s.cards.ExpireBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("error expiring cards: %w", err)
	}
	return n, nil
}

// ownCard loads the card and checks that userID owns it.
func (s *cardService) ownCard(ctx context.Context, userID, cardID uuid.UUID) (models.Card, error) {
	card, err := s.cards.FindCardByID(ctx, cardID)
	if err != nil {
		return models.Card{}, mapCardError(err)
	}
	if card.OwnerID != userID {
		logger.FromContext(ctx).Warn().
			Str("card_id", cardID.String()).
			Str("user_id", userID.String()).
			Msg("access to a foreign card")
		return models.Card{}, ErrNotCardOwner
	}
	return card, nil
}

// mapCardError translates storage and model errors to service errors.
// Service errors pass through unchanged.
func mapCardError(err error) error {
	switch {
	case errors.Is(err, store.ErrCardNotFound):
		return ErrCardNotFound
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrStatusRequestExists):
		return ErrStatusRequestExists
	case errors.Is(err, store.ErrInsufficientFunds), errors.Is(err, models.ErrNotEnoughBalance):
		return ErrNotEnoughBalance
	case errors.Is(err, store.ErrBalanceOverflow), errors.Is(err, models.ErrBalanceTooHigh):
		return ErrBalanceTooHigh
	default:
		return err
	}
}
