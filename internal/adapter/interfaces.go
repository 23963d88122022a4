// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client of the bank cards REST API.
//
// The client keeps the bearer token returned by sign up, sign in and admin
// requests and attaches it to every later call. Non-2xx replies are mapped
// to the sentinel errors of errors.go (e.g. [ErrForbidden] for 403,
// [ErrConflict] for 409) so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/models"
)

// BankCardsAPI is a client of the bank cards server.
type BankCardsAPI interface {
	// SetToken stores the bearer token used by authenticated calls.
	SetToken(token string)
	// Token returns the stored bearer token, or "" when there is none.
	Token() string

	// SignUp registers a USER account and stores the issued token.
	SignUp(ctx context.Context, request models.AuthRequest) error
	// SignIn stores a fresh token for existing credentials.
	SignIn(ctx context.Context, request models.AuthRequest) error
	Me(ctx context.Context) (models.UserInfo, error)
	// RequestAdmin exchanges the admin secret for the ADMIN role and stores
	// the token that carries it.
	RequestAdmin(ctx context.Context, secret string) error
	ListUsers(ctx context.Context, page models.Page) ([]models.UserInfo, error)

	CreateCard(ctx context.Context, request models.CardCreateRequest) (models.CardView, error)
	ListCards(ctx context.Context, query CardQuery) ([]models.CardView, error)
	UpdateCardStatus(ctx context.Context, cardID uuid.UUID, request models.CardUpdateStatusRequest) error
	DeleteCard(ctx context.Context, cardID uuid.UUID) error

	ListOwnCards(ctx context.Context, query CardQuery) ([]models.CardView, error)
	Balance(ctx context.Context, cardID uuid.UUID) (models.BalanceView, error)
	ChangeBalance(ctx context.Context, cardID uuid.UUID, request models.CardBalanceRequest) (models.BalanceView, error)
	Transfer(ctx context.Context, request models.CardTransferRequest) error
	RequestCardStatus(ctx context.Context, cardID uuid.UUID, status models.CardStatus) error
}
