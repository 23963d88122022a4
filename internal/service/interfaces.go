package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	// SignUp registers a USER account and returns its token.
	SignUp(ctx context.Context, request models.AuthRequest) (models.Token, error)
	// SignIn checks the credentials and returns a fresh token.
	SignIn(ctx context.Context, request models.AuthRequest) (models.Token, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.AuthClaims, error)
}

type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (models.UserInfo, error)
	// RequestAdmin grants the ADMIN role to the caller when secret matches
	// the configured admin secret, and returns a token carrying the new role.
	RequestAdmin(ctx context.Context, userID uuid.UUID, secret string) (models.Token, error)
	List(ctx context.Context, page models.Page) ([]models.UserInfo, error)
}

type CardService interface {
	Create(ctx context.Context, request models.CardCreateRequest) (models.CardView, error)
	UpdateStatus(ctx context.Context, cardID uuid.UUID, request models.CardUpdateStatusRequest) error
	Delete(ctx context.Context, cardID uuid.UUID) error
	List(ctx context.Context, filter models.CardFilter) ([]models.CardView, error)
	ListOwn(ctx context.Context, userID uuid.UUID, filter models.CardFilter) ([]models.CardView, error)

	Balance(ctx context.Context, userID, cardID uuid.UUID) (models.BalanceView, error)
	ChangeBalance(ctx context.Context, userID, cardID uuid.UUID, request models.CardBalanceRequest) (models.BalanceView, error)
	Transfer(ctx context.Context, userID uuid.UUID, request models.CardTransferRequest) error
	RequestStatusUpdate(ctx context.Context, userID, cardID uuid.UUID, status models.CardStatus) error

	// ExpireOverdue marks ACTIVE cards whose validity ended before today as
	// EXPIRED and returns how many were changed.
	ExpireOverdue(ctx context.Context, today time.Time) (int64, error)
}

// CardSecurityService generates, fingerprints and protects card numbers.
type CardSecurityService interface {
	GenerateNumber() (string, error)
	Hash(number string) string
	// Seal encrypts number under a fresh card key and wraps that key with
	// the master key.
	Seal(number string) (encryptedNumber, encryptedKey string, err error)
	Open(encryptedNumber, encryptedKey string) (string, error)
}

type HealthService interface {
	Liveness(ctx context.Context) models.HealthReport
	Readiness(ctx context.Context) models.HealthReport
}

// HealthChecker probes a single dependency.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// SignInLimiter throttles failed sign in attempts per login.
type SignInLimiter interface {
	Allowed(ctx context.Context, login string) bool
	RegisterFailure(ctx context.Context, login string) error
	Reset(ctx context.Context, login string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
