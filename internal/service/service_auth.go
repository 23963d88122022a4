package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/store"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
	"github.com/MKhiriev/go-bank-cards/models"
)

// MaxLoginLength is the longest login accepted on sign up.
const MaxLoginLength = 100

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// limiter throttles failed sign ins. Never nil.
	limiter SignInLimiter

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey []byte

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg. A nil limiter disables
// sign in throttling.
func NewAuthService(userRepository store.UserRepository, limiter SignInLimiter, cfg config.App, logger *logger.Logger) (AuthService, error) {
	signKey, err := base64.StdEncoding.DecodeString(cfg.JWTSecret)
	if err != nil || len(signKey) == 0 {
		return nil, ErrInvalidJWTSecret
	}

	if limiter == nil {
		limiter = nopLimiter{}
	}

	return &authService{
		userRepository: userRepository,
		limiter:        limiter,
		tokenSignKey:   signKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}, nil
}

// SignUp creates a USER account and issues its first token.
//
// Returns:
//   - ErrInvalidCredentials if login or password is empty.
//   - ErrLoginTooLong / ErrPasswordTooLong on oversized input.
//   - ErrLoginAlreadyExists if the login is taken.
func (a *authService) SignUp(ctx context.Context, request models.AuthRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if request.Login == "" || request.Password == "" {
		log.Error().Str("login", request.Login).Msg("invalid user data provided")
		return models.Token{}, ErrInvalidCredentials
	}
	if len(request.Login) > MaxLoginLength {
		return models.Token{}, ErrLoginTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.Token{}, ErrPasswordTooLong
		}
		return models.Token{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.ids.Generate(),
		Login:        request.Login,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    a.now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("login", request.Login).Msg("user creation ended with error")
		if errors.Is(err, store.ErrLoginAlreadyExists) {
			return models.Token{}, ErrLoginAlreadyExists
		}
		return models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.CreateToken(ctx, user)
}

// SignIn authenticates an existing user and issues a token.
//
// Returns:
//   - ErrTooManyAttempts while the login is throttled.
//   - ErrUserNotFound if no account has the login.
//   - ErrWrongPassword if the password does not match.
func (a *authService) SignIn(ctx context.Context, request models.AuthRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if request.Login == "" || request.Password == "" {
		return models.Token{}, ErrInvalidCredentials
	}

	if !a.limiter.Allowed(ctx, request.Login) {
		log.Warn().Str("login", request.Login).Msg("sign in throttled")
		return models.Token{}, ErrTooManyAttempts
	}

	user, err := a.userRepository.FindUserByLogin(ctx, request.Login)
	if err != nil {
		log.Err(err).Str("login", request.Login).Msg("user search by login failed")
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Token{}, ErrUserNotFound
		}
		return models.Token{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		log.Warn().Str("login", user.Login).Msg("wrong password")
		if limErr := a.limiter.RegisterFailure(ctx, request.Login); limErr != nil {
			log.Err(limErr).Msg("failed sign in was not registered")
		}
		return models.Token{}, ErrWrongPassword
	}

	if err = a.limiter.Reset(ctx, request.Login); err != nil {
		log.Err(err).Msg("sign in attempts were not reset")
	}

	return a.CreateToken(ctx, user)
}

// CreateToken issues a signed JWT carrying the user's id and role.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT string. Any validation failure (expired,
// wrong issuer, malformed, unknown role) is normalised to ErrInvalidToken.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.AuthClaims, error) {
	claims, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.AuthClaims{}, ErrInvalidToken
	}

	return claims, nil
}

type nopLimiter struct{}

func (nopLimiter) Allowed(context.Context, string) bool          { return true }
func (nopLimiter) RegisterFailure(context.Context, string) error { return nil }
func (nopLimiter) Reset(context.Context, string) error           { return nil }
