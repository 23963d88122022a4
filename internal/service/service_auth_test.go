package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/mock"
	"github.com/MKhiriev/go-bank-cards/internal/store"
	"github.com/MKhiriev/go-bank-cards/models"
)

var testAppConfig = config.App{
	JWTSecret:              base64.StdEncoding.EncodeToString([]byte("test-jwt-secret")),
	TokenIssuer:            "go-bank-cards-test",
	TokenDuration:          time.Hour,
	CardMasterKey:          base64.StdEncoding.EncodeToString(make([]byte, 32)),
	CardHMACKey:            base64.StdEncoding.EncodeToString([]byte("hmac-key")),
	CardMonthsUntilExpires: 24,
}

func newTestAuthService(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository, *mock.MockSignInLimiter) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	limiter := mock.NewMockSignInLimiter(ctrl)

	svc, err := NewAuthService(users, limiter, testAppConfig, logger.Nop())
	require.NoError(t, err)
	return svc.(*authService), users, limiter
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestNewAuthService_InvalidSecret(t *testing.T) {
	cfg := testAppConfig
	cfg.JWTSecret = "%%%"

	_, err := NewAuthService(nil, nil, cfg, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidJWTSecret)
}

func TestSignUp_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "alice", user.Login)
			assert.Equal(t, models.RoleUser, user.Role)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
			return user, nil
		})

	token, err := svc.SignUp(ctx, models.AuthRequest{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	claims, err := svc.ParseToken(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestSignUp_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request models.AuthRequest
		wantErr error
	}{
		{name: "empty login", request: models.AuthRequest{Password: "p"}, wantErr: ErrInvalidCredentials},
		{name: "empty password", request: models.AuthRequest{Login: "alice"}, wantErr: ErrInvalidCredentials},
		{name: "login too long", request: models.AuthRequest{Login: strings.Repeat("a", MaxLoginLength+1), Password: "p"}, wantErr: ErrLoginTooLong},
		{name: "password too long", request: models.AuthRequest{Login: "alice", Password: strings.Repeat("p", 73)}, wantErr: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, _, _ := newTestAuthService(t, ctrl)

			_, err := svc.SignUp(context.Background(), tt.request)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignUp_LoginTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthService(t, ctrl)

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.SignUp(context.Background(), models.AuthRequest{Login: "alice", Password: "secret"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestSignIn_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, limiter := newTestAuthService(t, ctrl)
	ctx := context.Background()

	user := models.User{ID: uuid.New(), Login: "alice", PasswordHash: hashPassword(t, "secret"), Role: models.RoleAdmin}

	gomock.InOrder(
		limiter.EXPECT().Allowed(ctx, "alice").Return(true),
		users.EXPECT().FindUserByLogin(ctx, "alice").Return(user, nil),
		limiter.EXPECT().Reset(ctx, "alice").Return(nil),
	)

	token, err := svc.SignIn(ctx, models.AuthRequest{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	claims, err := svc.ParseToken(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.IsAdmin())
}

func TestSignIn_UnknownLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, limiter := newTestAuthService(t, ctrl)

	limiter.EXPECT().Allowed(gomock.Any(), "bob").Return(true)
	users.EXPECT().FindUserByLogin(gomock.Any(), "bob").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.SignIn(context.Background(), models.AuthRequest{Login: "bob", Password: "secret"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignIn_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, limiter := newTestAuthService(t, ctrl)

	user := models.User{ID: uuid.New(), Login: "alice", PasswordHash: hashPassword(t, "secret"), Role: models.RoleUser}

	limiter.EXPECT().Allowed(gomock.Any(), "alice").Return(true)
	users.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(user, nil)
	limiter.EXPECT().RegisterFailure(gomock.Any(), "alice").Return(errors.New("redis down"))

	_, err := svc.SignIn(context.Background(), models.AuthRequest{Login: "alice", Password: "guess"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestSignIn_Throttled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, limiter := newTestAuthService(t, ctrl)

	limiter.EXPECT().Allowed(gomock.Any(), "alice").Return(false)

	_, err := svc.SignIn(context.Background(), models.AuthRequest{Login: "alice", Password: "secret"})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestSignIn_WithoutLimiter(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)

	svc, err := NewAuthService(users, nil, testAppConfig, logger.Nop())
	require.NoError(t, err)

	users.EXPECT().FindUserByLogin(gomock.Any(), "alice").
		Return(models.User{ID: uuid.New(), Login: "alice", PasswordHash: hashPassword(t, "secret"), Role: models.RoleUser}, nil)

	_, err = svc.SignIn(context.Background(), models.AuthRequest{Login: "alice", Password: "secret"})
	assert.NoError(t, err)
}

func TestParseToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthService(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongIssuer(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthService(t, ctrl)

	other := *svc
	other.tokenIssuer = "someone-else"
	token, err := other.CreateToken(context.Background(), models.User{ID: uuid.New(), Role: models.RoleUser})
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token.String())
	assert.ErrorIs(t, err, ErrInvalidToken)
}
