package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-bank-cards/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var testSignKey = []byte("test-sign-key-test-sign-key-1234")

func TestGenerateJWTToken_Success(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWTToken("test-issuer", userID, models.RoleAdmin, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Issuer != "test-issuer" {
		t.Errorf("expected issuer test-issuer, got %s", token.Issuer)
	}
	if token.Subject != userID.String() {
		t.Errorf("expected subject %s, got %s", userID, token.Subject)
	}
	if token.Role != models.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", token.Role)
	}
	if got := token.ExpiresAt.Sub(token.IssuedAt.Time); got != time.Hour {
		t.Errorf("expected exp - iat = 1h, got %s", got)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   uuid.UUID
		role     models.Role
		duration time.Duration
		key      []byte
	}{
		{"empty issuer", "", uuid.New(), models.RoleUser, time.Hour, testSignKey},
		{"zero duration", "iss", uuid.New(), models.RoleUser, 0, testSignKey},
		{"empty key", "iss", uuid.New(), models.RoleUser, time.Hour, nil},
		{"nil user", "iss", uuid.Nil, models.RoleUser, time.Hour, testSignKey},
		{"unknown role", "iss", uuid.New(), models.Role("ROOT"), time.Hour, testSignKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tt.role, tt.duration, tt.key)
			if !errors.Is(err, ErrInvalidTokenParams) {
				t.Errorf("expected ErrInvalidTokenParams, got %v", err)
			}
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateJWTToken("iss", userID, models.RoleUser, time.Minute, testSignKey)
	if err != nil {
		t.Fatalf("GenerateJWTToken error: %v", err)
	}

	claims, err := ValidateAndParseJWTToken(token.String(), testSignKey, "iss")
	if err != nil {
		t.Fatalf("expected valid token, got: %v", err)
	}
	if claims.UserID != userID || claims.Role != models.RoleUser {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	userID := uuid.New()
	valid, _ := GenerateJWTToken("iss", userID, models.RoleUser, time.Minute, testSignKey)

	expiredClaims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		Role: models.RoleUser,
	}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString(testSignKey)

	badRoleClaims := expiredClaims
	badRoleClaims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	badRoleClaims.Role = "ROOT"
	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, badRoleClaims).SignedString(testSignKey)

	noExpClaims := badRoleClaims
	noExpClaims.Role = models.RoleUser
	noExpClaims.ExpiresAt = nil
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, noExpClaims).SignedString(testSignKey)

	tests := []struct {
		name   string
		token  string
		key    []byte
		issuer string
	}{
		{"wrong key", valid.String(), []byte("another-key"), "iss"},
		{"wrong issuer", valid.String(), testSignKey, "other"},
		{"expired", expired, testSignKey, "iss"},
		{"unknown role", badRole, testSignKey, "iss"},
		{"no expiry", noExp, testSignKey, "iss"},
		{"garbage", "not.a.token", testSignKey, "iss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tok, err := ParseBearerToken("Bearer abc.def.ghi")
	if err != nil || tok != "abc.def.ghi" {
		t.Fatalf("unexpected result %q, %v", tok, err)
	}

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		if _, err := ParseBearerToken(h); err == nil {
			t.Errorf("expected error for %q", h)
		}
	}
}
