package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the JWT claim set issued by the service.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// Token is a signed JWT together with the claims it carries.
type Token struct {
	Claims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// AuthClaims is the identity extracted from a validated token.
type AuthClaims struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the claims carry the ADMIN role.
func (a AuthClaims) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// GetUserID parses the "sub" claim as a UUID.
func (t *Token) GetUserID() (uuid.UUID, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error converting UserID from token to uuid: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// TokenResponse is the body returned by sign up, sign in and admin requests.
type TokenResponse struct {
	JWT string `json:"jwt"`
}
