// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-bank-cards/models"
	"github.com/google/uuid"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user's id.
var UserIDCtxKey = contextKey("userID")

// RoleCtxKey is the key used to store the authenticated user's role.
var RoleCtxKey = contextKey("role")

// WithAuthClaims stores the identity of the caller in ctx.
func WithAuthClaims(ctx context.Context, claims models.AuthClaims) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, claims.UserID)
	return context.WithValue(ctx, RoleCtxKey, claims.Role)
}

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID and an ok flag:
//   - ok == true: value is found and has the uuid.UUID type
//   - ok == false: value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(uuid.UUID)
	return userID, ok
}

// GetAuthClaimsFromContext retrieves both the user id and the role.
func GetAuthClaimsFromContext(ctx context.Context) (models.AuthClaims, bool) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return models.AuthClaims{}, false
	}
	role, ok := ctx.Value(RoleCtxKey).(models.Role)
	if !ok {
		return models.AuthClaims{}, false
	}
	return models.AuthClaims{UserID: userID, Role: role}, true
}
