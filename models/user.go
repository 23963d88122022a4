package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user, also used as the JWT subject.
	ID uuid.UUID `json:"id"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never serialized.
	PasswordHash string `json:"-"`

	// Role defines the privileges of the user.
	Role Role `json:"role"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserInfo is the public representation of a user.
type UserInfo struct {
	ID    uuid.UUID `json:"id"`
	Login string    `json:"login"`
	Role  Role      `json:"role"`
}

// Info strips credential data from u.
func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Login: u.Login, Role: u.Role}
}
