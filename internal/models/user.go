package models

import (
	"strings"
	"time"
)

// User represents a user record in the database
type User struct {
	ID           int64     `json:"id" db:"id"`                         // Primary key
	Email        string    `json:"email" db:"email"`                   // Unique, stored lower-cased
	Username     string    `json:"username" db:"username"`             // Unique, stored lower-cased
	PasswordHash string    `json:"-" db:"password_hash"`               // bcrypt hash, never serialized
	FullName     *string   `json:"full_name,omitempty" db:"full_name"` // Optional display name
	IsActive     bool      `json:"is_active" db:"is_active"`           // Inactive users cannot authenticate
	CreatedAt    time.Time `json:"created_at" db:"created_at"`         // Creation timestamp
}

// NewUser carries the fields needed to insert a user.
type NewUser struct {
	Email        string
	Username     string
	PasswordHash string
	FullName     *string
}

// SignupRequest is the validated input of a signup.
type SignupRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Username string  `json:"username" validate:"required,min=3,max=50,excludes=@"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
}

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

// NormalizeLogin applies the collation rule for usernames and emails:
// surrounding whitespace is dropped and the value is lower-cased.
func NormalizeLogin(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
