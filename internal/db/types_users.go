package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmailTaken is returned when an insert hits the unique email constraint.
var ErrEmailTaken = errors.New("email already registered")

// User is a row of the users table.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"` // nil for accounts created through an identity provider
	ProviderUID  *string   `json:"-"`
	Plan         string    `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PasswordSet reports whether the account can sign in with a password.
func (u *User) PasswordSet() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
