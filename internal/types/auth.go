package types

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest is the email/password sign-up body.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the email/password sign-in body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ExchangeRequest carries an identity-provider ID token to be swapped for a session token.
type ExchangeRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdatePasswordRequest changes the password of the signed-in user. CurrentPassword may be
// empty for accounts that only signed in through an identity provider.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// User is the API view of a user record; it never carries the password hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse is returned by register, login and token exchange.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Identity is what an external identity provider asserts about a signed-in principal.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}
