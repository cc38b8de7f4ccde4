// Package server provides the HTTP API for the resume builder.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/scoring"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrInvalidIDToken indicates an identity-provider token that failed verification
type ErrInvalidIDToken struct {
	Cause error
}

func (e *ErrInvalidIDToken) Error() string {
	return fmt.Sprintf("invalid ID token: %v", e.Cause)
}

func (e *ErrInvalidIDToken) Unwrap() error {
	return e.Cause
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUpload indicates a missing, oversized or wrongly typed upload
type ErrUpload struct {
	Message string
}

func (e *ErrUpload) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists   *ErrEmailAlreadyExists
		invalidCreds  *ErrInvalidCredentials
		invalidToken  *ErrInvalidIDToken
		mismatch      *ErrPasswordMismatch
		notFound      *ErrUserNotFound
		validation    *ErrValidation
		upload        *ErrUpload
		configErr     *scoring.ConfigError
		unavailable   *scoring.UnavailableError
		parseErr      *scoring.ParseError
		maxBytesError *http.MaxBytesError
	)

	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds), errors.As(err, &invalidToken), errors.As(err, &mismatch):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &upload), errors.As(err, &maxBytesError):
		return http.StatusBadRequest
	case errors.Is(err, layout.ErrMissingInput), errors.Is(err, scoring.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrUnreadableUpload), errors.Is(err, ingestion.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrHTTPRequestFailed), errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusBadRequest
	case errors.As(err, &configErr), errors.As(err, &unavailable):
		return http.StatusBadGateway
	case errors.As(err, &parseErr):
		return http.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message shown to API clients for an error. Internal details
// of unexpected failures are never exposed.
func UserMessage(err error) string {
	var (
		emailExists   *ErrEmailAlreadyExists
		invalidCreds  *ErrInvalidCredentials
		invalidToken  *ErrInvalidIDToken
		mismatch      *ErrPasswordMismatch
		notFound      *ErrUserNotFound
		validation    *ErrValidation
		upload        *ErrUpload
		configErr     *scoring.ConfigError
		unavailable   *scoring.UnavailableError
		parseErr      *scoring.ParseError
		maxBytesError *http.MaxBytesError
	)

	switch {
	case errors.As(err, &emailExists):
		return "User already exists"
	case errors.As(err, &invalidCreds):
		return "Invalid credentials"
	case errors.As(err, &invalidToken):
		return "Invalid identity token"
	case errors.As(err, &mismatch), errors.As(err, &notFound), errors.As(err, &validation), errors.As(err, &upload):
		return err.Error()
	case errors.As(err, &maxBytesError):
		return "Request body too large"
	case errors.Is(err, layout.ErrMissingInput):
		return "Resume data is required"
	case errors.Is(err, scoring.ErrMissingInput):
		return "Job description is required"
	case errors.Is(err, ingestion.ErrTextTooShort):
		return "PDF contains very little text. Please upload a valid text-based PDF resume."
	case errors.Is(err, ingestion.ErrUnreadableUpload):
		return "Failed to extract text from PDF"
	case errors.Is(err, ingestion.ErrInvalidURL):
		return "Job URL must be an http or https address"
	case errors.Is(err, ingestion.ErrHTTPRequestFailed), errors.Is(err, ingestion.ErrContentExtractionFailed):
		return "Failed to fetch job description from URL"
	case errors.As(err, &configErr):
		return "AI service misconfigured: invalid API key."
	case errors.As(err, &unavailable):
		return "AI service unavailable or models not supported. Please try again later."
	case errors.As(err, &parseErr):
		return "Failed to parse AI response. Please try again."
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out. Please try again."
	default:
		return "Internal server error"
	}
}
