package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	verifier    TokenVerifier // nil disables token exchange
	validator   *validator.Validate
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, verifier TokenVerifier, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		verifier:    verifier,
		validator:   newValidator(),
		log:         log,
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it.
func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := h.validator.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// issue answers with a session token for user.
func (h *AuthHandler) issue(w http.ResponseWriter, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		respondError(w, h.log, fmt.Errorf("failed to generate token: %w", err))
		return
	}
	writeJSON(w, status, types.LoginResponse{Token: token, User: user})
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := h.decode(w, r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.log.WithField("user_id", user.ID).Info("user registered")
	h.issue(w, http.StatusCreated, user)
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := h.decode(w, r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.issue(w, http.StatusOK, user)
}

// Exchange swaps a verified identity-provider ID token for a session token.
func (h *AuthHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	if h.verifier == nil {
		writeMessage(w, http.StatusNotFound, "Route not found")
		return
	}

	var req types.ExchangeRequest
	if err := h.decode(w, r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	identity, err := h.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	user, err := h.userService.Exchange(r.Context(), identity)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.issue(w, http.StatusOK, user)
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdatePassword changes the signed-in user's password.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req types.UpdatePasswordRequest
	if err := h.decode(w, r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, h.log, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password updated successfully")
}

// validationError reports the first failed field of a validator error.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}
