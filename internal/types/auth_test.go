package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failedTag validates v and returns the tag of the first failing rule, or "".
func failedTag(t *testing.T, v any) string {
	t.Helper()
	err := validator.New().Struct(v)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs[0].Field() + ":" + verrs[0].Tag()
}

func TestAuthRequests_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  any
		want string
	}{
		{"sign-up ok", CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter2"}, ""},
		{"sign-up no name", CreateUserRequest{Email: "ada@example.com", Password: "hunter2"}, "Name:required"},
		{"sign-up bad email", CreateUserRequest{Name: "Ada", Email: "ada", Password: "hunter2"}, "Email:email"},
		{"sign-up short password", CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "abc"}, "Password:min"},
		{"login ok", LoginRequest{Email: "ada@example.com", Password: "x"}, ""},
		{"login no password", LoginRequest{Email: "ada@example.com"}, "Password:required"},
		{"login no email", LoginRequest{Password: "x"}, "Email:required"},
		{"exchange ok", ExchangeRequest{IDToken: "tok"}, ""},
		{"exchange empty", ExchangeRequest{}, "IDToken:required"},
		{"password ok", UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "newpass"}, ""},
		{"password too short", UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "new"}, "NewPassword:min"},
		{"password no current", UpdatePasswordRequest{NewPassword: "newpass"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failedTag(t, tt.req))
		})
	}
}

func TestLoginResponse_JSON(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.New()

	data, err := json.Marshal(LoginResponse{
		Token: "jwt",
		User:  &User{ID: id, Name: "Ada", Email: "ada@example.com", Plan: "free", CreatedAt: at, UpdatedAt: at},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"token": "jwt",
		"user": {
			"id": "`+id.String()+`",
			"name": "Ada",
			"email": "ada@example.com",
			"plan": "free",
			"createdAt": "2025-01-02T03:04:05Z",
			"updatedAt": "2025-01-02T03:04:05Z"
		}
	}`, string(data))
}
