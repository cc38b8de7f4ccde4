package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testJWTSecret,
		ExpirationHours: expirationHours,
	})
}

// signClaims signs arbitrary claims with the test secret.
func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token1, err := service.GenerateToken(userID)
	require.NoError(t, err)
	token2, err := service.GenerateToken(userID)
	require.NoError(t, err)
	assert.NotEqual(t, token1, token2)

	claims1, err := service.ValidateToken(token1)
	require.NoError(t, err)
	claims2, err := service.ValidateToken(token2)
	require.NoError(t, err)
	assert.NotEqual(t, claims1.ID, claims2.ID)
}

func TestJWTService_Expiry(t *testing.T) {
	service := setupTestJWTService(t, 1)
	issued := time.Now()
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken(uuid.New())
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = service.ValidateToken(token)
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	valid := jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: future}

	otherSecret := setupTestJWTService(t, 24)
	otherSecret.config = &config.JWTConfig{Secret: "different-secret-key-for-jwt-signing-minimum-32-bytes", ExpirationHours: 24}
	foreign, err := otherSecret.GenerateToken(userID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"one part", "invalid", "malformed"},
		{"two parts", "invalid.token", "malformed"},
		{"four parts", "invalid.token.format.extra", "malformed"},
		{"bad base64", "invalid.base64.signature", "malformed"},
		{"other secret", foreign, "signature"},
		{
			"no expiry",
			signClaims(t, jwt.SigningMethodHS256, []byte(testJWTSecret), &Claims{
				UserID:           userID,
				RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer},
			}),
			"",
		},
		{
			"wrong issuer",
			signClaims(t, jwt.SigningMethodHS256, []byte(testJWTSecret), &Claims{
				UserID:           userID,
				RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: future},
			}),
			"",
		},
		{
			"alg none",
			signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, &Claims{
				UserID:           userID,
				RegisteredClaims: valid,
			}),
			"",
		},
		{
			"HS512",
			signClaims(t, jwt.SigningMethodHS512, []byte(testJWTSecret), &Claims{
				UserID:           userID,
				RegisteredClaims: valid,
			}),
			"",
		},
		{
			"nil user",
			signClaims(t, jwt.SigningMethodHS256, []byte(testJWTSecret), &Claims{RegisteredClaims: valid}),
			"user id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestJWTService_ExpirationHours(t *testing.T) {
	for _, hours := range []int{1, 12, 24, 168} {
		service := setupTestJWTService(t, hours)
		issued := time.Now().Truncate(time.Second)
		service.now = func() time.Time { return issued }

		token, err := service.GenerateToken(uuid.New())
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, issued.Add(time.Duration(hours)*time.Hour).Unix(), claims.ExpiresAt.Unix())
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()
	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	validator := service.AsTokenValidator()
	got, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.GetUserID())

	_, err = validator.ValidateToken("garbage")
	assert.Error(t, err)
}
