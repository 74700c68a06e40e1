package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewJWTService(testSecret, time.Hour, 24*time.Hour)

	token, err := service.GenerateToken("admin")
	require.NoError(t, err)

	username, err := service.ValidateToken(*token)
	require.NoError(t, err)
	assert.Equal(t, "admin", *username)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("other_secret", time.Hour, 24*time.Hour)
	token, err := issuer.GenerateToken("admin")
	require.NoError(t, err)

	service := NewJWTService(testSecret, time.Hour, 24*time.Hour)
	_, err = service.ValidateToken(*token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsMissingClaims(t *testing.T) {
	service := NewJWTService(testSecret, time.Hour, 24*time.Hour)

	// Validly signed but without an expiry: rejected, never a panic.
	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"iat":      time.Now().Unix(),
	})
	signed, err := noExpiry.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expiry")

	// Validly signed but without a subject.
	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err = noSubject.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.Error(t, err)
}
