package services

import (
	"testing"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService(duration time.Duration) TokenServiceInterface {
	return NewTokenService(&config.JWTConfig{
		Secret:        []byte("test-secret-key-that-is-long-enough"),
		TokenDuration: duration,
		Issuer:        "fintrack-test",
	})
}

func testTokenUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "maria_p",
	}
}

func TestGenerateToken(t *testing.T) {
	service := testTokenService(time.Hour)
	user := testTokenUser()

	token, expiresAt, err := service.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
}

func TestGenerateToken_NilUser(t *testing.T) {
	service := testTokenService(time.Hour)

	_, _, err := service.GenerateToken(nil)
	assert.Error(t, err)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	service := testTokenService(time.Hour)
	user := testTokenUser()

	token, _, err := service.GenerateToken(user)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, "fintrack-test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	service := testTokenService(-time.Minute)

	token, _, err := service.GenerateToken(testTokenUser())
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Empty(t *testing.T) {
	service := testTokenService(time.Hour)

	_, err := service.ValidateToken("")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := testTokenService(time.Hour)

	_, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service := testTokenService(time.Hour)

	other := NewTokenService(&config.JWTConfig{
		Secret:        []byte("a-completely-different-signing-key"),
		TokenDuration: time.Hour,
		Issuer:        "fintrack-test",
	})

	token, _, err := other.GenerateToken(testTokenUser())
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	service := testTokenService(time.Hour)

	other := NewTokenService(&config.JWTConfig{
		Secret:        []byte("test-secret-key-that-is-long-enough"),
		TokenDuration: time.Hour,
		Issuer:        "someone-else",
	})

	token, _, err := other.GenerateToken(testTokenUser())
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidIssuer)
}

func TestExtractTokenFromHeader(t *testing.T) {
	service := testTokenService(time.Hour)

	tests := []struct {
		name     string
		header   string
		expected string
		wantErr  bool
	}{
		{"standard bearer", "Bearer abc123", "abc123", false},
		{"lowercase bearer", "bearer abc123", "abc123", false},
		{"mixed case bearer", "BeArEr abc123", "abc123", false},
		{"empty header", "", "", true},
		{"missing scheme", "abc123", "", true},
		{"bearer without token", "Bearer ", "", true},
		{"wrong scheme", "Basic abc123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}
