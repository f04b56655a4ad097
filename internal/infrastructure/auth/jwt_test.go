package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-0123456789abcdef0123",
		AccessTokenExpiration: time.Hour,
		Issuer:                "shopfront",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	token, expiresAt, err := service.GenerateAccessToken(userID, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "shopfront", claims.Issuer)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateAccessTokenInvalid(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	service := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:                "completely-different-secret-here",
		AccessTokenExpiration: time.Hour,
		Issuer:                "shopfront",
	})

	token, _, err := other.GenerateAccessToken(uuid.New(), "bob")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-0123456789abcdef0123",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "shopfront",
	})

	token, _, err := service.GenerateAccessToken(uuid.New(), "carol")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessTokenMissingUserID(t *testing.T) {
	service := newTestService()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-0123456789abcdef0123"))
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestValidateAccessTokenRejectsWrongSigningMethod(t *testing.T) {
	service := newTestService()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New().String()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
