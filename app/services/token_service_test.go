package services_test

import (
	"testing"
	"time"

	"github.com/godigitorw/macss/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func TestTokenService(t *testing.T) {
	tokenService, err := services.NewTokenService(1*time.Hour, "test-issuer", "test-audience", testSecret)
	require.NoError(t, err)

	t.Run("GenerateAndValidate", func(t *testing.T) {
		token, err := tokenService.GenerateAdminToken(42)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := tokenService.ValidateAdminToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.AccountID)
		assert.NotEmpty(t, claims.TokenID)
		assert.True(t, claims.ExpiresAt.After(time.Now()))
	})

	t.Run("UniqueTokenIDs", func(t *testing.T) {
		first, err := tokenService.GenerateAdminToken(1)
		require.NoError(t, err)
		second, err := tokenService.GenerateAdminToken(1)
		require.NoError(t, err)

		firstClaims, err := tokenService.ValidateAdminToken(first)
		require.NoError(t, err)
		secondClaims, err := tokenService.ValidateAdminToken(second)
		require.NoError(t, err)
		assert.NotEqual(t, firstClaims.TokenID, secondClaims.TokenID)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		shortLived, err := services.NewTokenService(-1*time.Minute, "test-issuer", "test-audience", testSecret)
		require.NoError(t, err)

		token, err := shortLived.GenerateAdminToken(42)
		require.NoError(t, err)

		_, err = shortLived.ValidateAdminToken(token)
		assert.ErrorIs(t, err, services.ErrTokenExpired)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		_, err := tokenService.ValidateAdminToken("not.a.token")
		assert.ErrorIs(t, err, services.ErrTokenInvalid)
	})

	t.Run("WrongKey", func(t *testing.T) {
		other, err := services.NewTokenService(1*time.Hour, "test-issuer", "test-audience", "another-secret-key-also-32-chars-xx")
		require.NoError(t, err)

		token, err := other.GenerateAdminToken(42)
		require.NoError(t, err)

		_, err = tokenService.ValidateAdminToken(token)
		assert.ErrorIs(t, err, services.ErrTokenInvalid)
	})

	t.Run("EmptySecretRejected", func(t *testing.T) {
		_, err := services.NewTokenService(1*time.Hour, "test-issuer", "test-audience", "")
		require.Error(t, err)
	})
}
