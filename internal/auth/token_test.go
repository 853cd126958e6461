package auth

import (
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaluaasi/support-gateway/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, exp, err := tm.GenerateToken("42", "soporte1", domain.RoleSupport)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "soporte1", claims.Username)
	assert.Equal(t, domain.RoleSupport, claims.Role)
}

func TestParseTokenRejects(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := NewTokenManager("other", 5).GenerateToken("1", "x", domain.RoleAdmin)
		require.NoError(t, err)
		_, err = tm.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.ParseToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("missing expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			Role:             domain.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
		}).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = tm.ParseToken(token)
		assert.Error(t, err)
	})
}
