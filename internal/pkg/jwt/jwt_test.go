//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"court-reservation/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := jwt.NewService("secret", "identity")
	userID := uuid.New()

	t.Run("正常系: round trip", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "member", time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "member", claims.Role)
		assert.Equal(t, "identity", claims.Issuer)
	})

	t.Run("異常系: expired", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "member", -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("異常系: other secret", func(t *testing.T) {
		token, err := jwt.NewService("other", "identity").GenerateToken(userID, "member", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("異常系: other issuer", func(t *testing.T) {
		token, err := jwt.NewService("secret", "someone-else").GenerateToken(userID, "member", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("異常系: missing expiry", func(t *testing.T) {
		raw := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
			UserID:           userID,
			Role:             "member",
			RegisteredClaims: gojwt.RegisteredClaims{Issuer: "identity"},
		})
		token, err := raw.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("異常系: nil user id", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.Nil, "member", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("異常系: garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
