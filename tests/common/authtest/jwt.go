//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"court-reservation/internal/pkg/config"
	"court-reservation/internal/pkg/jwt"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity service would, for tests only.
type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret, cfg.Issuer)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role shared.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, string(role), time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role shared.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, string(role), -time.Minute)
	require.NoError(t, err)
	return token
}

// Member returns a fresh member id with a valid token.
func (h *JWTHelper) Member(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, h.GenerateToken(t, id, shared.RoleMember)
}

func (h *JWTHelper) Admin(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, h.GenerateToken(t, id, shared.RoleAdmin)
}
