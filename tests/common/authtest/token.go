//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"cargo-backoffice/internal/domain/staff"
	"cargo-backoffice/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type TokenHelper struct {
	cfg config.JWTConfig
}

func NewTokenHelper(cfg config.JWTConfig) *TokenHelper {
	return &TokenHelper{cfg: cfg}
}

// MintToken signs a staff access token the auth middleware will accept.
func (h *TokenHelper) MintToken(t *testing.T, staffID uuid.UUID, role staff.Role) string {
	t.Helper()
	return h.mint(t, staffID, role, time.Now().Add(time.Hour))
}

// MintExpiredToken signs a token that is already past its expiry.
func (h *TokenHelper) MintExpiredToken(t *testing.T, staffID uuid.UUID, role staff.Role) string {
	t.Helper()
	return h.mint(t, staffID, role, time.Now().Add(-time.Hour))
}

func (h *TokenHelper) mint(t *testing.T, staffID uuid.UUID, role staff.Role, expiry time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  staffID.String(),
		"role": string(role),
		"iat":  time.Now().Add(-time.Minute).Unix(),
		"exp":  expiry.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err)
	return signed
}
