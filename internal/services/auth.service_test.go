package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"globeswap/config"
	"globeswap/internal/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(ttlHours int) *AuthService {
	cfg := config.Config{
		SessionSecret:   strings.Repeat("k", config.MinSessionSecretLength),
		SessionTTLHours: ttlHours,
	}
	return NewAuthService(cfg, nil).WithBcryptCost(bcrypt.MinCost)
}

func TestAuthService_HashAndCheckPassword(t *testing.T) {
	service := newTestAuthService(1)

	hash, err := service.HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, service.CheckPassword(hash, "correct horse"))
	assert.False(t, service.CheckPassword(hash, "wrong horse"))
	assert.False(t, service.CheckPassword("not-a-hash", "correct horse"))
}

func TestAuthService_SessionRoundTrip(t *testing.T) {
	service := newTestAuthService(1)
	ctx := context.Background()

	session, err := service.IssueSession(ctx, 42, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.Token)

	parsed, err := service.ParseSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), parsed.UserID)
	assert.Equal(t, uint(3), parsed.Version)
	assert.Equal(t, session.ID, parsed.ID)
	assert.WithinDuration(t, session.ExpiresAt, parsed.ExpiresAt, time.Second)
}

func TestAuthService_ParseSession_Rejects(t *testing.T) {
	service := newTestAuthService(1)
	ctx := context.Background()

	other := newTestAuthService(1)
	other.secret = []byte(strings.Repeat("x", config.MinSessionSecretLength))
	foreign, err := other.IssueSession(ctx, 7, 0)
	require.NoError(t, err)

	expiredClaims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired",
			Subject:   "7",
			Issuer:    SESSION_ISSUER,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).
		SignedString(service.secret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", foreign.Token},
		{"expired", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ParseSession(ctx, tt.token)
			assert.True(t, errors.Is(err, types.ErrAuthentication))
		})
	}
}

func TestAuthService_RevokeSessionWithoutCache(t *testing.T) {
	service := newTestAuthService(1)

	assert.NoError(t, service.RevokeSession(context.Background(), "missing"))
}
