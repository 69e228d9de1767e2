package auth

import (
	"testing"
	"time"

	"showreel/config"
	"showreel/internal/domain/entity"
	domainerrors "showreel/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: ttl},
	}
	cfg.SecretKey.JWT = "test_jwt_secret_key_very_long_for_testing"

	return cfg
}

func newTestUser() *entity.User {
	return &entity.User{
		ID:    uuid.New(),
		Email: "test@example.com",
		Name:  "Test User",
		Role:  entity.RoleUser,
	}
}

func TestJWTService_GenerateAndVerifyToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig(time.Hour))
	require.NoError(t, err)

	user := newTestUser()
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, entity.RoleUser.String(), claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig(time.Hour))
	require.NoError(t, err)

	claims, err := svc.VerifyToken("clearly-not-a-jwt-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_ForgedSignature(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig(time.Hour))
	require.NoError(t, err)

	otherCfg := newTestTokenConfig(time.Hour)
	otherCfg.SecretKey.JWT = "a_completely_different_signing_secret"
	otherSvc, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := otherSvc.GenerateToken(newTestUser())
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig(-time.Minute))
	require.NoError(t, err)

	token, err := svc.GenerateToken(newTestUser())
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_MissingSecret(t *testing.T) {
	cfg := newTestTokenConfig(time.Hour)
	cfg.SecretKey.JWT = ""

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "signing secret")
}

func TestJWTService_TokenTTL(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig(7 * 24 * time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, svc.TokenTTL())
}
