package jwt

import (
	"testing"

	"github.com/cmlabs-hris/vacay-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService("secret", "one day")
	assert.Error(t, err)
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService(t)

	tokenString, expiresAt, err := svc.GenerateAccessToken("u1", "eve@example.com", "c1", user.RoleManager)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims := token.PrivateClaims()
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "c1", claims["company_id"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestSSEToken(t *testing.T) {
	svc := newTestService(t)

	tokenString, expiresIn, err := svc.GenerateSSEToken("u1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestValidateSSEToken_RejectsOtherTokens(t *testing.T) {
	svc := newTestService(t)

	access, _, err := svc.GenerateAccessToken("u1", "eve@example.com", "c1", user.RoleEmployee)
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)

	other, err := NewJWTService("another-secret", "1h")
	require.NoError(t, err)
	foreign, _, err := other.GenerateSSEToken("u1")
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(foreign)
	assert.Error(t, err)

	_, err = svc.ValidateSSEToken("not-a-token")
	assert.Error(t, err)
}
