package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mveselov/fitflow/internal/domain"
)

const testJWTSecret = "test-secret-key"

func newAuthFixture() (*fakeUserRepo, AuthService) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, testJWTSecret, time.Hour)
	return userRepo, svc
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture()

	user, err := svc.Register(ctx, "Anna", "anna@example.com", "password123", domain.RoleAthlete, "Europe/Berlin")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, domain.RoleAthlete, user.Role)
	assert.Equal(t, "Europe/Berlin", user.Timezone)
	assert.Empty(t, user.PasswordHash, "hash must never leave the service")
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture()

	_, err := svc.Register(ctx, "", "x@example.com", "pw", domain.RoleCoach, "")
	assert.Error(t, err)

	_, err = svc.Register(ctx, "X", "x@example.com", "pw", domain.Role("admin"), "")
	assert.Error(t, err)

	_, err = svc.Register(ctx, "X", "x@example.com", "pw", domain.RoleCoach, "Nowhere/Special")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture()

	_, err := svc.Register(ctx, "Anna", "anna@example.com", "password123", domain.RoleAthlete, "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Other", "anna@example.com", "password456", domain.RoleCoach, "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture()

	_, err := svc.Register(ctx, "Anna", "anna@example.com", "password123", domain.RoleCoach, "")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "anna@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Empty(t, user.PasswordHash)

	// The token must carry the user's ID and role under our claim keys.
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleCoach, claims.Role)
	assert.Equal(t, "fitflow", claims.Issuer)

	_, _, err = svc.Login(ctx, "anna@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
