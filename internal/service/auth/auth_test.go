package auth

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/models"
	"TUReviews/internal/storage/memory"
	"TUReviews/pkg/logger"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, secret string, accessTTL time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(secret, "tu-reviews", accessTTL, time.Hour)
	require.NoError(t, err)
	return m
}

func newAuth(t *testing.T) *AuthService {
	store := memory.New()
	return NewAuthService(logger.Discard(), newManager(t, "test-secret", 15*time.Minute), store, store)
}

func register(t *testing.T, s *AuthService) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.User{
		Username: "somsri",
		Password: "hunter22",
		Email:    "somsri@dome.tu.ac.th",
		Roles:    []string{models.ModeratorRole},
	})
	require.NoError(t, err)
	return u
}

func TestCreateUser(t *testing.T) {
	s := newAuth(t)
	u := register(t, s)

	assert.NotEqual(t, "hunter22", u.Password)
	assert.Equal(t, []string{models.StudentRole}, u.Roles)

	_, err := s.CreateUser(context.Background(), models.User{Username: "x", Password: "123", Email: "x@y"})
	assert.ErrorIs(t, err, app_errors.ErrIncorrectPassword)
}

func TestLoginAndAccessClaims(t *testing.T) {
	s := newAuth(t)
	u := register(t, s)
	ctx := context.Background()

	_, _, err := s.LoginUser(ctx, "somsri", "wrong-password")
	assert.ErrorIs(t, err, app_errors.ErrIncorrectPassword)
	_, _, err = s.LoginUser(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, app_errors.ErrUserNotFound)

	access, refresh, err := s.LoginUser(ctx, "somsri", "hunter22")
	require.NoError(t, err)

	parsed, err := s.ParseToken(ctx, access)
	require.NoError(t, err)
	assert.True(t, s.IsAccessToken(ctx, parsed))

	id, roles, err := s.AccessClaims(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, []string{models.StudentRole}, roles)

	_, _, err = s.AccessClaims(ctx, refresh)
	assert.Error(t, err)
}

func TestRefreshRotatesTokens(t *testing.T) {
	s := newAuth(t)
	register(t, s)
	ctx := context.Background()

	_, refresh, err := s.LoginUser(ctx, "somsri", "hunter22")
	require.NoError(t, err)

	pair, err := s.RefreshTokens(ctx, refresh)
	require.NoError(t, err)
	_, newRefresh := pair.Raw()
	assert.NotEqual(t, refresh, newRefresh)

	_, err = s.RefreshTokens(ctx, refresh)
	assert.ErrorIs(t, err, app_errors.ErrTokenNotFound)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	s := newAuth(t)
	register(t, s)
	access, _, err := s.LoginUser(context.Background(), "somsri", "hunter22")
	require.NoError(t, err)

	_, err = s.RefreshTokens(context.Background(), access)
	assert.ErrorIs(t, err, app_errors.ErrTokenNotFound)
}

func TestExpiredToken(t *testing.T) {
	jwtm := newManager(t, "k", time.Minute)
	pair, err := jwtm.GenerateTokenPair(uuid.New(), nil)
	require.NoError(t, err)

	jwtm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = jwtm.Parse(pair.AccessToken.Raw)
	assert.ErrorIs(t, err, app_errors.ErrTokenExpired)
	_, err = jwtm.AccessClaims(pair.AccessToken.Raw)
	assert.ErrorIs(t, err, app_errors.ErrTokenExpired)
}

func TestForeignSignature(t *testing.T) {
	a := newManager(t, "one", time.Minute)
	b := newManager(t, "two", time.Minute)
	pair, err := a.GenerateTokenPair(uuid.New(), nil)
	require.NoError(t, err)

	_, err = b.Parse(pair.AccessToken.Raw)
	assert.Error(t, err)
}

func TestEmptySecretRejected(t *testing.T) {
	m, err := NewJWTManager("", "tu-reviews", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
	assert.Nil(t, m)
}

func TestEmptyKeyTokenRejected(t *testing.T) {
	s := newAuth(t)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessTokenClaims{
		TokenType: AccessTokenType,
		UserID:    uuid.New(),
		Roles:     []string{models.ModeratorRole},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte(""))
	if err != nil {
		t.Skipf("library refuses empty hmac keys: %v", err)
	}

	_, _, err = s.AccessClaims(context.Background(), forged)
	assert.Error(t, err)
}
