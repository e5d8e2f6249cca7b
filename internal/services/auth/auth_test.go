package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/jwt"
	"github.com/magabrotheeeer/car-rental-service/internal/metrics"
	"github.com/magabrotheeeer/car-rental-service/internal/storage/memstore"
)

const testSecret = "test-secret-key"

func newAuthService(ttl time.Duration) (*AuthService, *memstore.UserStore) {
	users := memstore.NewUserStore()
	maker := jwt.NewJWTMaker(testSecret, ttl)
	return NewAuthService(users, maker, metrics.Noop{}), users
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(time.Hour)

	user, err := svc.Register(ctx, "Anna", "anna@example.com", "AB123456", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	stored, err := users.FindByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(time.Hour)

	_, err := svc.Register(ctx, "Anna", "anna@example.com", "AB123456", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "anna@example.com", "CD654321", "secret123")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(time.Hour)

	registered, err := svc.Register(ctx, "Anna", "anna@example.com", "AB123456", "secret123")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "anna@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthService_Login_BadCredentialsIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(time.Hour)

	_, err := svc.Register(ctx, "Anna", "anna@example.com", "AB123456", "secret123")
	require.NoError(t, err)

	// Неверный пароль и несуществующий аккаунт снаружи неразличимы
	_, _, errWrongPassword := svc.Login(ctx, "anna@example.com", "wrong")
	_, _, errUnknownEmail := svc.Login(ctx, "nobody@example.com", "secret123")

	assert.ErrorIs(t, errWrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestAuthService_ResolveToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(time.Hour)

	registered, err := svc.Register(ctx, "Anna", "anna@example.com", "AB123456", "secret123")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "anna@example.com", "secret123")
	require.NoError(t, err)

	user, err := svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthService_ResolveToken_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(time.Hour)

	_, err := svc.Register(ctx, "Anna", "anna@example.com", "AB123456", "secret123")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "anna@example.com", "secret123")
	require.NoError(t, err)

	foreignMaker := jwt.NewJWTMaker("another-secret", time.Hour)
	foreign, err := foreignMaker.GenerateToken("any-id")
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "wrong signing key", token: foreign},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ResolveToken(ctx, tc.token)
			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}

	// Валидный токен пользователя, которого больше нет в хранилище
	other, _ := newAuthService(time.Hour)
	_, err = other.ResolveToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_ResolveToken_Expired(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(-time.Hour)

	_, err := svc.Register(ctx, "Anna", "anna@example.com", "AB123456", "secret123")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "anna@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.ResolveToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_GetUserByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(time.Hour)

	registered, err := svc.Register(ctx, "Anna", "anna@example.com", "AB123456", "secret123")
	require.NoError(t, err)

	pub, err := svc.GetUserByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, pub.Email)

	_, err = svc.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthService_ListUsers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(time.Hour)

	_, err := svc.Register(ctx, "Anna", "anna@example.com", "AB123456", "secret123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Boris", "boris@example.com", "CD654321", "secret123")
	require.NoError(t, err)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
