package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
)

func TestUserStore_CreateUser(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	user, err := store.CreateUser(ctx, "Alice", "a@x.com", "111", "hash-a")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "111", user.NationalID)
	assert.Equal(t, "hash-a", user.PasswordHash)
}

func TestUserStore_UniquenessViolationsLeaveStoreUnchanged(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		nationalID string
		wantErr    error
	}{
		{
			name:       "duplicate email",
			email:      "a@x.com",
			nationalID: "222",
			wantErr:    domain.ErrDuplicateEmail,
		},
		{
			name:       "duplicate national id",
			email:      "b@x.com",
			nationalID: "111",
			wantErr:    domain.ErrDuplicateNationalID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewUserStore()
			_, err := store.CreateUser(ctx, "Alice", "a@x.com", "111", "hash-a")
			require.NoError(t, err)

			_, err = store.CreateUser(ctx, "Bob", tt.email, tt.nationalID, "hash-b")
			assert.ErrorIs(t, err, tt.wantErr)

			users, err := store.ListAll(ctx)
			require.NoError(t, err)
			assert.Len(t, users, 1)
			assert.Equal(t, "a@x.com", users[0].Email)
		})
	}
}

func TestUserStore_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	_, err := store.CreateUser(ctx, "Alice", "a@x.com", "111", "hash-a")
	require.NoError(t, err)

	// Email хранится и сравнивается как есть
	_, err = store.CreateUser(ctx, "Bob", "A@x.com", "222", "hash-b")
	require.NoError(t, err)

	users, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserStore_Find(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	created, err := store.CreateUser(ctx, "Alice", "a@x.com", "111", "hash-a")
	require.NoError(t, err)

	byEmail, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byNID, err := store.FindByNationalID(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byNID.ID)

	byID, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)

	_, err = store.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserStore_ListAllStripsPasswordHash(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	_, err := store.CreateUser(ctx, "Alice", "a@x.com", "111", "hash-a")
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, "Bob", "b@x.com", "222", "hash-b")
	require.NoError(t, err)

	users, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	// PublicUser вообще не содержит поля хэша; проверяем порядок вставки
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, "b@x.com", users[1].Email)
}

func TestUserStore_ReturnedCopyDoesNotAliasTable(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	created, err := store.CreateUser(ctx, "Alice", "a@x.com", "111", "hash-a")
	require.NoError(t, err)

	created.Name = "Mallory"

	again, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
}

func TestUserStore_Reset(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	_, err := store.CreateUser(ctx, "Alice", "a@x.com", "111", "hash-a")
	require.NoError(t, err)

	store.Reset()

	users, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	// После сброса email снова свободен
	_, err = store.CreateUser(ctx, "Alice", "a@x.com", "111", "hash-a")
	assert.NoError(t, err)
}

func TestUserStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewUserStore()
	_, err := store.CreateUser(ctx, "Alice", "a@x.com", "111", "hash-a")
	assert.Error(t, err)
}
