package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyankaj04/Gymlogs/internal/apiclient"
	"github.com/priyankaj04/Gymlogs/internal/kv"
	"github.com/priyankaj04/Gymlogs/internal/models"
)

func TestStoreEmpty(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := store.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestStoreSaveAndClear(t *testing.T) {
	backing := kv.NewMemoryStore()
	store := NewStore(backing)
	ctx := context.Background()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	user := models.User{ID: "u1", Email: "a@b.co", Name: "A", CreatedAt: created, UpdatedAt: created}
	require.NoError(t, store.Save(ctx, "tok", user))

	raw, err := backing.Get(ctx, UserKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"createdAt"`)

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	cached, err := store.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, user, *cached)

	require.NoError(t, store.Clear(ctx))
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	cached, err = store.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestStoreReportsUnreadableUser(t *testing.T) {
	backing := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, backing.Set(ctx, UserKey, []byte("{broken")))

	user, err := NewStore(backing).User(ctx)
	require.ErrorIs(t, err, ErrUnreadableUser)
	assert.Nil(t, user)
}

func TestUnreadableUserEndsSession(t *testing.T) {
	backing := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, backing.Set(ctx, TokenKey, []byte("tok")))
	require.NoError(t, backing.Set(ctx, UserKey, []byte("{broken")))

	auth := apiclient.NewAuthClient(apiclient.New("http://127.0.0.1:1"), NewStore(backing))
	user, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, auth.IsAuthenticated(ctx))

	_, err = backing.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
	_, err = backing.Get(ctx, UserKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
