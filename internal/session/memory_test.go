package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teledetect-platform/internal/model"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "token:42", Key("42"))
}

func TestMemoryStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, model.ErrNoSession)

	require.NoError(t, store.Put(ctx, "user-1", "token-a", time.Minute))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "token-a", got)

	require.NoError(t, store.Delete(ctx, "user-1"))

	_, err = store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, model.ErrNoSession)
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "user-1", "first", time.Minute))
	require.NoError(t, store.Put(ctx, "user-1", "second", time.Minute))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestMemoryStore_ExpiryIsHonored(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "user-1", "token-a", time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, model.ErrNoSession)
}

func TestMemoryStore_DeleteAbsentIsIdempotent(t *testing.T) {
	store := NewMemoryStore()

	assert.NoError(t, store.Delete(context.Background(), "never-existed"))
	assert.NoError(t, store.Delete(context.Background(), "never-existed"))
}
