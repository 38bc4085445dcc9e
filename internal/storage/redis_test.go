package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store := NewRedisStore(mr.Addr(), testLogger())
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestRedisStore_SaveLoadRoundTrip(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	gs := newTestGame(t)
	_, err := gs.Move("east")
	require.NoError(t, err)

	require.NoError(t, store.SaveGameState(ctx, gs))

	loaded, err := store.LoadGameState(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, gs.ID, loaded.ID)
	assert.Equal(t, gs.Cave, loaded.Cave)
	assert.Equal(t, gs.Players, loaded.Players)
	assert.Equal(t, gs.WumpusRoom, loaded.WumpusRoom)
}

func TestRedisStore_LoadMissingReturnsNil(t *testing.T) {
	store, _ := setupTestRedis(t)

	loaded, err := store.LoadGameState(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveOverwrites(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	gs := newTestGame(t)
	require.NoError(t, store.SaveGameState(ctx, gs))

	_, err := gs.Move("east")
	require.NoError(t, err)
	require.NoError(t, store.SaveGameState(ctx, gs))

	loaded, err := store.LoadGameState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Hunter().Room)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.SaveGameState(ctx, newTestGame(t)))
	require.NoError(t, store.DeleteGameState(ctx))

	loaded, err := store.LoadGameState(ctx)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_LoadCorruptValue(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(saveSlotKey, "{not json"))
	_, err := store.LoadGameState(context.Background())
	assert.Error(t, err)
}
