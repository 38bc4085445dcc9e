package storage

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/wumpus-hunt/pkg/game"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func newTestGame(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState("Hunter", game.DefaultCave(), game.DefaultWumpusRoom, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return gs
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wumpus_save.json")
	store := NewFileStore(path, testLogger())
	ctx := context.Background()

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
	assert.Equal(t, gs.Outcome, loaded.Outcome)
}

func TestFileStore_SaveIsPrettyPrintedAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wumpus_save.json")
	store := NewFileStore(path, testLogger())
	ctx := context.Background()

	gs := newTestGame(t)
	require.NoError(t, store.SaveGameState(ctx, gs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ", "save file must be indented")

	// A second save overwrites the first.
	_, err = gs.Move("east")
	require.NoError(t, err)
	require.NoError(t, store.SaveGameState(ctx, gs))

	loaded, err := store.LoadGameState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Hunter().Room)
}

func TestFileStore_LoadMissingReturnsNil(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nothing.json"), testLogger())

	loaded, err := store.LoadGameState(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wumpus_save.json")
	store := NewFileStore(path, testLogger())

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := store.LoadGameState(context.Background())
	assert.Error(t, err)
}

func TestFileStore_LoadRejectsDanglingRooms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wumpus_save.json")
	store := NewFileStore(path, testLogger())
	ctx := context.Background()

	gs := newTestGame(t)
	gs.WumpusRoom = 99
	require.NoError(t, store.SaveGameState(ctx, gs))

	_, err := store.LoadGameState(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestFileStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wumpus_save.json")
	store := NewFileStore(path, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveGameState(ctx, newTestGame(t)))
	require.NoError(t, store.DeleteGameState(ctx))

	loaded, err := store.LoadGameState(ctx)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting again is not an error.
	assert.NoError(t, store.DeleteGameState(ctx))
}
