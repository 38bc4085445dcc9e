package storage

import (
	"context"

	"github.com/jwebster45206/wumpus-hunt/pkg/game"
)

// Storage persists the whole GameState in a single save slot. Saves
// overwrite the previous state; Load returns (nil, nil) when no save
// exists.
type Storage interface {
	SaveGameState(ctx context.Context, gs *game.GameState) error
	LoadGameState(ctx context.Context) (*game.GameState, error)
	DeleteGameState(ctx context.Context) error

	// Ping tests the backing store connection
	Ping(ctx context.Context) error

	// Close closes the backing store connection
	Close() error
}
