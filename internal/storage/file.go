package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/jwebster45206/wumpus-hunt/pkg/game"
)

// FileStore writes the save slot as a pretty-printed JSON document at
// a fixed path, overwriting any existing file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ Storage = (*FileStore)(nil)

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

func (f *FileStore) SaveGameState(ctx context.Context, gs *game.GameState) error {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		f.logger.Error("Failed to marshal gamestate", "error", err)
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		f.logger.Error("Failed to write save file", "path", f.path, "error", err)
		return fmt.Errorf("failed to write save file: %w", err)
	}

	f.logger.Debug("Gamestate saved", "path", f.path, "bytes", len(data))
	return nil
}

func (f *FileStore) LoadGameState(ctx context.Context) (*game.GameState, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Debug("No save file found", "path", f.path)
			return nil, nil
		}
		f.logger.Error("Failed to read save file", "path", f.path, "error", err)
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	var gs game.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		f.logger.Error("Failed to unmarshal gamestate", "path", f.path, "error", err)
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}

	if err := gs.Validate(); err != nil {
		return nil, fmt.Errorf("save file is corrupt: %w", err)
	}

	return &gs, nil
}

func (f *FileStore) DeleteGameState(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

func (f *FileStore) Ping(ctx context.Context) error {
	return nil
}

func (f *FileStore) Close() error {
	return nil
}
