package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/wumpus-hunt/pkg/game"
)

// saveSlotKey is the single save slot. One local player, one save.
const saveSlotKey = "gamestate:current"

// RedisStore persists the save slot in Redis.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Storage = (*RedisStore)(nil)

func NewRedisStore(redisURL string, logger *slog.Logger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStore{
		client: rdb,
		logger: logger,
	}
}

func (r *RedisStore) SaveGameState(ctx context.Context, gs *game.GameState) error {
	data, err := json.Marshal(gs)
	if err != nil {
		r.logger.Error("Failed to marshal gamestate", "uuid", gs.ID, "error", err)
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	cmd := r.client.Set(ctx, saveSlotKey, string(data), 0)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save gamestate", "uuid", gs.ID, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}

	return nil
}

func (r *RedisStore) LoadGameState(ctx context.Context) (*game.GameState, error) {
	cmd := r.client.Get(ctx, saveSlotKey)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Debug("No saved gamestate in redis")
			return nil, nil
		}
		r.logger.Error("Failed to load gamestate", "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}

	var gs game.GameState
	if err := json.Unmarshal([]byte(cmd.Val()), &gs); err != nil {
		r.logger.Error("Failed to unmarshal gamestate", "error", err)
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}

	if err := gs.Validate(); err != nil {
		return nil, fmt.Errorf("saved gamestate is corrupt: %w", err)
	}

	return &gs, nil
}

func (r *RedisStore) DeleteGameState(ctx context.Context) error {
	cmd := r.client.Del(ctx, saveSlotKey)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to delete gamestate", "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}
