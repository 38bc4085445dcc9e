package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderVenice    = "venice"

	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Environment string
	LogLevel    slog.Level

	LLMProvider     string
	ModelName       string
	AnthropicAPIKey string
	VeniceAPIKey    string

	SaveBackend string
	SaveFile    string
	RedisURL    string

	PlayerName string
	CaveFile   string // optional custom cave map
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", ProviderAnthropic)),
		ModelName:       getEnv("MODEL_NAME", "claude-sonnet-4-20250514"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		VeniceAPIKey:    os.Getenv("VENICE_API_KEY"),
		SaveBackend:     strings.ToLower(getEnv("SAVE_BACKEND", BackendFile)),
		SaveFile:        getEnv("SAVE_FILE", "wumpus_save.json"),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		PlayerName:      getEnv("PLAYER_NAME", "Hunter"),
		CaveFile:        os.Getenv("CAVE_FILE"),
	}

	switch cfg.LLMProvider {
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic; set it to your API key")
		}
	case ProviderVenice:
		if cfg.VeniceAPIKey == "" {
			return nil, fmt.Errorf("VENICE_API_KEY is required when LLM_PROVIDER=venice; set it to your API key")
		}
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER %q (supported: anthropic, venice)", cfg.LLMProvider)
	}

	switch cfg.SaveBackend {
	case BackendFile, BackendRedis:
	default:
		return nil, fmt.Errorf("invalid SAVE_BACKEND %q (supported: file, redis)", cfg.SaveBackend)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
