package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "LOG_LEVEL", "LLM_PROVIDER", "MODEL_NAME",
		"ANTHROPIC_API_KEY", "VENICE_API_KEY",
		"SAVE_BACKEND", "SAVE_FILE", "REDIS_URL", "PLAYER_NAME", "CAVE_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, ProviderAnthropic, cfg.LLMProvider)
	assert.Equal(t, BackendFile, cfg.SaveBackend)
	assert.Equal(t, "wumpus_save.json", cfg.SaveFile)
	assert.Equal(t, "Hunter", cfg.PlayerName)
}

func TestLoad_MissingAnthropicKeyIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestLoad_MissingVeniceKeyIsFatal(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "venice")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VENICE_API_KEY")
}

func TestLoad_VeniceProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Venice")
	t.Setenv("VENICE_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderVenice, cfg.LLMProvider)
}

func TestLoad_InvalidProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "skynet")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
}

func TestLoad_InvalidBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("SAVE_BACKEND", "tape")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAVE_BACKEND")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.input), "level %q", tt.input)
	}
}
