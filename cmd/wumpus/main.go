package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/wumpus-hunt/internal/config"
	"github.com/jwebster45206/wumpus-hunt/internal/logger"
	"github.com/jwebster45206/wumpus-hunt/internal/services"
	"github.com/jwebster45206/wumpus-hunt/internal/storage"
	"github.com/jwebster45206/wumpus-hunt/pkg/game"
)

const logFileName = "wumpus.log"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Startup error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Hint: export ANTHROPIC_API_KEY (or VENICE_API_KEY with LLM_PROVIDER=venice) before starting.")
		os.Exit(1)
	}

	// The TUI owns stdout, so logs go to a file.
	log := logger.Setup(cfg, openLogWriter())

	log.Info("Starting wumpus-hunt",
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName,
		"save_backend", cfg.SaveBackend)

	var llmService services.LLMService
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
	case config.ProviderVenice:
		llmService = services.NewVeniceService(cfg.VeniceAPIKey, cfg.ModelName, log)
	}

	store, err := openStorage(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Storage error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	gs, err := loadOrNewGame(cfg, store, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start game: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(cfg, llmService, store, gs, log),
		tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func openLogWriter() io.Writer {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}

func openStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.SaveBackend {
	case config.BackendRedis:
		store := storage.NewRedisStore(cfg.RedisURL, log)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisURL, err)
		}
		return store, nil
	default:
		return storage.NewFileStore(cfg.SaveFile, log), nil
	}
}

// loadOrNewGame offers to resume a saved hunt before the TUI starts.
func loadOrNewGame(cfg *config.Config, store storage.Storage, log *slog.Logger) (*game.GameState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	saved, err := store.LoadGameState(ctx)
	if err != nil {
		log.Warn("Could not load saved game", "error", err)
	}
	if saved != nil && !saved.Outcome.Terminal() {
		fmt.Print("A saved hunt was found. Resume it? [y/N]: ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			saved.AttachRand(nil)
			log.Info("Resumed saved game", "uuid", saved.ID, "turns", saved.Turns)
			return saved, nil
		}
	}

	return newGame(cfg)
}

func newGame(cfg *config.Config) (*game.GameState, error) {
	cave := game.DefaultCave()
	wumpusRoom := game.DefaultWumpusRoom
	if cfg.CaveFile != "" {
		loaded, err := game.LoadCave(cfg.CaveFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load cave file: %w", err)
		}
		cave = loaded
		wumpusRoom = pickWumpusRoom(cave)
	}
	return game.NewGameState(cfg.PlayerName, cave, wumpusRoom, nil)
}

// pickWumpusRoom places the wumpus in the highest-numbered room that
// is not a pit, so custom caves get a sensible default.
func pickWumpusRoom(cave game.Cave) int {
	best := -1
	for id, room := range cave {
		if room.HasHazard(game.HazardPit) {
			continue
		}
		if id > best {
			best = id
		}
	}
	return best
}
