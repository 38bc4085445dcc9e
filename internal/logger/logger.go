package logger

import (
	"io"
	"log/slog"

	"github.com/jwebster45206/wumpus-hunt/internal/config"
)

// Setup configures a slog logger based on environment. Production
// logs JSON; development logs text. The writer is injectable because
// the console binary owns stdout for the TUI.
func Setup(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithError adds error context to a logger.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
