package observability

import (
	"log/slog"
	"os"

	"github.com/hangarline/avwx-etl/internal/config"
)

// NewLogger builds the service logger from config: LOG_LEVEL selects
// the threshold, LOG_FORMAT selects json (default) or text handlers.
// Unrecognized values fall back to info/json.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
