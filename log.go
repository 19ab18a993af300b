package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// logConfig controls basic logger behaviour.
type logConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// logConfigFromEnv reads LOG_LEVEL and LOG_FORMAT, defaulting to a
// human-readable text handler at info level.
func logConfigFromEnv() logConfig {
	return logConfig{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	}
}

func newLogger(w io.Writer, cfg logConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
