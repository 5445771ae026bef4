package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns the application logger for the given environment.
// Production logs JSON, everything else logs text. The level comes from
// LOG_LEVEL (debug, info, warn, error; default info) and every record
// carries the service name so aggregated logs stay attributable.
func NewLogger(environment string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	service := os.Getenv("APP_NAME")
	if service == "" {
		service = "eventboard"
	}
	return slog.New(handler).With("service", service)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
