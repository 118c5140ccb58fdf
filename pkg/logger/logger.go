package logger

import (
	"log/slog"
	"os"

	"nspsplit/pkg/config"
)

// GetLogger returns a text logger writing to stderr so log lines do not
// collide with the progress meter on stdout. The level comes from LOG_LEVEL.
func GetLogger() *slog.Logger {
	loggerOpts := slog.HandlerOptions{Level: levelFromEnv()}
	return slog.New(slog.NewTextHandler(os.Stderr, &loggerOpts))
}

func levelFromEnv() slog.Level {
	switch config.GetEnvString("LOG_LEVEL", "info") {
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
