package observability

import (
	"log/slog"
	"os"
)

// SetupLogging installs a JSON slog handler as the default logger.
// level is one of "debug", "info", "warn", "error"; anything else
// falls back to info.
func SetupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}
