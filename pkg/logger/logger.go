package logger

import (
	"log/slog"
	"os"
)

// Log is never nil; packages may log before Init runs (e.g. in tests).
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init configures the JSON handler for production-ready logging.
func Init() {
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
