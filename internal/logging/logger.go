package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	SetupWriter(os.Stdout, slog.LevelInfo)
}

// SetupWriter is Setup with an explicit destination and level; the seed CLI
// uses it for its --verbose flag.
func SetupWriter(w io.Writer, level slog.Level) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
