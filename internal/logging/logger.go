package logging

import (
	"log/slog"
	"os"
)

// Setup installs the default JSON stdout logger. main swaps it for a
// MultiHandler once the database log handler exists; this early setup covers
// config and connection errors raised before that point.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
