package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger on stdout as the process default.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
