package logger

import (
	"log/slog"
	"os"
)

// New builds the service-wide slog.Logger: JSON records on stdout, Info level.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler)
}
