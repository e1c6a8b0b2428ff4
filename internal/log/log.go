package log

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger shared by the server and the pipeline.
func NewLogger() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}
