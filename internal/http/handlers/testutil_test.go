package handlers_test

import (
	"io"
	"log/slog"
)

// shared across the handler tests; discards everything
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
