// Package obs contains observability utilities such as logging.
package obs

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the global structured logger used by the server.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// InitLogger initializes the global Logger with a JSON handler at info level.
func InitLogger() {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	Logger = slog.New(h)
}
