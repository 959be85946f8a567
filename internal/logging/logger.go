package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON slog logger writing to w at the provided level. If the
// level string is invalid it defaults to info.
func New(w io.Writer, level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

// NewCLI builds a logger for the command-line apps. Logs go to stderr so
// command output on stdout stays machine-readable.
func NewCLI(level string) *slog.Logger {
	return New(os.Stderr, level)
}

// Discard returns a logger that drops all output. Useful for tests.
func Discard() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}
