package logger

import (
	"fmt"
	"io"
	"log/slog"
)

// New builds a logger writing to w. level is debug, info, warn or error;
// format is json or console.
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	// Parse log level
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
	}

	var handler slog.Handler
	switch format {
	case "console":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	return slog.New(handler), nil
}

// Setup installs the logger from New as the process default.
func Setup(level, format string, w io.Writer) error {
	l, err := New(level, format, w)
	if err != nil {
		return err
	}
	slog.SetDefault(l)
	return nil
}
