package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger instance. It discards all output until Init enables it.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo
	JSON    bool       // Use the JSON handler instead of the text handler
}

// Init configures logging. Call from main() before any log calls.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(w, hopts))
		return
	}
	L = slog.New(slog.NewTextHandler(w, hopts))
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }
