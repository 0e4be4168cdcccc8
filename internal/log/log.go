// Package log provides structured logging for sword-rain
// It wraps slog with a process-wide logger configured once at startup
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// Options configures the global logger
type Options struct {
	Level  string    // debug, info, warn, error
	Output io.Writer // nil means stdout
	JSON   bool      // JSON handler instead of text
}

// ParseLevel maps a level name to slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// Init initializes the global logger at the given level on stdout
// JSON output when SWORDRAIN_ENV=production
func Init(level string) {
	Setup(Options{Level: level, JSON: os.Getenv("SWORDRAIN_ENV") == "production"})
}

// Setup replaces the global logger and slog's default
// Unknown levels fall back to info
func Setup(o Options) *slog.Logger {
	lvl, _ := ParseLevel(o.Level)
	out := o.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var l *slog.Logger
	if o.JSON {
		l = slog.New(slog.NewJSONHandler(out, opts))
	} else {
		l = slog.New(slog.NewTextHandler(out, opts))
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	slog.SetDefault(l)
	return l
}

// L returns the global logger instance
func L() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		return Setup(Options{Level: "info"})
	}
	return l
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

// Discard returns a logger that drops everything, for tests and silent services
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
