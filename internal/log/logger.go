// Package log scopes slog loggers per component and carries them through
// request contexts.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a slog.Logger scoped to one component. The component attribute
// is attached once, when the scope is created, not on every call.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Writer io.Writer
}

// DefaultConfig is the production setup: Info-level text lines on stdout.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Writer: os.Stdout,
	}
}

// New creates the root logger for a process.
func New(config Config) *Logger {
	w := config.Writer
	if w == nil {
		w = os.Stdout
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: config.Level})
	return &Logger{Logger: slog.New(handler)}
}

// With returns a logger with the given attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithComponent returns a logger whose lines carry the component attribute.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With(FieldComponent, component)}
}

// SetDefault installs the logger as the process-wide slog default.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}
