package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Fields carries structured context for a log entry.
type Fields map[string]interface{}

var (
	mu       sync.RWMutex
	output   io.Writer = os.Stderr
	minLevel           = slog.LevelInfo
)

// Configure sets the destination and minimum level for loggers created afterwards.
func Configure(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()

	if w != nil {
		output = w
	}
	minLevel = ParseLevel(level)
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is a component-scoped structured logger.
type Logger struct {
	component string
	log       *slog.Logger
}

// NewLogger creates a logger tagged with the given component name.
func NewLogger(component string) *Logger {
	mu.RLock()
	w, level := output, minLevel
	mu.RUnlock()

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{
		component: component,
		log:       slog.New(handler).With("component", component),
	}
}

func (l *Logger) Debug(msg string, fields ...Fields) {
	l.emit(slog.LevelDebug, msg, fields)
}

func (l *Logger) Info(msg string, fields ...Fields) {
	l.emit(slog.LevelInfo, msg, fields)
}

func (l *Logger) Warn(msg string, fields ...Fields) {
	l.emit(slog.LevelWarn, msg, fields)
}

func (l *Logger) Error(msg string, fields ...Fields) {
	l.emit(slog.LevelError, msg, fields)
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, fields ...Fields) {
	l.emit(slog.LevelError, msg, fields)
	os.Exit(1)
}

func (l *Logger) emit(level slog.Level, msg string, fields []Fields) {
	var attrs []any
	for _, f := range fields {
		for k, v := range f {
			attrs = append(attrs, k, v)
		}
	}
	l.log.Log(context.Background(), level, msg, attrs...)
}
