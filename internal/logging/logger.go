package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Log levels accepted by NewLogger and the logs command.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogFileName is the file created inside the log directory.
const LogFileName = "debug.log"

// Logger writes JSON lines through log/slog. Child loggers made with the
// With* methods share the parent's output, so closing any of them closes
// the file for all.
type Logger struct {
	logger *slog.Logger
	file   *rotatingFile
	mu     *sync.Mutex
}

// NewLogger returns a Logger appending to {dir}/debug.log, rotating it once
// it grows past DefaultMaxSize. An empty dir logs to stderr, which the
// browser never does since stderr shares the alt screen.
//
// Unknown levels fall back to INFO.
func NewLogger(dir string, level string) (*Logger, error) {
	if dir == "" {
		return newWithWriter(os.Stderr, nil, level), nil
	}
	file, err := openRotating(filepath.Join(dir, LogFileName), DefaultMaxSize, DefaultMaxBackups)
	if err != nil {
		return nil, err
	}
	return newWithWriter(file, file, level), nil
}

// NewWriterLogger creates a Logger writing JSON lines to w.
func NewWriterLogger(w io.Writer, level string) *Logger {
	return newWithWriter(w, nil, level)
}

func newWithWriter(w io.Writer, file *rotatingFile, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(level)})
	return &Logger{logger: slog.New(handler), file: file, mu: new(sync.Mutex)}
}

// NopLogger returns a Logger that discards everything.
func NopLogger() *Logger {
	return &Logger{logger: slog.New(slog.NewJSONHandler(io.Discard, nil)), mu: new(sync.Mutex)}
}

func slogLevel(level string) slog.Level {
	switch ParseLevel(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ParseLevel normalizes a level name, returning LevelInfo for anything
// unrecognized.
func ParseLevel(level string) string {
	switch l := strings.ToUpper(strings.TrimSpace(level)); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l
	}
	return LevelInfo
}

// ValidLevels returns the level names in increasing severity.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// WithComponent tags entries with the UI component that produced them
// ("matchcase", "codeblock", "tabs", ...).
func (l *Logger) WithComponent(name string) *Logger {
	return l.With("component", name)
}

// WithSlug tags entries with the catalog page on screen.
func (l *Logger) WithSlug(slug string) *Logger {
	return l.With("slug", slug)
}

// With returns a child Logger carrying extra key-value attributes.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || len(args) == 0 {
		return l
	}
	return &Logger{logger: l.logger.With(args...), file: l.file, mu: l.mu}
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *Logger) log(level slog.Level, msg string, args []any) {
	if l == nil {
		return
	}
	l.logger.Log(context.Background(), level, msg, args...)
}

// Close flushes and closes the log file. It is a no-op for loggers without
// one, and safe to call twice.
func (l *Logger) Close() error {
	if l == nil || l.mu == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
