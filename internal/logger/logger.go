// Package logger provides leveled logging for vhostsync.
//
// Log lines go to stderr, separate from the user-facing report that the
// output package prints to stdout, so `vhostsync scan --json` stays
// machine-readable with --verbose on.
//
// # Log Levels
//
// Four log levels are supported, in order of severity:
//   - Debug: directive matches, per-entry decisions
//   - Info: every file load, save, backup and unchanged write
//   - Warn: scan diagnostics for skipped files
//   - Error: failures that abort a record or a command
//
// Init(verbose) enables Debug and Info; otherwise only Warn and Error are
// shown.
//
// # Usage
//
//	logger.Info("save file: %s", path)
//	logger.WarnFields("skip file", logger.Fields{"file": path, "error": err})
//
// # Output Format
//
//	[LEVEL] YYYY-MM-DD HH:MM:SS message key=value
//	[INFO] 2026-02-03 10:30:45 backup file from=a.conf to=a.conf.bk_2026-02-03_103045
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields are key=value pairs appended to a log line, sorted by key.
type Fields map[string]interface{}

// String renders the fields as sorted key=value pairs.
func (f Fields) String() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, f[k]))
	}
	return strings.Join(parts, " ")
}

// Logger handles leveled logging with thread-safe output.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	now    func() time.Time
}

// New creates a Logger writing entries at or above level to w.
func New(w io.Writer, level Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{level: level, output: w, now: time.Now}
}

// Global logger instance. Default: only warnings and errors.
var std = New(os.Stderr, LevelWarn)

// Init initializes the global logger with the specified verbosity.
func Init(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelWarn)
	}
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// SetOutput sets the output destination for the global logger.
// A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.output = w
}

// GetLevel returns the current log level.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

// Enabled reports whether entries at level are written.
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

// write emits one entry; fields may be nil.
func (l *Logger) write(level Level, msg string, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	line := fmt.Sprintf("[%s] %s %s", level, l.now().Format("2006-01-02 15:04:05"), msg)
	if s := fields.String(); s != "" {
		line += " " + s
	}
	_, _ = fmt.Fprintln(l.output, line)
}

// Logf writes a formatted message at level.
func (l *Logger) Logf(level Level, format string, args ...interface{}) {
	l.write(level, fmt.Sprintf(format, args...), nil)
}

// LogFields writes msg with structured fields at level.
func (l *Logger) LogFields(level Level, msg string, fields Fields) {
	l.write(level, msg, fields)
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	std.Logf(LevelDebug, format, args...)
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	std.Logf(LevelInfo, format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	std.Logf(LevelWarn, format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	std.Logf(LevelError, format, args...)
}

// DebugFields logs a debug message with structured fields.
func DebugFields(msg string, fields Fields) {
	std.LogFields(LevelDebug, msg, fields)
}

// InfoFields logs an informational message with structured fields.
func InfoFields(msg string, fields Fields) {
	std.LogFields(LevelInfo, msg, fields)
}

// WarnFields logs a warning message with structured fields.
func WarnFields(msg string, fields Fields) {
	std.LogFields(LevelWarn, msg, fields)
}

// ErrorFields logs an error message with structured fields.
func ErrorFields(msg string, fields Fields) {
	std.LogFields(LevelError, msg, fields)
}

// LogError logs an error with additional context message.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	std.Logf(LevelError, "%s: %v", msg, err)
}
