// Package logger writes petpost's debug log. The TUI owns the terminal, so
// everything goes to a file under /tmp instead of stderr.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultLogPath is the default log file for the TUI and subcommands
const DefaultLogPath = "/tmp/petpost-debug.log"

// LogGlob matches every log file petpost may have written
const LogGlob = "/tmp/petpost-*.log"

var (
	mu        sync.Mutex
	slogger   *slog.Logger
	logFile   *os.File
	levelVar  = new(slog.LevelVar) // Allows dynamic level changes
	initDone  bool
	debugMode bool
)

// SetDebug switches between debug and info level output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugMode = enabled
	levelVar.Set(currentLevel())
}

func currentLevel() slog.Level {
	if debugMode {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Init opens the log file at path. Calling it again after a successful
// Init is a no-op; use Reset first to switch files.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return openLocked(path)
}

// openLocked must be called with mu held.
func openLocked(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	levelVar.Set(currentLevel())
	slogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true

	slogger.Info("Logger initialized", "path", path)
	return nil
}

// ensureInitLocked lazily opens DefaultLogPath. Must be called with mu held.
func ensureInitLocked() {
	if initDone {
		return
	}
	if err := openLocked(DefaultLogPath); err != nil {
		// Mark done anyway so we only warn once; logging becomes a no-op.
		initDone = true
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func logf(level slog.Level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	ensureInitLocked()
	if slogger == nil || !slogger.Enabled(context.Background(), level) {
		return
	}
	slogger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug writes a debug message (only emitted when debug is enabled)
func Debug(format string, args ...interface{}) { logf(slog.LevelDebug, format, args...) }

// Info writes an info message
func Info(format string, args ...interface{}) { logf(slog.LevelInfo, format, args...) }

// Warn writes a warning message
func Warn(format string, args ...interface{}) { logf(slog.LevelWarn, format, args...) }

// Error writes an error message
func Error(format string, args ...interface{}) { logf(slog.LevelError, format, args...) }

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogger = nil
}

// Reset returns the package to its pristine state so tests can Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogger = nil
	initDone = false
	debugMode = false
	levelVar = new(slog.LevelVar)
}

// ClearLogs removes all petpost log files from /tmp
func ClearLogs() (int, error) {
	logs, err := filepath.Glob(LogGlob)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, path := range logs {
		if err := os.Remove(path); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}
	return count, nil
}

// ComponentLogger returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.ComponentLogger("Publish")
//	log.Info("Submitting post", "images", len(draft.Images))
func ComponentLogger(component string) *slog.Logger {
	return with(slog.String("component", component))
}

// WithRequest returns a slog.Logger with the request ID pre-attached.
// Every log line of one submission carries the same requestID.
func WithRequest(requestID string) *slog.Logger {
	return with(slog.String("requestID", requestID))
}

func with(attr slog.Attr) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInitLocked()
	if slogger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slogger.With(attr)
}
