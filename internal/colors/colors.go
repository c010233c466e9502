// Package colors provides color console output for the moments tally
// does not own the terminal: startup, shutdown and fatal errors. Output
// is mirrored to the structured logger once one is attached.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled    = false
	inErrorHandling = false
	errorMutex      sync.RWMutex
	logger          Logger
	loggerMu        sync.RWMutex
)

func init() {
	if val := os.Getenv("TALLY_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func mirror(level string, msg string) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return
	}
	switch level {
	case "debug":
		l.Debug(msg)
	case "warn":
		l.Warn(msg)
	case "error":
		l.Error(msg)
	case "success":
		l.Info(msg, "type", "success")
	default:
		l.Info(msg)
	}
}

// emit writes one formatted line and falls back to plain stderr if the
// write itself fails, guarding against recursing through the reporters.
func emit(w io.Writer, line, context string) {
	_, err := fmt.Fprintln(w, line)
	if err == nil {
		return
	}
	errorMutex.RLock()
	alreadyHandling := inErrorHandling
	errorMutex.RUnlock()
	if alreadyHandling {
		fmt.Fprintf(os.Stderr, "failed to print %s message: %v\n", context, err)
		return
	}
	errorMutex.Lock()
	inErrorHandling = true
	errorMutex.Unlock()
	defer func() {
		errorMutex.Lock()
		inErrorHandling = false
		errorMutex.Unlock()
	}()
	Warning("failed to print " + context + " message: " + err.Error())
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("error", msg)
	emit(os.Stderr, fmt.Sprintf("%sError:%s %s%s", Red, Reset, msg, Reset), "error")
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("success", msg)
	emit(os.Stdout, fmt.Sprintf("%s%s%s %s%s", Green, checkmark, Reset, msg, Reset), "success")
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("warn", msg)
	emit(os.Stderr, fmt.Sprintf("%sWarning:%s %s%s", Yellow, Reset, msg, Reset), "warning")
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("info", msg)
	emit(os.Stdout, fmt.Sprintf("%s%s%s", Blue, msg, Reset), "info")
}

// LogInfo outputs an informational message to stderr, keeping stdout
// clean for the terminal session.
func LogInfo(msgs ...string) {
	msg := strings.Join(msgs, " ")
	mirror("info", msg)
	emit(os.Stderr, fmt.Sprintf("%s%s%s", Blue, msg, Reset), "log info")
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	if !debugEnabled {
		return
	}
	msg := strings.Join(msgs, " ")
	mirror("debug", msg)
	emit(os.Stderr, fmt.Sprintf("%sDebug:%s %s%s", Cyan, Reset, msg, Reset), "debug")
}
