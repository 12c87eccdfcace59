// Package logger provides leveled console logging for transync.
// Warnings are always printed, informational messages unless --quiet is
// set, and debug messages only with --verbose. Everything goes to stderr
// so that command output on stdout stays clean.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level controls which messages are printed.
type Level int

const (
	// LevelQuiet prints warnings only.
	LevelQuiet Level = iota

	// LevelNormal prints info and warnings.
	LevelNormal

	// LevelVerbose prints debug, info and warnings.
	LevelVerbose
)

var (
	mu     sync.RWMutex
	level            = LevelNormal
	output io.Writer = os.Stderr
)

// SetLevel sets the logging level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current logging level.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetVerbose switches between verbose and normal logging.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelVerbose)
		return
	}
	SetLevel(LevelNormal)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return GetLevel() >= LevelVerbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(min Level, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level >= min {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(LevelVerbose, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if level >= LevelVerbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message unless quiet.
func Info(format string, args ...any) {
	logf(LevelNormal, "[INFO] ", format, args...)
}

// Warn prints a warning message at every level.
func Warn(format string, args ...any) {
	logf(LevelQuiet, "[WARN] ", format, args...)
}
