// Package logger provides verbose logging for the Kognita CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users understand the ingestion and
// retrieval pipeline.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// logf prints a levelled line when verbose mode is on.
func logf(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("DEBUG", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("INFO", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("WARN", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
