// Package debug gates human-facing diagnostic and informational output on
// the --verbose and --quiet flags.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	enabled     = os.Getenv("CATALOG_DEBUG") != ""
	verboseMode = false
	quietMode   = false

	mu     sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// SetOutput redirects normal and diagnostic output. It returns a func that
// restores the previous writers.
func SetOutput(out, errOut io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	return func() {
		mu.Lock()
		defer mu.Unlock()
		stdout, stderr = prevOut, prevErr
	}
}

// Logf writes to stderr when debug output is enabled.
func Logf(format string, args ...interface{}) {
	if Enabled() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(stderr, format, args...)
	}
}

// PrintNormal prints output unless quiet mode is enabled
// Use this for confirmations that scripts may want to silence.
func PrintNormal(format string, args ...interface{}) {
	if !quietMode {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(stdout, format, args...)
	}
}

// PrintlnNormal prints a line unless quiet mode is enabled
func PrintlnNormal(args ...interface{}) {
	if !quietMode {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(stdout, args...)
	}
}
