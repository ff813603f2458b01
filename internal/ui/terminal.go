package ui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInputTerminal reports whether stdin is a terminal.
func IsInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ShouldUseColor follows the NO_COLOR and CLICOLOR conventions, then falls
// back to TTY detection.
//
//	NO_COLOR set (any value)   -> no color
//	CLICOLOR=0                 -> no color
//	CLICOLOR_FORCE set         -> color even without a TTY
func ShouldUseColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if os.Getenv("CLICOLOR_FORCE") != "" {
		return true
	}
	return IsTerminal()
}

// TerminalWidth returns the width of stdout, or fallback when unknown.
func TerminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}

// ClearScreen clears w when it is a terminal. Other writers are left alone
// so piped and test output stays free of escape codes.
func ClearScreen(w io.Writer) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	out := termenv.NewOutput(f)
	out.ClearScreen()
	out.MoveCursor(1, 1)
}
