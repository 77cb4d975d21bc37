// Package tui holds terminal detection and the styles used for console output.
package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for dexdb.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode determines whether dexdb may prompt the operator.
//
// Returns ModeNonInteractive if:
//   - stdin or stderr is not a terminal (piped input, CI/CD)
//   - DEXDB_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	if os.Getenv("DEXDB_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeNonInteractive
	}
	// Prompts are written to stderr.
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// UseColor reports whether console output to f should be styled.
func UseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
