// Package ui implements operator confirmation for destructive commands.
package ui

import (
	"io"
	"os"

	"github.com/vvka-141/dexdb/internal/tui"
)

// ConfirmPhrase is the text an operator types to approve a reload.
const ConfirmPhrase = "reload"

func warn(colored bool, s string) string {
	if !colored {
		return s
	}
	return tui.WarningStyle.Render(s)
}

func success(colored bool, s string) string {
	if !colored {
		return s
	}
	return tui.SuccessStyle.Render(s)
}

func stderr() (io.Writer, bool) {
	return os.Stderr, tui.UseColor(os.Stderr)
}
