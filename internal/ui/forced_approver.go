package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vvka-141/dexdb/internal/tui"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays a countdown and automatically approves after the countdown,
// used when the --force flag is provided.
type ForcedApprover struct {
	verbose   bool
	output    io.Writer
	colored   bool
	countdown time.Duration
	sleepFn   func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) dexdb.Approver {
	out, colored := stderr()
	return &ForcedApprover{
		verbose:   verbose,
		output:    out,
		colored:   colored,
		countdown: dexdb.DefaultForceApprovalCountdown,
		sleepFn:   time.Sleep,
	}
}

// RequestApproval displays a countdown and automatically approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, warn(a.colored, "DANGER: --force given, every table will be dropped and reloaded"))
	fmt.Fprintf(a.output, "  target: %s\n\n", target)

	seconds := int(a.countdown.Seconds())
	for i := seconds; i > 0; i-- {
		if err := ctx.Err(); err != nil {
			fmt.Fprintln(a.output)
			return false, err
		}
		fmt.Fprintf(a.output, "\rReloading in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(time.Second)
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	fmt.Fprintf(a.output, "\r%s                              \n", success(a.colored, tui.SymbolCheck+" Proceeding with reload..."))
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ dexdb.Approver = (*ForcedApprover)(nil)
