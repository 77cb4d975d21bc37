package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/dexdb/internal/tui"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the operator to type ConfirmPhrase.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
	colored bool
}

// NewInteractiveApprover creates a new InteractiveApprover reading stdin.
func NewInteractiveApprover(verbose bool) dexdb.Approver {
	out, colored := stderr()
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  out,
		colored: colored,
	}
}

// RequestApproval prompts the operator to type ConfirmPhrase.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintf(a.output, "\n%s\n", warn(a.colored, fmt.Sprintf("WARNING: You are about to DROP and RELOAD every table in '%s'", target)))
	fmt.Fprintln(a.output, "This will permanently delete all rows not present in the CSV files!")
	fmt.Fprintf(a.output, "\nTo confirm, type '%s' and press Enter: ", ConfirmPhrase)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == ConfirmPhrase {
			fmt.Fprintln(a.output, success(a.colored, tui.SymbolCheck+" Confirmed. Proceeding with reload..."))
			return true, nil
		}
		fmt.Fprintf(a.output, "%s Input '%s' does not match '%s'. Operation cancelled.\n", tui.SymbolCross, input, ConfirmPhrase)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ dexdb.Approver = (*InteractiveApprover)(nil)
