package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// OptionalTarget validates that at most one [connection] argument is provided.
// Returns a helpful error message with usage and examples if there are too many.
func OptionalTarget(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s sqlite://dex.db
  %s postgres://dex@localhost:5432/pokedex

%w`, len(args), cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath(), dexdb.ErrUsage)
	}
	return nil
}

// targetArg returns the positional connection target, or "" when omitted.
func targetArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
