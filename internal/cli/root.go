package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `     _               _ _
  __| | _____  ____| | |__
 / _' |/ _ \ \/ / _' | '_ \
| (_| |  __/>  < (_| | |_) |
 \__,_|\___/_/\_\__,_|_.__/`

var rootCmd = &cobra.Command{
	Use:   "dexdb",
	Short: "Sync a Pokédex between CSV files and a relational database",
	Long: asciiLogo + `

dexdb keeps a directory of CSV files (one per table) and a relational
database in step. The table declarations are compiled into the binary; the
CSV files are the source of truth and live under version control.

  load    create the tables and insert every CSV row
  reload  drop every table, then load again in one transaction
  dump    write every table back to its CSV file

The connection target is taken from the positional argument,
$DEXDB_DATABASE_URL, $DATABASE_URL or dexdb.yaml, in that order.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments, flags or connection target)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  12 - User denied reload approval
  20 - Invalid table declarations
  21 - A CSV row could not be decoded
  22 - The database rejected a row or statement
  23 - A data file could not be read or written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for dexdb")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
