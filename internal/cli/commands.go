package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

var loadCmd = &cobra.Command{
	Use:   "load [connection]",
	Short: "Create the tables and insert every CSV row",
	Long: `Load creates every declared table that does not exist yet and inserts the
rows of <data-dir>/<table>.csv, parents before children, in one transaction.

Every file is read and decoded before the database is touched, so a missing
file or a malformed row leaves the database as it was. A row that the
database rejects (for example a duplicate primary key) rolls the whole load
back.`,
	Example: `  dexdb load sqlite://dex.db
  dexdb load postgres://dex@localhost:5432/pokedex --data-dir ./data
  DEXDB_DATABASE_URL=dex.db dexdb load -v`,
	Args: OptionalTarget,
	RunE: runLoad,
}

var reloadCmd = &cobra.Command{
	Use:   "reload [connection]",
	Short: "Drop every table and load the CSV files again",
	Long: `Reload drops every declared table, recreates it and inserts the CSV rows,
all in a single transaction. If anything fails the database keeps its
previous contents.

Reload asks for confirmation on a terminal. Without a terminal it refuses
unless --force is given, in which case it proceeds after a short countdown.`,
	Example: `  dexdb reload sqlite://dex.db
  dexdb reload postgres://dex@localhost:5432/pokedex --force`,
	Args: OptionalTarget,
	RunE: runReload,
}

var dumpCmd = &cobra.Command{
	Use:   "dump [connection]",
	Short: "Write every table back to its CSV file",
	Long: `Dump reads every declared table in a read-only transaction and writes it
to <data-dir>/<table>.csv, rows ordered by primary key.

Files whose content would not change are left untouched; every other file is
replaced atomically.`,
	Example: `  dexdb dump sqlite://dex.db
  dexdb dump --data-dir ./snapshot`,
	Args: OptionalTarget,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(dumpCmd)

	reloadCmd.Flags().BoolVar(&syncFlags.force, "force", false,
		"Skip the confirmation prompt (DANGEROUS: every table is dropped)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	return runSync(cmd, args, "load", func(ctx context.Context, s dexdb.Syncer, c dexdb.SyncConfig) error {
		return s.Load(ctx, c)
	})
}

func runReload(cmd *cobra.Command, args []string) error {
	return runSync(cmd, args, "reload", func(ctx context.Context, s dexdb.Syncer, c dexdb.SyncConfig) error {
		return s.Reload(ctx, c)
	})
}

func runDump(cmd *cobra.Command, args []string) error {
	return runSync(cmd, args, "dump", func(ctx context.Context, s dexdb.Syncer, c dexdb.SyncConfig) error {
		return s.Dump(ctx, c)
	})
}
