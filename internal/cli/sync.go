package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/dexdb/internal/catalog"
	"github.com/vvka-141/dexdb/internal/config"
	"github.com/vvka-141/dexdb/internal/db"
	"github.com/vvka-141/dexdb/internal/files/filesystem"
	"github.com/vvka-141/dexdb/internal/logging"
	"github.com/vvka-141/dexdb/internal/services"
	"github.com/vvka-141/dexdb/internal/tui"
	"github.com/vvka-141/dexdb/internal/ui"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// syncFlagValues holds the flags shared by load, reload and dump.
type syncFlagValues struct {
	echoSQL        bool
	dataDir        string
	strictBooleans bool
	timeout        time.Duration
	logFormat      string
	force          bool
}

var syncFlags syncFlagValues

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&syncFlags.echoSQL, "sql", "s", false, "Echo every SQL statement sent to the database")
	flags.StringVar(&syncFlags.dataDir, "data-dir", dexdb.DefaultDataDir, "Directory holding one CSV file per table")
	flags.BoolVar(&syncFlags.strictBooleans, "strict-booleans", false, "Reject boolean fields other than True and False")
	flags.DurationVar(&syncFlags.timeout, "timeout", dexdb.DefaultTimeout, "Catastrophic failure timeout for the whole command (0 disables it)")
	flags.StringVar(&syncFlags.logFormat, "log-format", logging.FormatConsole, "Log output format: console or json")
}

// syncRun bundles what a sync command needs once flags and config are resolved.
type syncRun struct {
	config    dexdb.SyncConfig
	logFormat string
	display   string
}

// loadProjectConfig loads godotenv and project configuration.
// Returns nil config if dexdb.yaml does not exist (not an error).
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, err, dexdb.ErrInvalidConfig)
	}
	return projectCfg, nil
}

// buildSyncConfig resolves flags, environment and dexdb.yaml into a SyncConfig.
// A flag set on the command line always wins over the config file.
func buildSyncConfig(cmd *cobra.Command, args []string, verbose bool) (syncRun, error) {
	projectCfg, err := loadProjectConfig(".")
	if err != nil {
		return syncRun{}, err
	}

	target, err := db.ResolveTarget(targetArg(args), db.LoadFromEnvironment(), projectCfg)
	if err != nil {
		return syncRun{}, err
	}

	run := syncRun{
		config: dexdb.SyncConfig{
			Target:         target.DSN,
			DataDir:        syncFlags.dataDir,
			StrictBooleans: syncFlags.strictBooleans,
			EchoSQL:        syncFlags.echoSQL,
			Force:          syncFlags.force,
			Timeout:        syncFlags.timeout,
			Verbose:        verbose,
		},
		logFormat: syncFlags.logFormat,
		display:   target.Display,
	}

	if projectCfg != nil {
		flags := cmd.Flags()
		if !flags.Changed("data-dir") && projectCfg.DataDir != "" {
			run.config.DataDir = projectCfg.DataDir
		}
		if !flags.Changed("strict-booleans") && projectCfg.StrictBooleans {
			run.config.StrictBooleans = true
		}
		if !flags.Changed("log-format") && projectCfg.LogFormat != "" {
			run.logFormat = projectCfg.LogFormat
		}
		if !flags.Changed("timeout") {
			d, err := projectCfg.TimeoutDuration()
			if err != nil {
				return syncRun{}, fmt.Errorf("%w: %w", err, dexdb.ErrInvalidConfig)
			}
			if d != 0 {
				run.config.Timeout = d
			}
		}
	}

	if run.logFormat != logging.FormatConsole && run.logFormat != logging.FormatJSON {
		return syncRun{}, fmt.Errorf("unknown log format %q (want %s or %s): %w",
			run.logFormat, logging.FormatConsole, logging.FormatJSON, dexdb.ErrUsage)
	}

	if err := run.config.Validate(); err != nil {
		return syncRun{}, err
	}
	return run, nil
}

// newLogger builds the logger for one invocation. JSON output carries the run ID
// on every entry so interleaved CI logs can be told apart.
func newLogger(format string, verbose bool, runID string) (dexdb.Logger, func(), error) {
	if format == logging.FormatJSON {
		zl, err := logging.NewZapLogger(verbose, format, runID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", err, dexdb.ErrInvalidConfig)
		}
		return zl, func() { _ = zl.Sync() }, nil
	}
	logger := logging.NewConsoleLogger(verbose)
	logger.Verbose("Run %s", runID)
	return logger, func() {}, nil
}

// selectApprover picks how reload asks for confirmation: --force counts down,
// a terminal prompts, and anything else refuses.
func selectApprover(force, verbose bool) dexdb.Approver {
	switch {
	case force:
		return ui.NewForcedApprover(verbose)
	case tui.IsInteractive():
		return ui.NewInteractiveApprover(verbose)
	default:
		return ui.NewDenyingApprover()
	}
}

// connectorFactory parses the resolved target and opens it with the
// dialect's connector.
func connectorFactory(logger dexdb.Logger) services.ConnectorFactory {
	return func(config dexdb.SyncConfig) (dexdb.Connector, error) {
		target, err := db.ParseTarget(config.Target)
		if err != nil {
			return nil, err
		}
		return db.NewConnector(target, logger, config.EchoSQL)
	}
}

// commandContext bounds a command by timeout. Zero disables the deadline.
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout == 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// runSync wires the sync service for one command and runs op under the
// command timeout, cancelling on SIGINT or SIGTERM.
func runSync(cmd *cobra.Command, args []string, verb string, op func(context.Context, dexdb.Syncer, dexdb.SyncConfig) error) error {
	verbose := getVerboseFlag(cmd)

	run, err := buildSyncConfig(cmd, args, verbose)
	if err != nil {
		return err
	}

	logger, flush, err := newLogger(run.logFormat, verbose, uuid.NewString())
	if err != nil {
		return err
	}
	defer flush()

	if verbose {
		logger.Verbose("Target: %s", run.display)
		logger.Verbose("Data directory: %s", run.config.DataDir)
		logger.Verbose("Timeout: %s", run.config.Timeout)
	}

	syncer := services.NewSyncService(
		connectorFactory(logger),
		catalog.NewRegistry(),
		filesystem.NewOSFileSystem(),
		selectApprover(run.config.Force, verbose),
		logger,
	)

	ctx, cancel := commandContext(run.config.Timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintf(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling %s...\n", verb)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := op(ctx, syncer, run.config); err != nil {
		return fmt.Errorf("%s failed: %w", verb, err)
	}
	return nil
}
