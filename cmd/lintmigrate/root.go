package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal"
	"github.com/YakDriver/lintmigrate/internal/migrate"
	"github.com/YakDriver/lintmigrate/internal/prompt"
	"github.com/YakDriver/lintmigrate/internal/runner"
	"github.com/YakDriver/lintmigrate/internal/ui"
	"github.com/spf13/cobra"
)

var (
	dirFlag      string
	yesFlag      bool
	dryRunFlag   bool
	verboseFlag  bool
	debugFlag    bool
	logLevelFlag string
)

// stdin is where interactive answers are read from.
var stdin = os.Stdin

var rootCmd = &cobra.Command{
	Use:   "lintmigrate",
	Short: "lintmigrate sets up and migrates lint and format configuration.",
	Long: `lintmigrate is a CLI for moving JavaScript and TypeScript projects between
lint and format toolchains: legacy ESLint configs to flat config, ESLint to
Oxlint, Prettier to Oxfmt, and onto @oceanbase/lint-config.

Run without a subcommand to pick a setup interactively.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevelFlag != "" && !internal.ValidLogLevel(logLevelFlag) {
			return fmt.Errorf("invalid --log-level %q", logLevelFlag)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dirFlag, "dir", ".", "Project directory")
	flags.BoolVarP(&yesFlag, "yes", "y", false, "Take the default answer to every question")
	flags.BoolVarP(&dryRunFlag, "dry-run", "n", false, "Show what would be changed without making changes")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Show detailed output")
	flags.BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	flags.StringVar(&logLevelFlag, "log-level", "", "Log level: silent, error, warn, info or debug")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves --dir, loads the layered configuration for it and
// installs the logger the flags ask for.
func loadConfig(cmd *cobra.Command) (string, *internal.Config, error) {
	dir, err := filepath.Abs(dirFlag)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}
	internal.LoadEnvFile(dir)

	cfg, err := internal.LoadConfig(internal.DefaultSources(dir)...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(cmd.ErrOrStderr(), cfg)
	internal.GetGlobalLogger().Debug("project directory %s", dir)
	return dir, cfg, nil
}

func logLevel(cfg *internal.Config) string {
	switch {
	case debugFlag:
		return "debug"
	case logLevelFlag != "":
		return logLevelFlag
	case verboseFlag:
		return "info"
	}
	return cfg.LogLevel()
}

func setupLogging(w io.Writer, cfg *internal.Config) {
	internal.SetGlobalLogger(internal.SetupLogger(&internal.LoggingConfig{
		LogLevel: logLevel(cfg),
		Output:   w,
		UseHCLog: debugFlag,
	}))
}

// runSession builds a session for the project directory and hands it to run.
// With --dry-run, files are written to memory and commands are only recorded;
// both are listed once run returns.
func runSession(cmd *cobra.Command, run func(context.Context, *migrate.Session) error) error {
	dir, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := ui.NewPrinter(cmd.OutOrStdout())

	var (
		fsys filesystem.FileSystem = filesystem.NewDirFS(dir)
		r    runner.Runner
		dry  *filesystem.DryRunFS
		rec  *runner.RecordingRunner
	)
	if dryRunFlag {
		dry = filesystem.NewDryRunFS(fsys)
		rec = &runner.RecordingRunner{}
		fsys, r = dry, rec
	} else {
		r = runner.NewExecRunner(dir, runner.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	}

	p := prompt.New(stdin, cmd.OutOrStdout(), yesFlag || cfg.AssumeYes())
	s := migrate.NewSession(fsys, p, r, out, cfg, migrate.MigratorOptions{
		DryRun:  dryRunFlag,
		Verbose: verboseFlag,
	})

	err = run(cmd.Context(), s)
	switch {
	case errors.Is(err, prompt.ErrAborted):
		out.Warn("Cancelled")
		return nil
	case errors.Is(err, context.Canceled):
		out.Warn("Cancelled")
		return err
	case err != nil:
		return err
	}

	if dry != nil {
		printDryRun(out, dry, rec)
	}
	return nil
}

func printDryRun(out *ui.Printer, fsys *filesystem.DryRunFS, r *runner.RecordingRunner) {
	out.Section("Dry run, nothing was changed")
	changes := fsys.Changes()
	commands := r.Strings()
	if len(changes) == 0 && len(commands) == 0 {
		out.Info("No changes")
		return
	}
	for _, c := range changes {
		out.Bullet("%s %s", c.Op, c.Path)
	}
	for _, c := range commands {
		out.Bullet("run %s", c)
	}
}

// workflowCommand returns a subcommand that runs the named workflow.
func workflowCommand(name, long string) *cobra.Command {
	w, err := migrate.Lookup(name)
	if err != nil {
		panic(err)
	}
	return &cobra.Command{
		Use:   name,
		Short: w.Description,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, func(ctx context.Context, s *migrate.Session) error {
				return migrate.NewMigrator(w).Run(ctx, s)
			})
		},
	}
}
