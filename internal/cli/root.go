package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/envelope-sh/envelope/internal/config"
	"github.com/envelope-sh/envelope/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Dir     string // directory holding the envelope database
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the envelope CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "envelope",
		Short: "envelope - versioned environment variables",
		Long: `A local store of key/value variables grouped into environments
(dev, staging, prod, ...), with full history and soft deletes.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", ".", "directory holding the envelope database")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewEnvsCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewDropCommand(opts))
	cmd.AddCommand(NewDuplicateCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// setupLogging wires the default slog logger to stderr. Diagnostics stay
// out of stdout so JSON output is never corrupted.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:   level,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}

// openStore opens the envelope database for opts.Dir, mapping a missing
// database to a command error.
func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Load(opts.Dir)
	if err != nil {
		if store.IsNotInitialized(err) {
			return nil, WrapExitError(ExitCommandError, "envelope is not initialized (run 'envelope init')", err)
		}
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	slog.Debug("database ready", "path", st.Path())
	return st, nil
}

// loadConfig reads the optional settings file. An unreadable config is
// reported and treated as absent rather than aborting the command.
func loadConfig(opts *RootOptions) config.Config {
	cfg, err := config.Load(opts.Dir)
	if err != nil {
		slog.Warn("ignoring config", "error", err)
		return config.Config{}
	}
	return cfg
}

// formatter builds the output formatter for a command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}
