package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/envelope-sh/envelope/internal/config"
	"github.com/envelope-sh/envelope/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	History  bool
	Truncate string // "start,length", 1-based
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list [env]",
		Short: "List variables in an environment",
		Long: `List the current variables of an environment.

Without an argument the default_env from .envelope.yaml is used.
--history includes keys whose latest record is a deletion. --truncate
windows each value for display; stored values are unaffected.

Example:
  envelope list dev
  envelope list dev --truncate 1,8
  envelope list dev --history`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := ""
			if len(args) == 1 {
				env = args[0]
			}
			return runList(opts, cmd, env)
		},
	}

	cmd.Flags().BoolVar(&opts.History, "history", false, "show the latest record per key, deletions included")
	cmd.Flags().StringVar(&opts.Truncate, "truncate", "", "display window for values as start,length (1-based)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command, env string) error {
	cfg := loadConfig(opts.RootOptions)
	if env == "" {
		env = cfg.DefaultEnv
	}
	if env == "" {
		return NewExitError(ExitCommandError, "no environment given and no default_env configured")
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if err := st.CheckEnvExists(ctx, env); err != nil {
		if store.IsNotFound(err) {
			return NewExitError(ExitFailure, fmt.Sprintf("environment %q does not exist", env))
		}
		return WrapExitError(ExitCommandError, "failed to check environment", err)
	}

	if opts.History {
		records, err := st.History(ctx, env)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read history", err)
		}
		return opts.formatter(cmd).Records(records)
	}

	truncate, err := resolveTruncate(opts, cfg.Truncate)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --truncate", err)
	}

	records, err := st.ListVariablesTruncated(ctx, env, truncate)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list variables", err)
	}
	return opts.formatter(cmd).Records(records)
}

// resolveTruncate picks the display window: the --truncate flag wins,
// then the config default, then no truncation.
func resolveTruncate(opts *ListOptions, cfg *config.TruncateConfig) (store.Truncate, error) {
	if opts.Truncate != "" {
		return parseTruncate(opts.Truncate)
	}
	if cfg != nil {
		return store.Truncate{Start: cfg.Start, Length: cfg.Length}, nil
	}
	return store.Truncate{}, nil
}

// parseTruncate parses a "start,length" pair.
func parseTruncate(s string) (store.Truncate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return store.Truncate{}, fmt.Errorf("want start,length, got %q", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return store.Truncate{}, fmt.Errorf("invalid start %q: %w", parts[0], err)
	}
	length, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return store.Truncate{}, fmt.Errorf("invalid length %q: %w", parts[1], err)
	}
	if start < 1 || length < 1 {
		return store.Truncate{}, fmt.Errorf("start and length must be >= 1, got %d,%d", start, length)
	}
	return store.Truncate{Start: start, Length: length}, nil
}
