package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envelope-sh/envelope/internal/store"
)

// NewDropCommand creates the drop command.
func NewDropCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop <env>",
		Short: "Permanently erase an environment",
		Long: `Permanently erase an environment and its entire history.

Unlike delete, drop is irreversible: nothing of the environment survives,
and it disappears from 'envelope envs'.

Example:
  envelope drop staging`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrop(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runDrop(opts *RootOptions, cmd *cobra.Command, env string) error {
	st, err := openStore(opts)
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

	if err := st.DropEnv(ctx, env); err != nil {
		return WrapExitError(ExitCommandError, "failed to drop environment", err)
	}

	return opts.formatter(cmd).Success(fmt.Sprintf("dropped %s", env))
}
