package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envelope-sh/envelope/internal/store"
)

// NewDuplicateCommand creates the duplicate command.
func NewDuplicateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicate <src-env> <tgt-env>",
		Short: "Copy an environment's current variables into another",
		Long: `Copy the current variables of one environment into another.

The copies become the newest version of each key in the target; existing
target history is kept underneath. Deleted keys in the source are not
copied.

Example:
  envelope duplicate dev staging`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDuplicate(rootOpts, cmd, args[0], args[1])
		},
	}

	return cmd
}

func runDuplicate(opts *RootOptions, cmd *cobra.Command, srcEnv, tgtEnv string) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if err := st.CheckEnvExists(ctx, srcEnv); err != nil {
		if store.IsNotFound(err) {
			return NewExitError(ExitFailure, fmt.Sprintf("environment %q does not exist", srcEnv))
		}
		return WrapExitError(ExitCommandError, "failed to check environment", err)
	}

	if err := st.Duplicate(ctx, srcEnv, tgtEnv); err != nil {
		return WrapExitError(ExitCommandError, "failed to duplicate environment", err)
	}

	return opts.formatter(cmd).Success(fmt.Sprintf("duplicated %s into %s", srcEnv, tgtEnv))
}
