package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envelope-sh/envelope/internal/store"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Everywhere bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <env> [key]",
		Short: "Soft-delete variables",
		Long: `Soft-delete variables. History is kept; deleted keys can be set again.

With one argument every variable in the environment is deleted. With a
key as second argument only that variable is deleted. --everywhere takes
a single key and deletes it from every environment that holds it.

Deleting an already-deleted or never-set variable changes nothing.

Example:
  envelope delete dev
  envelope delete dev db_url
  envelope delete --everywhere api_token`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, cmd, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Everywhere, "everywhere", false, "treat the argument as a key and delete it from all environments")

	return cmd
}

func runDelete(opts *DeleteOptions, cmd *cobra.Command, args []string) error {
	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	f := opts.formatter(cmd)

	if opts.Everywhere {
		if len(args) != 1 {
			return NewExitError(ExitCommandError, "--everywhere takes exactly one key")
		}
		key := args[0]
		if err := st.DeleteVarAll(ctx, key); err != nil {
			return WrapExitError(ExitCommandError, "failed to delete variable", err)
		}
		return f.Success(fmt.Sprintf("deleted %s from all environments", store.NormalizeKey(key)))
	}

	env := args[0]
	if err := st.CheckEnvExists(ctx, env); err != nil {
		if store.IsNotFound(err) {
			return NewExitError(ExitFailure, fmt.Sprintf("environment %q does not exist", env))
		}
		return WrapExitError(ExitCommandError, "failed to check environment", err)
	}

	if len(args) == 2 {
		key := args[1]
		if err := st.DeleteVar(ctx, env, key); err != nil {
			return WrapExitError(ExitCommandError, "failed to delete variable", err)
		}
		return f.Success(fmt.Sprintf("deleted %s from %s", store.NormalizeKey(key), env))
	}

	if err := st.DeleteEnv(ctx, env); err != nil {
		return WrapExitError(ExitCommandError, "failed to delete environment", err)
	}
	return f.Success(fmt.Sprintf("deleted all variables in %s", env))
}
