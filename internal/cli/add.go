package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envelope-sh/envelope/internal/store"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <env> <key> <value>",
		Short: "Set a variable in an environment",
		Long: `Set a variable in an environment.

Keys are uppercased on write. Setting an existing key appends a newer
version; earlier values stay in the history. The first write to an
unknown environment creates it.

Example:
  envelope add dev db_url postgres://localhost/app`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, cmd, args[0], args[1], args[2])
		},
	}

	return cmd
}

func runAdd(opts *RootOptions, cmd *cobra.Command, env, key, value string) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Insert(cmd.Context(), env, key, value); err != nil {
		return WrapExitError(ExitCommandError, "failed to add variable", err)
	}

	return opts.formatter(cmd).Success(fmt.Sprintf("added %s to %s", store.NormalizeKey(key), env))
}
