package cli

import (
	"github.com/spf13/cobra"

	"github.com/envelope-sh/envelope/internal/store"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an envelope database in the current directory",
		Long: `Create an empty envelope database (a ` + store.DBFileName + ` file).

Fails if the directory is already initialized.

Example:
  envelope init`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}

	return cmd
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	if store.IsPresent(opts.Dir) {
		return NewExitError(ExitCommandError, "envelope is already initialized")
	}

	st, err := store.Init(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize envelope", err)
	}
	defer st.Close()

	return opts.formatter(cmd).Success("initialized empty envelope database")
}
