package cli

import (
	"github.com/spf13/cobra"
)

// NewEnvsCommand creates the envs command.
func NewEnvsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envs",
		Short: "List known environments",
		Long: `List every environment ever written to, including ones whose
variables are all deleted. Dropped environments do not appear.

Example:
  envelope envs`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvs(rootOpts, cmd)
		},
	}

	return cmd
}

func runEnvs(opts *RootOptions, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	envs, err := st.ListEnvironments(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list environments", err)
	}

	return opts.formatter(cmd).Items(envs)
}
