package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show database details",
		Long: `Show where the envelope database lives, its identity, and how many
environments it holds.

Example:
  envelope info`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, cmd)
		},
	}

	return cmd
}

func runInfo(opts *RootOptions, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	info, err := st.Info(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read store info", err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(info)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "path:           %s\n", info.Path)
	fmt.Fprintf(out, "store id:       %s\n", info.StoreID)
	fmt.Fprintf(out, "schema version: %d\n", info.SchemaVersion)
	fmt.Fprintf(out, "environments:   %d\n", info.Environments)
	return nil
}
