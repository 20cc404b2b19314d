package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/repledger/internal/schema"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the contract interface",
		Long: `Print the contract interface as JSON.

Lists every entry point with its parameter shapes, including the
permanently disabled transfer family. The output is deterministic and
suitable for tooling.

Example:
  repledger schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schema.Export()
			if err != nil {
				return WrapExitError(ExitCommandError, "export interface", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	return cmd
}
