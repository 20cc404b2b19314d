package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/repledger/internal/ledger"
	"github.com/roach88/repledger/internal/store"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Database string
	Owner    string
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new contract database",
		Long: `Initialize a new contract database with an immutable owner.

The owner is recorded exactly once; initializing an existing database
fails and leaves it untouched.

Examples:
  repledger init --db ./ledger.db --owner acc-issuer`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "contract owner account (required)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	s, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	l, err := ledger.Init(cmd.Context(), s, opts.Owner, ledger.UUIDv7Generator{})
	if err != nil {
		if code := ledger.CodeOf(err); code != "" {
			_ = f.Error(string(code), err.Error())
			return NewExitError(ExitFailure, err.Error())
		}
		return WrapExitError(ExitCommandError, "initialize contract", err)
	}

	return f.Success(fmt.Sprintf("initialized: owner=%s", l.Owner()))
}
