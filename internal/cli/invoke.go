package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/repledger/internal/ledger"
	"github.com/roach88/repledger/internal/store"
	"github.com/roach88/repledger/internal/token"
)

// InvokeOptions holds flags for the invoke command.
type InvokeOptions struct {
	*RootOptions
	Database string
	Sender   string
	At       int64
	Params   string
}

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invoke <entry-point>",
		Short: "Invoke a contract entry point",
		Long: `Invoke a contract entry point with JSON parameters.

The sender and the logical call time are explicit: the ledger never
reads ambient identity or the wall clock. Parameters are validated
against the published interface schema before the entry point runs.

Exit codes:
  0 - Invocation succeeded
  1 - Invocation rejected (the rejection code is printed)
  2 - Command error (invalid paths, database not found, etc.)

Examples:
  repledger invoke add_category --db ./ledger.db --sender acc-issuer --at 1000 \
    --params '{"id":"trust","metadata":{"url":"https://example.com/trust.json"}}'
  repledger invoke mint --db ./ledger.db --sender acc-issuer --at 2000 \
    --params '{"id":"trust","account":"acc-alice","amount":80,"expiry":900000}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvoke(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Sender, "sender", "", "calling account (required)")
	_ = cmd.MarkFlagRequired("sender")
	cmd.Flags().Int64Var(&opts.At, "at", 0, "logical call time in milliseconds (required)")
	_ = cmd.MarkFlagRequired("at")
	cmd.Flags().StringVar(&opts.Params, "params", "{}", "entry point parameters as JSON")

	return cmd
}

func runInvoke(opts *InvokeOptions, entry string, cmd *cobra.Command) error {
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

	l, err := ledger.Open(cmd.Context(), s, ledger.UUIDv7Generator{})
	if err != nil {
		return WrapExitError(ExitCommandError, "open contract", err)
	}

	call, err := ledger.NewCall(opts.Sender, token.Timestamp(opts.At))
	if err != nil {
		_ = f.Error(string(ledger.CodeOf(err)), err.Error())
		return NewExitError(ExitFailure, err.Error())
	}

	result, err := l.Dispatch(cmd.Context(), entry, call, []byte(opts.Params))
	if err != nil {
		if code := ledger.CodeOf(err); code != "" {
			_ = f.Error(string(code), err.Error())
			return NewExitError(ExitFailure, err.Error())
		}
		return WrapExitError(ExitCommandError, "dispatch", err)
	}

	return f.Success(result)
}
