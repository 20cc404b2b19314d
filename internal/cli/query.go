package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/repledger/internal/ledger"
	"github.com/roach88/repledger/internal/store"
	"github.com/roach88/repledger/internal/token"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database string
	ID       string
	Account  string
	At       int64
}

// queryViews maps query names to the entry points they read.
var queryViews = map[string]string{
	"balance":    ledger.EntryBalanceOf,
	"expiry":     ledger.EntryExpiryOf,
	"metadata":   ledger.EntryTokenMetadata,
	"categories": ledger.EntryListCategories,
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <balance|expiry|metadata|categories>",
		Short: "Read contract state",
		Long: `Read contract state through the world-readable views.

Queries need no sender: every view is readable by anyone. Balance is
evaluated against the supplied logical time; expired scores read as
zero. Expiry reports the stored record as is.

Examples:
  repledger query balance --db ./ledger.db --id trust --account acc-alice --at 5000
  repledger query expiry --db ./ledger.db --id trust --account acc-alice --at 5000
  repledger query metadata --db ./ledger.db --id trust
  repledger query categories --db ./ledger.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.ID, "id", "", "category id")
	cmd.Flags().StringVar(&opts.Account, "account", "", "account address")
	cmd.Flags().Int64Var(&opts.At, "at", 0, "logical query time in milliseconds")

	return cmd
}

func runQuery(opts *QueryOptions, view string, cmd *cobra.Command) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	entry, ok := queryViews[view]
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown query %q: must be one of balance, expiry, metadata, categories", view))
	}

	params, err := queryParams(entry, opts)
	if err != nil {
		return err
	}

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

	// Views are world-readable; the reader's identity is irrelevant.
	call := ledger.Call{Sender: "reader", Now: token.Timestamp(opts.At)}

	result, err := l.Dispatch(cmd.Context(), entry, call, params)
	if err != nil {
		if code := ledger.CodeOf(err); code != "" {
			_ = f.Error(string(code), err.Error())
			return NewExitError(ExitFailure, err.Error())
		}
		return WrapExitError(ExitCommandError, "dispatch", err)
	}

	return f.Success(result)
}

// queryParams assembles the entry point params from query flags.
func queryParams(entry string, opts *QueryOptions) ([]byte, error) {
	switch entry {
	case ledger.EntryBalanceOf, ledger.EntryExpiryOf:
		if opts.ID == "" || opts.Account == "" {
			return nil, NewExitError(ExitCommandError, "--id and --account are required for this query")
		}
		return json.Marshal(ledger.QueryParams{ID: opts.ID, Account: opts.Account})
	case ledger.EntryTokenMetadata:
		if opts.ID == "" {
			return nil, NewExitError(ExitCommandError, "--id is required for this query")
		}
		return json.Marshal(ledger.TokenMetadataParams{ID: opts.ID})
	default:
		return nil, nil
	}
}
