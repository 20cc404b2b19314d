package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/repledger/internal/ledger"
	"github.com/roach88/repledger/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	TokenID  string // optional - filter to one category
}

// TraceEvent represents a single event in the trace timeline.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	TokenID string `json:"token_id"`
	Account string `json:"account,omitempty"`
	Amount  int64  `json:"amount"`
	URL     string `json:"url,omitempty"`
	Hash    string `json:"hash,omitempty"`
	At      int64  `json:"at"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Owner    string       `json:"owner"`
	Timeline []TraceEvent `json:"timeline"`
	Stats    TraceStats   `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalEvents int `json:"total_events"`
	Mints       int `json:"mints"`
	Burns       int `json:"burns"`
	Metadata    int `json:"metadata"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the contract event log",
		Long: `Show the append-only contract event log in logical-clock order.

Every state change is logged: registrations and metadata writes, mints,
and the burns emitted when a still-valid score is replaced.

Examples:
  repledger trace --db ./ledger.db
  repledger trace --db ./ledger.db --id trust
  repledger trace --db ./ledger.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.TokenID, "id", "", "filter to one category id")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	s, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	l, err := ledger.Open(ctx, s, ledger.UUIDv7Generator{})
	if err != nil {
		return WrapExitError(ExitCommandError, "open contract", err)
	}

	var events []store.Event
	if opts.TokenID != "" {
		events, err = l.EventsForToken(ctx, opts.TokenID)
	} else {
		events, err = l.Events(ctx)
	}
	if err != nil {
		if code := ledger.CodeOf(err); code != "" {
			return NewExitError(ExitFailure, err.Error())
		}
		return WrapExitError(ExitCommandError, "read event log", err)
	}

	result := buildTraceResult(string(l.Owner()), events)

	if opts.Format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "owner: %s\n", result.Owner)
	fmt.Fprintf(w, "events: %d (%d mints, %d burns, %d metadata)\n",
		result.Stats.TotalEvents, result.Stats.Mints, result.Stats.Burns, result.Stats.Metadata)
	for _, ev := range result.Timeline {
		line := fmt.Sprintf("%6d  %-8s  %s", ev.Seq, ev.Kind, ev.TokenID)
		if ev.Account != "" {
			line += fmt.Sprintf("  %s  amount=%d", ev.Account, ev.Amount)
		}
		if ev.URL != "" {
			line += fmt.Sprintf("  url=%s", ev.URL)
		}
		fmt.Fprintf(w, "%s  at=%d\n", line, ev.At)
	}

	return nil
}

// buildTraceResult converts stored events into the trace output shape.
func buildTraceResult(owner string, events []store.Event) TraceResult {
	result := TraceResult{
		Owner:    owner,
		Timeline: make([]TraceEvent, len(events)),
	}
	result.Stats.TotalEvents = len(events)

	for i, ev := range events {
		result.Timeline[i] = TraceEvent{
			Seq:     ev.Seq,
			ID:      ev.ID,
			Kind:    string(ev.Kind),
			TokenID: string(ev.TokenID),
			Account: string(ev.Account),
			Amount:  int64(ev.Amount),
			URL:     ev.URL,
			Hash:    ev.Hash,
			At:      int64(ev.At),
		}

		switch ev.Kind {
		case store.EventMint:
			result.Stats.Mints++
		case store.EventBurn:
			result.Stats.Burns++
		case store.EventMetadata:
			result.Stats.Metadata++
		}
	}

	return result
}
