package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/repledger/internal/store"
)

// Snapshot captures a scenario execution for golden comparison: the
// observed step outcomes plus the final event log.
type Snapshot struct {
	Scenario string       `json:"scenario"`
	Owner    string       `json:"owner"`
	Steps    []StepResult `json:"steps"`
	Events   []traceEvent `json:"events"`
}

// traceEvent is the golden-file shape of a contract event.
type traceEvent struct {
	ID      string `json:"id"`
	Seq     int64  `json:"seq"`
	Kind    string `json:"kind"`
	TokenID string `json:"token_id"`
	Account string `json:"account,omitempty"`
	Amount  int64  `json:"amount"`
	URL     string `json:"url,omitempty"`
	Hash    string `json:"hash,omitempty"`
	At      int64  `json:"at"`
}

// snapshotOf converts a Result to its golden-file shape.
func snapshotOf(scenario *Scenario, result *Result) Snapshot {
	events := make([]traceEvent, len(result.Events))
	for i, ev := range result.Events {
		events[i] = traceEvent{
			ID:      ev.ID,
			Seq:     ev.Seq,
			Kind:    string(ev.Kind),
			TokenID: string(ev.TokenID),
			Account: string(ev.Account),
			Amount:  int64(ev.Amount),
			URL:     ev.URL,
			Hash:    ev.Hash,
			At:      int64(ev.At),
		}
	}

	return Snapshot{
		Scenario: result.Scenario,
		Owner:    scenario.Owner,
		Steps:    result.Steps,
		Events:   events,
	}
}

// MarshalSnapshot renders a snapshot as deterministic indented JSON.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// the golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := MarshalSnapshot(snapshotOf(scenario, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}

// eventKinds returns the kinds of a result's events in log order.
// Convenience for assertions on event sequences.
func eventKinds(events []store.Event) []string {
	kinds := make([]string, len(events))
	for i, ev := range events {
		kinds[i] = string(ev.Kind)
	}
	return kinds
}
