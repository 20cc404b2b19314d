package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/roach88/repledger/internal/ledger"
	"github.com/roach88/repledger/internal/store"
	"github.com/roach88/repledger/internal/testutil"
	"github.com/roach88/repledger/internal/token"
)

// Result is the outcome of one scenario execution.
type Result struct {
	// Scenario is the scenario name.
	Scenario string

	// Steps holds one entry per executed step, in order.
	Steps []StepResult

	// Events is the full contract event log after the last step.
	Events []store.Event
}

// StepResult records the observed outcome of one step.
type StepResult struct {
	Invoke string `json:"invoke"`
	Sender string `json:"sender"`
	At     int64  `json:"at"`

	// Error is the rejection code, empty on success.
	Error string `json:"error,omitempty"`

	// Result is the entry point result, nil for mutations.
	Result any `json:"result,omitempty"`
}

// Run executes a scenario against a fresh in-memory contract.
//
// Event ids are generated sequentially, so two runs of the same
// scenario produce identical traces. Run fails on the first step whose
// outcome does not match its expectation.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	s, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	l, err := ledger.Init(ctx, s, scenario.Owner, testutil.NewSeqIDGenerator("ev"))
	if err != nil {
		return nil, fmt.Errorf("init contract: %w", err)
	}

	result := &Result{Scenario: scenario.Name}

	for i, step := range scenario.Steps {
		sr, err := runStep(ctx, l, scenario, step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, step.Invoke, err)
		}
		result.Steps = append(result.Steps, sr)
	}

	events, err := l.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	result.Events = events

	return result, nil
}

// runStep dispatches one step and checks its expectation.
func runStep(ctx context.Context, l *ledger.Ledger, scenario *Scenario, step Step) (StepResult, error) {
	sender := step.Sender
	if sender == "" {
		sender = scenario.Owner
	}

	sr := StepResult{
		Invoke: step.Invoke,
		Sender: sender,
		At:     step.At,
	}

	params, err := json.Marshal(step.Params)
	if err != nil {
		return sr, fmt.Errorf("encode params: %w", err)
	}
	if step.Params == nil {
		params = nil
	}

	// Senders follow the same canonicalization rules as the CLI path.
	var res any
	call, dispatchErr := ledger.NewCall(sender, token.Timestamp(step.At))
	if dispatchErr == nil {
		res, dispatchErr = l.Dispatch(ctx, step.Invoke, call, params)
	}
	if dispatchErr != nil {
		code := ledger.CodeOf(dispatchErr)
		if code == "" {
			// Infrastructure failures are never an expected outcome.
			return sr, fmt.Errorf("dispatch: %w", dispatchErr)
		}
		sr.Error = string(code)
	} else {
		sr.Result = res
	}

	if err := checkExpect(step.Expect, sr, dispatchErr); err != nil {
		return sr, err
	}

	return sr, nil
}

// checkExpect verifies a step outcome against its expectation.
func checkExpect(expect *ExpectClause, sr StepResult, dispatchErr error) error {
	wantErr := ""
	if expect != nil {
		wantErr = expect.Error
	}

	if wantErr == "" && dispatchErr != nil {
		return fmt.Errorf("unexpected rejection: %w", dispatchErr)
	}
	if wantErr != "" && sr.Error != wantErr {
		return fmt.Errorf("expected rejection %s, got %q", wantErr, sr.Error)
	}

	if expect == nil || expect.Result == nil {
		return nil
	}

	got, err := normalize(sr.Result)
	if err != nil {
		return fmt.Errorf("normalize result: %w", err)
	}
	want, err := normalize(expect.Result)
	if err != nil {
		return fmt.Errorf("normalize expectation: %w", err)
	}

	gotMap, ok := got.(map[string]any)
	if !ok {
		return fmt.Errorf("result is not an object: %v", got)
	}
	wantMap := want.(map[string]any)

	// Subset match: only the expected fields are checked.
	for key, wantVal := range wantMap {
		gotVal, present := gotMap[key]
		if !present {
			return fmt.Errorf("result missing field %q", key)
		}
		if !reflect.DeepEqual(gotVal, wantVal) {
			return fmt.Errorf("result field %q = %v, want %v", key, gotVal, wantVal)
		}
	}

	return nil
}

// normalize round-trips a value through JSON so typed results and YAML
// expectation maps compare with the same number and key types.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
