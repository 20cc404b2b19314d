package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a sequence of entry
// point invocations against a freshly initialized contract, with
// expected outcomes per step.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Owner is the account the contract is initialized with.
	Owner string `yaml:"owner"`

	// Steps are the invocations, executed in order.
	Steps []Step `yaml:"steps"`
}

// Step is one entry point invocation.
type Step struct {
	// Invoke is the entry point name (e.g. "mint", "balance_of").
	Invoke string `yaml:"invoke"`

	// Sender is the calling account. Defaults to the scenario owner.
	Sender string `yaml:"sender,omitempty"`

	// At is the logical call time in milliseconds.
	At int64 `yaml:"at"`

	// Params are the entry point parameters, serialized to JSON
	// before dispatch.
	Params map[string]any `yaml:"params,omitempty"`

	// Expect specifies the expected outcome. If nil, the step must
	// simply succeed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies an expected step outcome.
type ExpectClause struct {
	// Error is the expected rejection code (e.g. "UNAUTHORIZED").
	// Empty means the step must succeed.
	Error string `yaml:"error,omitempty"`

	// Result contains expected result field values. Subset match:
	// only specified fields are validated.
	Result map[string]any `yaml:"result,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	// Strict field validation catches typos like "step:" vs "steps:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Owner == "" {
		return fmt.Errorf("owner is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Invoke == "" {
			return fmt.Errorf("steps[%d]: invoke is required", i)
		}
		if step.At < 0 {
			return fmt.Errorf("steps[%d]: at must be non-negative", i)
		}
		if step.Expect != nil && step.Expect.Error != "" && step.Expect.Result != nil {
			return fmt.Errorf("steps[%d].expect: error and result are mutually exclusive", i)
		}
	}

	return nil
}
