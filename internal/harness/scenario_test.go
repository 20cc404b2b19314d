package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes YAML content to a temp file and returns its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: sample
description: a valid scenario
owner: acc-issuer
steps:
  - invoke: add_category
    at: 1000
    params:
      id: trust
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", scenario.Name)
	assert.Equal(t, "acc-issuer", scenario.Owner)
	require.Len(t, scenario.Steps, 1)
	assert.Equal(t, "add_category", scenario.Steps[0].Invoke)
	assert.Equal(t, int64(1000), scenario.Steps[0].At)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	// "step:" instead of "steps:" must be rejected, not ignored.
	path := writeScenario(t, `
name: sample
description: typo in key
owner: acc-issuer
step:
  - invoke: add_category
    at: 1000
`)

	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing name",
			content: `
description: d
owner: acc-issuer
steps:
  - invoke: mint
    at: 1
`,
		},
		{
			name: "missing owner",
			content: `
name: n
description: d
steps:
  - invoke: mint
    at: 1
`,
		},
		{
			name: "empty steps",
			content: `
name: n
description: d
owner: acc-issuer
steps: []
`,
		},
		{
			name: "step without invoke",
			content: `
name: n
description: d
owner: acc-issuer
steps:
  - at: 1
`,
		},
		{
			name: "negative at",
			content: `
name: n
description: d
owner: acc-issuer
steps:
  - invoke: mint
    at: -1
`,
		},
		{
			name: "error and result together",
			content: `
name: n
description: d
owner: acc-issuer
steps:
  - invoke: balance_of
    at: 1
    expect:
      error: UNAUTHORIZED
      result:
        amount: 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			assert.Error(t, err)
		})
	}
}
