package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad path")
	assert.Equal(t, "bad path", err.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	wrapped := WrapExitError(ExitFailure, "dispatch", errors.New("boom"))
	assert.Equal(t, "dispatch: boom", wrapped.Error())
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))

	// Wrapping through fmt still resolves the code.
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("outer: %w", wrapped)))

	// Plain errors default to failure.
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestOutputFormatter_SuccessText(t *testing.T) {
	buf := new(bytes.Buffer)
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success(nil))
	assert.Equal(t, "ok\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Success("done"))
	assert.Equal(t, "done\n", buf.String())

	buf.Reset()
	require.NoError(t, f.Success(map[string]int{"amount": 80}))
	assert.Equal(t, "{\"amount\":80}\n", buf.String())
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]int{"amount": 80}))
	assert.JSONEq(t, `{"status":"ok","data":{"amount":80}}`, buf.String())
}

func TestOutputFormatter_Error(t *testing.T) {
	buf := new(bytes.Buffer)
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Error("UNAUTHORIZED", "mint is restricted"))
	assert.Contains(t, buf.String(), "Error [UNAUTHORIZED]: mint is restricted")

	buf.Reset()
	f.Format = "json"
	require.NoError(t, f.Error("UNAUTHORIZED", "mint is restricted"))
	assert.JSONEq(t, `{"status":"error","error":{"code":"UNAUTHORIZED","message":"mint is restricted"}}`, buf.String())
}
