package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--no-color", "--config", "testdata/gridctl.yaml"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gridctl dev")
}

func TestHeadersShow(t *testing.T) {
	out, err := run(t, "headers", "show", "testdata/headers.yaml")
	require.NoError(t, err)
	for _, label := range []string{"A1", "A2", "B3", "C3", "D4", "D6"} {
		assert.Contains(t, out, label)
	}
	t.Log("\n" + out)

	out, err = run(t, "headers", "show", "--collapse", "1:0", "testdata/headers.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "A2 [+]")
	assert.NotContains(t, out, "D4")
	assert.Contains(t, out, "D6")

	_, err = run(t, "headers", "show", "--collapse", "1-0", "testdata/headers.yaml")
	assert.Error(t, err)
	_, err = run(t, "headers", "show", "testdata/missing.yaml")
	assert.Error(t, err)
}

func TestHeadersValidate(t *testing.T) {
	out, err := run(t, "headers", "validate", "testdata/headers.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   testdata/headers.yaml (4 levels, 7 columns)")

	out, err = run(t, "headers", "validate", "testdata/headers.yaml", "testdata/overlapping.yaml", "testdata/missing.yaml")
	assert.True(t, errors.Is(err, errValidationFailed))
	assert.Contains(t, out, "ok   testdata/headers.yaml")
	assert.Contains(t, out, "FAIL testdata/overlapping.yaml")
	assert.Contains(t, out, "FAIL testdata/missing.yaml")
}

func TestGridSummary(t *testing.T) {
	out, err := run(t, "grid", "--collapse", "1:0", "--hide-rows", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "[2 3 4]")
	assert.Contains(t, out, "[2]")

	_, err = run(t, "grid", "--collapse", "x")
	assert.Error(t, err)
}
