package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCmd(t *testing.T) {
	out, err := execute(t, "run", "--count", "50", "--workers", "2", "--verify", "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, out, "mapped=50")
}

func TestFixtureThenRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "models.yaml")
	outFile := filepath.Join(dir, "outputs.yaml")

	_, err := execute(t, "fixture", in, "--count", "20", "--format", "yaml")
	require.NoError(t, err)

	out, err := execute(t, "run", "--input", in, "--output", outFile, "--format", "yaml", "--log-level", "error")
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "mapped=20"), out)
}

func TestRunCmd_BadLogLevel(t *testing.T) {
	_, err := execute(t, "run", "--count", "1", "--log-level", "loud")
	require.Error(t, err)
}

func TestFixtureCmd_RequiresPath(t *testing.T) {
	_, err := execute(t, "fixture")
	require.Error(t, err)
}
