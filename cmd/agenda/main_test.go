package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"db", "log-level", "metrics-addr"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestRootCmd_RejectsInvalidFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--log-level", "verbose"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestRootCmd_FlagOverridesInvalidEnv(t *testing.T) {
	// A regular file as the log directory makes run fail right after
	// validation, before anything touches the terminal.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	t.Setenv("AGENDA_LOG_LEVEL", "verbose")
	t.Setenv("AGENDA_LOG_FILE", filepath.Join(blocker, "agenda.log"))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--log-level", "warn"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "log directory")
}
