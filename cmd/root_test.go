// File: cmd/root_test.go
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdVersionFlag(t *testing.T) {
	stdout, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, Version)
}

func TestVersionCommand(t *testing.T) {
	stdout, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "platen "+Version)
}

func TestRootCmdShowsHelp(t *testing.T) {
	stdout, err := executeCommand(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "render")
	assert.Contains(t, stdout, "inspect")
	assert.Contains(t, stdout, "fonts")
}

func TestRootCmdRejectsBadConfigFile(t *testing.T) {
	bad := writeDocument(t, "config.yaml", "{broken yaml\n")

	_, err := executeCommand(t, "--config", bad, "fonts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestRootCmdRejectsInvalidConfigValues(t *testing.T) {
	bad := writeDocument(t, "config.yaml", "render:\n  workers: 0\n")

	_, err := executeCommand(t, "--config", bad, "fonts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.workers")
}
