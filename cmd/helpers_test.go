// File: cmd/helpers_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/formeset/platen/internal/observability"
)

// executeCommand runs a freshly built root command and returns everything it
// printed. The root command leans on process globals (the viper singleton,
// the zap global, appCfg), so each run starts from a clean slate.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	observability.ResetForTest()
	appCfg = nil
	cfgFile = ""

	// Keep log files out of the repo and keep test output quiet.
	t.Setenv("PLATEN_LOGGER_LOG_FILE", filepath.Join(t.TempDir(), "platen-test.log"))
	t.Setenv("PLATEN_LOGGER_LEVEL", "error")

	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// writeDocument drops a file into its own temp dir and returns the path.
func writeDocument(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
