package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archlint/archlint/internal/adapters/inbound/cli"
)

const fixtureConfig = `
layers:
  - name: presentation
    pattern: app.presentation..
  - name: infrastructure
    pattern: app.infrastructure..
rules:
  - id: no-db-from-views
    type: import
    source: app.presentation..
    mode: deny
    forbidden: app.infrastructure..
`

// fixtureProject writes a small Python project with one rule violation.
func fixtureProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		".archlint.yaml":                 fixtureConfig,
		"app/__init__.py":                "",
		"app/presentation/__init__.py":   "",
		"app/presentation/view.py":       "from app.infrastructure.db import session\n",
		"app/infrastructure/__init__.py": "",
		"app/infrastructure/db.py":       "import os\n",
	}
	for rel, content := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}
	return dir
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
