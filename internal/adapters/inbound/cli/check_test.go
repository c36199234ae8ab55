package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_NoBaseline(t *testing.T) {
	dir := fixtureProject(t)

	out, err := runCommand(t, "check", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline Check")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "New (1)")
}

func TestCheckCommand_JSON(t *testing.T) {
	dir := fixtureProject(t)

	out, err := runCommand(t, "check", "--path", dir, "--json")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result), "output should be valid JSON")
	assert.Contains(t, result, "diff")
	assert.Equal(t, false, result["baseline_present"])
}

func TestCheckCommand_CIFailsWithoutBaseline(t *testing.T) {
	dir := fixtureProject(t)

	_, err := runCommand(t, "check", "--path", dir, "--ci")
	assert.Error(t, err, "CI mode should fail on new blocking violations")
}

func TestCheckCommand_CICountsOnlyBlocking(t *testing.T) {
	dir := fixtureProject(t)
	withWarning := fixtureConfig + `  - id: flag-db-use
    type: import
    source: app..
    mode: deny
    forbidden: app.infrastructure..
    severity: warning
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".archlint.yaml"), []byte(withWarning), 0644))

	_, err := runCommand(t, "check", "--path", dir, "--ci")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 new blocking violations", "warning-severity violations are not counted")
}

func TestCheckCommand_CIPassesAfterBaseline(t *testing.T) {
	dir := fixtureProject(t)

	_, err := runCommand(t, "baseline", "save", "--path", dir)
	require.NoError(t, err)

	out, err := runCommand(t, "check", "--path", dir, "--ci")
	require.NoError(t, err, "accepted violations should not fail CI")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "Accepted (1)")
}
