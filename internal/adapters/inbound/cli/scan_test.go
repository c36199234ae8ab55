package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCommand(t *testing.T) {
	dir := fixtureProject(t)

	out, err := runCommand(t, "scan", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Architecture Scan")
	assert.Contains(t, out, "no-db-from-views")
	assert.Contains(t, out, "app.presentation.view")
}

func TestScanCommand_JSON(t *testing.T) {
	dir := fixtureProject(t)

	out, err := runCommand(t, "scan", "--path", dir, "--json")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result), "output should be valid JSON")
	assert.Contains(t, result, "index_checksum")
	assert.Contains(t, result, "violations")
	assert.EqualValues(t, 5, result["module_count"])
}

func TestScanCommand_CIFails(t *testing.T) {
	dir := fixtureProject(t)

	_, err := runCommand(t, "scan", "--path", dir, "--ci")
	assert.Error(t, err, "CI mode should fail on blocking violations")
}

func TestScanCommand_CIPassesOnCleanTree(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, "scan", "--path", dir, "--ci")
	assert.NoError(t, err, "CI mode should pass with no violations")
}
