package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainCommand(t *testing.T) {
	dir := fixtureProject(t)

	out, err := runCommand(t, "explain", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Rules (1)")
	assert.Contains(t, out, "no-db-from-views")
}

func TestExplainCommand_SingleRule(t *testing.T) {
	dir := fixtureProject(t)

	out, err := runCommand(t, "explain", "no-db-from-views", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "no-db-from-views")
}

func TestExplainCommand_UnknownRule(t *testing.T) {
	dir := fixtureProject(t)

	_, err := runCommand(t, "explain", "does-not-exist", "--path", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestExplainCommand_JSON(t *testing.T) {
	dir := fixtureProject(t)

	out, err := runCommand(t, "explain", "--path", dir, "--json")
	require.NoError(t, err)

	var rules []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rules), "output should be valid JSON array")
	require.Len(t, rules, 1)
	assert.Equal(t, "no-db-from-views", rules[0]["id"])
}
