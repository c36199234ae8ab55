package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "archlint dev (none)")
}

func TestMCPCommandExists(t *testing.T) {
	_, err := runCommand(t, "mcp", "--help")
	assert.NoError(t, err)
}

func TestMCPServeCommandExists(t *testing.T) {
	_, err := runCommand(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}
