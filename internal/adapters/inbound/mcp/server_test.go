package mcp_test

import (
	"testing"

	mcpadapter "github.com/archlint/archlint/internal/adapters/inbound/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArchlintMCPServer(t *testing.T) {
	s := mcpadapter.NewArchlintMCPServer(".", "test")
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewArchlintMCPServer(".", "test")
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"archlint_scan",
		"archlint_check",
		"archlint_impact",
		"archlint_explain",
		"archlint_baseline_save",
		"archlint_snapshot_diff",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
