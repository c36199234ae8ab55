package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewArchlintMCPServer creates a new MCP server with all archlint tools and
// resources registered. The projectPath is the root directory of the project
// to analyze.
func NewArchlintMCPServer(projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"archlint",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, version)
	registerResources(s, projectPath, version)

	return s
}
