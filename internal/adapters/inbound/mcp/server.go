package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewKubefoldMCPServer creates an MCP server exposing kubefold's scan and
// generation pipeline as tools. The projectPath is the root directory of the
// project to inspect.
func NewKubefoldMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"kubefold",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
