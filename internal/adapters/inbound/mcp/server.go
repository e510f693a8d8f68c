package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewExpectfixMCPServer creates an MCP server with the expectfix tools and
// resources registered for the project at projectPath.
func NewExpectfixMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"expectfix",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
