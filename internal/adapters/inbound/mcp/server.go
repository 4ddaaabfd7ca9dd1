package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/preflight/internal/application"
)

// NewPreflightMCPServer creates an MCP server with the preflight tools and
// resources registered. projectPath is the root of the project to check.
func NewPreflightMCPServer(projectPath string, svc *application.ValidateService) *server.MCPServer {
	s := server.NewMCPServer(
		"preflight",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
