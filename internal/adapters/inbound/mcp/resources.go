package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/preflight/internal/application"
)

func registerResources(s *server.MCPServer, projectPath string, svc *application.ValidateService) {
	s.AddResource(
		mcplib.NewResource(
			"preflight://rules",
			"Rule Set",
			mcplib.WithResourceDescription("Effective preflight rule set for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(projectPath, svc),
	)
}

func handleRulesResource(projectPath string, svc *application.ValidateService) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		plan, err := svc.Prepare(projectPath, application.PlanOptions{})
		if err != nil {
			return nil, fmt.Errorf("loading rules: %w", err)
		}

		data, err := json.MarshalIndent(plan.RuleSet.Categories(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
