package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/preflight/internal/application"
	"github.com/abdidvp/preflight/internal/domain"
)

func registerTools(s *server.MCPServer, projectPath string, svc *application.ValidateService) {
	s.AddTool(
		mcplib.NewTool("preflight_check",
			mcplib.WithDescription("Validate the project's required files, directories and manifest dependencies. Returns the run summary as JSON."),
			mcplib.WithString("preset", mcplib.Description("Built-in preset to use instead of the project's config")),
			mcplib.WithString("manifest", mcplib.Description("Manifest path relative to the project root")),
		),
		handleCheck(projectPath, svc),
	)

	s.AddTool(
		mcplib.NewTool("preflight_rules",
			mcplib.WithDescription("List the effective rule set (categories and rules) without checking anything"),
			mcplib.WithString("preset", mcplib.Description("Built-in preset to use instead of the project's config")),
		),
		handleRules(projectPath, svc),
	)
}

// checkResult is the payload of preflight_check.
type checkResult struct {
	ExitCode int `json:"exit_code"`
	*domain.RunSummary
}

func handleCheck(projectPath string, svc *application.ValidateService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		preset, _ := request.GetArguments()["preset"].(string)
		manifest, _ := request.GetArguments()["manifest"].(string)

		plan, err := svc.Prepare(projectPath, application.PlanOptions{
			Preset:   preset,
			Manifest: manifest,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("check could not run: %v", err)), nil
		}

		summary, err := svc.Run(ctx, application.Request{
			ProjectRoot:  plan.ProjectRoot,
			ManifestPath: plan.ManifestPath,
			RuleSet:      plan.RuleSet,
			Workers:      1,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("check could not run: %v", err)), nil
		}

		code := domain.ExitPass
		if !summary.OverallPass {
			code = domain.ExitFailed
		}
		return jsonResult(checkResult{ExitCode: code, RunSummary: summary})
	}
}

func handleRules(projectPath string, svc *application.ValidateService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		preset, _ := request.GetArguments()["preset"].(string)

		plan, err := svc.Prepare(projectPath, application.PlanOptions{Preset: preset})
		if err != nil {
			return errorResult(fmt.Sprintf("loading rules failed: %v", err)), nil
		}
		return jsonResult(plan.RuleSet.Categories())
	}
}

// jsonResult marshals v into an indented JSON text result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result flagged as an error.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
