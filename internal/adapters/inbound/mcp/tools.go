package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/adapters/outbound/cache"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/config"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/detector"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/history"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/parser"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/printer"
	"github.com/abdidvp/expectfix/internal/adapters/outbound/scanner"
	"github.com/abdidvp/expectfix/internal/application"
	"github.com/abdidvp/expectfix/internal/domain"
)

const onlyDescription = "Comma-separated inspection ids to run (expected-exception, reference-equality)"

func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("expectfix_inspect",
			mcplib.WithDescription("Lists rewritable @Test(expected = ...) methods and reference comparisons in the project as JSON"),
			mcplib.WithString("only", mcplib.Description(onlyDescription)),
			mcplib.WithBoolean("no_cache", mcplib.Description("Inspect every file, ignoring the cache")),
		),
		handleInspect(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("expectfix_fix",
			mcplib.WithDescription("Applies the available fixes and returns applied and failed fixes as JSON"),
			mcplib.WithBoolean("dry_run", mcplib.Description("Compute fixes without writing files")),
			mcplib.WithBoolean("allow_dirty", mcplib.Description("Also rewrite files with uncommitted git changes")),
			mcplib.WithString("only", mcplib.Description(onlyDescription)),
		),
		handleFix(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("expectfix_history",
			mcplib.WithDescription("Returns previous fix runs recorded for the project"),
		),
		handleHistory(projectPath),
	)
}

func handleInspect(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := application.NewInspectService(scanner.New(), parser.New(), config.New(), detector.New(), cache.New())
		report, err := svc.Inspect(ctx, projectPath, domain.InspectOptions{
			NoCache: request.GetBool("no_cache", false),
			Only:    splitList(request.GetString("only", "")),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("inspection failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleFix(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := application.NewFixService(
			scanner.New(),
			parser.New(),
			printer.New(),
			config.New(),
			detector.New(),
			gitinfo.New(),
			history.New(),
		)
		result, err := svc.Fix(ctx, projectPath, domain.FixOptions{
			DryRun:     request.GetBool("dry_run", false),
			AllowDirty: request.GetBool("allow_dirty", false),
			Only:       splitList(request.GetString("only", "")),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleHistory(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		entries, err := history.New().Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading history: %v", err)), nil
		}
		if entries == nil {
			entries = []domain.RunEntry{}
		}
		return jsonResult(entries)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// jsonResult marshals v as indented JSON and wraps it in a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
