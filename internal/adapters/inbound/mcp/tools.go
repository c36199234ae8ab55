package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	appconfig "github.com/archlint/archlint/internal/adapters/outbound/config"
	"github.com/archlint/archlint/internal/adapters/outbound/extractor"
	"github.com/archlint/archlint/internal/adapters/outbound/gitinfo"
	"github.com/archlint/archlint/internal/adapters/outbound/store"
	"github.com/archlint/archlint/internal/adapters/outbound/walker"
	"github.com/archlint/archlint/internal/application"
	"github.com/archlint/archlint/internal/domain"
)

// registerTools registers all archlint MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath, version string) {
	// 1. archlint_scan
	s.AddTool(
		mcplib.NewTool("archlint_scan",
			mcplib.WithDescription("Index the Python project, evaluate all configured rules, and return the full report as JSON"),
		),
		handleScan(projectPath),
	)

	// 2. archlint_check
	s.AddTool(
		mcplib.NewTool("archlint_check",
			mcplib.WithDescription("Evaluate rules and partition violations into new, accepted, and resolved against the stored baseline"),
		),
		handleCheck(projectPath),
	)

	// 3. archlint_impact
	s.AddTool(
		mcplib.NewTool("archlint_impact",
			mcplib.WithDescription("Re-evaluate only the rules affected by changed files. Changed files come from the argument, or from the git worktree when omitted."),
			mcplib.WithString("changed",
				mcplib.Description("Comma-separated changed file paths relative to the project root"),
			),
			mcplib.WithNumber("depth",
				mcplib.Description("Propagation depth over reverse imports (-1 = unbounded, default)"),
			),
		),
		handleImpact(projectPath, version),
	)

	// 4. archlint_explain
	s.AddTool(
		mcplib.NewTool("archlint_explain",
			mcplib.WithDescription("Describe the configured rules in plain language"),
			mcplib.WithString("rule",
				mcplib.Description("Describe only the rule with this id"),
			),
		),
		handleExplain(projectPath),
	)

	// 5. archlint_baseline_save
	s.AddTool(
		mcplib.NewTool("archlint_baseline_save",
			mcplib.WithDescription("Accept the current violations as the baseline. Later checks fail only on violations not in this set."),
		),
		handleBaselineSave(projectPath),
	)

	// 6. archlint_snapshot_diff
	s.AddTool(
		mcplib.NewTool("archlint_snapshot_diff",
			mcplib.WithDescription("Compare the stored snapshot against the current tree and return added and removed modules and imports"),
		),
		handleSnapshotDiff(projectPath, version),
	)
}

// newScanService creates the standard scan pipeline.
func newScanService() *application.ScanService {
	return application.NewScanService(walker.New(), extractor.New(), appconfig.New())
}

func handleScan(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		out, err := newScanService().Scan(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(out.Report)
	}
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := application.NewCheckService(newScanService(), store.NewBaselineStore())
		report, err := svc.Check(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleImpact(projectPath, version string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		depth := domain.UnboundedDepth
		if d, ok := args["depth"].(float64); ok {
			depth = int(d)
		}

		var out *application.ScanOutput
		var err error
		if changedStr, ok := args["changed"].(string); ok && changedStr != "" {
			out, err = newScanService().Impact(ctx, projectPath, splitAndTrim(changedStr), depth)
		} else {
			svc := application.NewSnapshotService(newScanService(), store.NewSnapshotStore(), gitinfo.New(), version)
			out, err = svc.ImpactFromWorktree(ctx, projectPath, depth)
		}
		if err != nil {
			return errorResult(fmt.Sprintf("impact analysis failed: %v", err)), nil
		}
		return jsonResult(out.Report)
	}
}

func handleExplain(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := appconfig.New().Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config failed: %v", err)), nil
		}
		rules, err := cfg.CompiledRules()
		if err != nil {
			return errorResult(fmt.Sprintf("compiling rules failed: %v", err)), nil
		}

		if id, ok := request.GetArguments()["rule"].(string); ok && id != "" {
			var match []domain.Rule
			for _, r := range rules {
				if r.ID == id {
					match = append(match, r)
				}
			}
			if len(match) == 0 {
				return errorResult(fmt.Sprintf("rule %q not found", id)), nil
			}
			rules = match
		}

		type explained struct {
			ID          string `json:"id"`
			Description string `json:"description"`
		}
		out := make([]explained, 0, len(rules))
		for _, r := range rules {
			out = append(out, explained{ID: r.ID, Description: r.Describe()})
		}
		return jsonResult(out)
	}
}

func handleBaselineSave(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := application.NewBaselineService(newScanService(), store.NewBaselineStore())
		baseline, _, err := svc.Save(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("baseline save failed: %v", err)), nil
		}
		return jsonResult(baseline)
	}
}

func handleSnapshotDiff(projectPath, version string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := application.NewSnapshotService(newScanService(), store.NewSnapshotStore(), gitinfo.New(), version)
		diff, err := svc.Diff(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("snapshot diff failed: %v", err)), nil
		}
		return jsonResult(diff)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
