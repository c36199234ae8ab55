package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/archlint/archlint/internal/adapters/outbound/gitinfo"
	"github.com/archlint/archlint/internal/adapters/outbound/store"
	"github.com/archlint/archlint/internal/domain"
)

// registerResources registers all archlint MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath, version string) {
	// 1. archlint://report - current scan report
	s.AddResource(
		mcplib.NewResource(
			"archlint://report",
			"Scan Report",
			mcplib.WithResourceDescription("Current rule violations, diagnostics, and import cycles for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)

	// 2. archlint://snapshot - stored project index
	s.AddResource(
		mcplib.NewResource(
			"archlint://snapshot",
			"Snapshot",
			mcplib.WithResourceDescription("Stored project index with modules, import edges, and git provenance"),
			mcplib.WithMIMEType("application/json"),
		),
		handleSnapshotResource(projectPath, version),
	)

	// 3. archlint://modules/{name} - per-module descriptor (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"archlint://modules/{name}",
			"Module Descriptor",
			mcplib.WithTemplateDescription("Imports, classes, and layer of a specific module"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleModuleResource(projectPath),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		out, err := newScanService().Scan(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		data, err := json.MarshalIndent(out.Report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "archlint://report",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleSnapshotResource(projectPath, version string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		snapshots := store.NewSnapshotStore()
		snap, err := snapshots.Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading snapshot failed: %w", err)
		}
		if snap == nil {
			// Nothing persisted yet, build one from the current tree without
			// writing it.
			out, err := newScanService().Scan(ctx, projectPath)
			if err != nil {
				return nil, fmt.Errorf("scan failed: %w", err)
			}
			git := gitinfo.New()
			meta := domain.NewSnapshotMeta(version, git.CommitHash(projectPath), git.Branch(projectPath), time.Now())
			snap = out.Index.ToSnapshot(meta)
		}

		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling snapshot: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "archlint://snapshot",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleModuleResource(projectPath string) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		// Extract module name from the arguments (populated by template matching)
		moduleName, ok := request.Params.Arguments["name"].(string)
		if !ok || moduleName == "" {
			return nil, fmt.Errorf("module name is required")
		}

		out, err := newScanService().Scan(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		desc, ok := out.Index.Modules[moduleName]
		if !ok {
			return nil, fmt.Errorf("module %q not found", moduleName)
		}

		data, err := json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling module: %w", err)
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
