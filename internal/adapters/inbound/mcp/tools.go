package mcp

import (
	"context"
	"encoding/json"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kubefold/kubefold/internal/adapters/outbound/config"
	"github.com/kubefold/kubefold/internal/adapters/outbound/dockerscan"
	"github.com/kubefold/kubefold/internal/adapters/outbound/envscan"
	"github.com/kubefold/kubefold/internal/adapters/outbound/schemascan"
	"github.com/kubefold/kubefold/internal/application"
	"github.com/kubefold/kubefold/internal/domain"
	"github.com/kubefold/kubefold/internal/domain/manifest"
)

// registerTools registers all kubefold MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. kubefold_scan
	s.AddTool(
		mcplib.NewTool("kubefold_scan",
			mcplib.WithDescription("Returns the project inventory (env variables, SQL schema, service units) as JSON"),
		),
		handleScan(projectPath),
	)

	// 2. kubefold_classify
	s.AddTool(
		mcplib.NewTool("kubefold_classify",
			mcplib.WithDescription("Classify environment variable names as config or secret"),
			mcplib.WithString("names",
				mcplib.Required(),
				mcplib.Description("Comma-separated variable names to classify"),
			),
		),
		handleClassify(projectPath),
	)

	// 3. kubefold_generate
	s.AddTool(
		mcplib.NewTool("kubefold_generate",
			mcplib.WithDescription("Generate Kubernetes manifests for the project and return the written file names"),
			mcplib.WithString("namespace", mcplib.Description("Target namespace")),
			mcplib.WithString("tag", mcplib.Description("Image tag")),
			mcplib.WithString("storage", mcplib.Description("Database PVC size, e.g. 10Gi")),
		),
		handleGenerate(projectPath),
	)
}

// newScanService wires the standard outbound scanners.
func newScanService() *application.ScanService {
	return application.NewScanService(
		envscan.New(),
		schemascan.New(),
		dockerscan.New(),
		config.New(),
	)
}

func handleScan(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		inv, _, err := newScanService().Scan(projectPath)
		if err != nil {
			return errorResult("scan failed: " + err.Error()), nil
		}
		return jsonResult(inv)
	}
}

func handleClassify(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		names, err := request.RequireString("names")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return errorResult("loading config: " + err.Error()), nil
		}

		out := map[string]domain.Classification{}
		for _, name := range strings.Split(names, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			out[name] = domain.Classify(name, cfg.SecretKeywords)
		}
		return jsonResult(out)
	}
}

func handleGenerate(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		namespace, _ := args["namespace"].(string)
		tag, _ := args["tag"].(string)
		storage, _ := args["storage"].(string)
		overrides := domain.ProjectConfig{
			Namespace:   namespace,
			Tag:         tag,
			StorageSize: storage,
		}

		svc := application.NewGenerateService(newScanService())
		result, err := svc.Generate(projectPath, overrides, manifest.Options{})
		if err != nil {
			return errorResult("generation failed: " + err.Error()), nil
		}

		names := make([]string, 0, len(result.Files))
		for _, f := range result.Files {
			names = append(names, f.Name)
		}
		return jsonResult(map[string]interface{}{
			"output_dir": result.OutputDir,
			"files":      names,
			"warnings":   result.Set.Warnings,
		})
	}
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("encoding result: " + err.Error()), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return mcplib.NewToolResultError(msg)
}
