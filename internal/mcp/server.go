package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/drift-labs/sdkdoc/internal/sdkdoc"
)

//go:embed instructions.md
var instructions string

// Assembler produces documentation tabs for a request.
type Assembler interface {
	Assemble(ctx context.Context, req sdkdoc.Request) []sdkdoc.Tab
}

type Server struct {
	mcpServer *server.MCPServer
	assembler Assembler
}

func NewServer(assembler Assembler, version string) *Server {
	s := &Server{assembler: assembler}

	mcpServer := server.NewMCPServer(
		"sdkdoc",
		version,
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

var sourceLabels = []string{"typescript", "python", "rust", "api"}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("sdk_doc",
			mcp.WithDescription("Look up a Drift SDK symbol in the TypeScript, Python and Rust reference docs. Returns one tab per requested language, in the order TypeScript, Python, Rust, API."),
			sdkDocSchema,
			mcp.WithString("format",
				mcp.Description("Output format: \"markdown\" (default) or \"json\""),
				mcp.Enum("markdown", "json"),
			),
		),
		s.handleSdkDoc,
	)
}

func sdkDocSchema(t *mcp.Tool) {
	block := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "Symbol name",
			},
			"kind": map[string]any{
				"type":        "string",
				"description": "Declared kind, e.g. function, class, method, enum, type",
			},
			"owner": map[string]any{
				"type":        "string",
				"description": "Owning type, for methods",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "Usage example to show with the tab",
			},
		},
		"required": []string{"name"},
	}
	for _, label := range sourceLabels {
		t.InputSchema.Properties[label] = block
	}
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"sdkdoc://{source}/{name}",
			"SDK symbol documentation",
			mcp.WithTemplateDescription("Documentation for one symbol from one SDK source (typescript, python or rust)."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleSdkDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	var request sdkdoc.Request
	requestJSON, err := json.Marshal(args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if err := json.Unmarshal(requestJSON, &request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid request format: %v", err)), nil
	}
	if request.Empty() {
		return mcp.NewToolResultError("request at least one of: " + strings.Join(sourceLabels, ", ")), nil
	}
	for _, b := range []*sdkdoc.BlockRequest{request.TypeScript, request.Python, request.Rust, request.API} {
		if b != nil && strings.TrimSpace(b.Name) == "" {
			return mcp.NewToolResultError("every request needs a name"), nil
		}
	}

	tabs := s.assembler.Assemble(ctx, request)

	format, _ := args["format"].(string)
	if format == "json" {
		resultJSON, _ := json.MarshalIndent(tabs, "", "  ")
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
	return mcp.NewToolResultText(sdkdoc.Markdown(tabs)), nil
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	trimmed := strings.TrimPrefix(uri, "sdkdoc://")
	source, name, ok := strings.Cut(trimmed, "/")
	if !ok || name == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", uri)
	}
	name, err := url.PathUnescape(name)
	if err != nil {
		return nil, fmt.Errorf("invalid resource URI: %s: %w", uri, err)
	}

	block := &sdkdoc.BlockRequest{Name: name}
	var request sdkdoc.Request
	switch source {
	case "typescript":
		request.TypeScript = block
	case "python":
		request.Python = block
	case "rust":
		request.Rust = block
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     sdkdoc.Markdown(s.assembler.Assemble(ctx, request)),
		},
	}, nil
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
