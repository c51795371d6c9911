// Package mcp serves the compiler pipeline to MCP clients over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/strogmv/dtogen/compiler"
	"github.com/strogmv/dtogen/internal/pkg/logger"
)

// Report is the JSON body of every tool result.
type Report struct {
	Tool    string   `json:"tool"`
	Status  string   `json:"status"`
	Summary []string `json:"summary,omitempty"`
	Code    string   `json:"code,omitempty"`
	Payload any      `json:"payload,omitempty"`
}

func (r *Report) ToJSON() string {
	b, _ := json.MarshalIndent(r, "", "  ")
	return string(b)
}

// Result wraps the report in a text tool result.
func (r *Report) Result() *mcp.CallToolResult {
	res := mcp.NewToolResultText(r.ToJSON())
	res.IsError = r.Status == statusError
	return res
}

const (
	statusOK         = "ok"
	statusUnreadable = "unreadable"
	statusError      = "error"
)

func errorReport(tool string, err error) *Report {
	return &Report{
		Tool:    tool,
		Status:  statusError,
		Code:    compiler.ErrorCode(err),
		Summary: []string{err.Error()},
	}
}

// NewServer registers the dtogen tools and prompts.
func NewServer(p *compiler.Pipeline) *server.MCPServer {
	s := server.NewMCPServer(
		"dtogen",
		compiler.Version,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithLogging(),
	)
	t := &tools{pipeline: p}

	addTool := func(tool mcp.Tool, h toolHandler) {
		s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return safeInvokeTool(ctx, tool.Name, func() (*mcp.CallToolResult, error) {
				return h(ctx, request)
			})
		})
	}

	addTool(mcp.NewTool("dtogen_inspect_model",
		mcp.WithDescription("Introspect a model file and return its classified properties."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Model name or path under the models directory, e.g. user or admin/audit_log")),
	), t.inspect)

	addTool(mcp.NewTool("dtogen_preview",
		mcp.WithDescription("Render a DTO or validator without writing it."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Artifact name, e.g. user")),
		mcp.WithString("kind", mcp.Enum("dto", "validator"), mcp.Description("Artifact kind (default: dto)")),
		mcp.WithString("source", mcp.Description("Model source to use instead of the file on disk")),
	), t.preview)

	addTool(mcp.NewTool("dtogen_generate",
		mcp.WithDescription("Write DTOs (and optionally validators). Without a name every model is generated."),
		mcp.WithString("name", mcp.Description("Artifact name; empty generates every model")),
		mcp.WithString("model", mcp.Description("Explicit model to build from")),
		mcp.WithBoolean("validator", mcp.Description("Also write validators (default: false)")),
		mcp.WithBoolean("force", mcp.Description("Overwrite existing files (default: false)")),
		mcp.WithBoolean("dry_run", mcp.Description("Report actions without writing (default: false)")),
	), t.generate)

	registerPrompts(s)
	return s
}

// Serve runs the MCP server on stdio until the client disconnects.
func Serve(ctx context.Context, p *compiler.Pipeline) error {
	logger.From(ctx).Info("starting mcp server", "version", compiler.Version)
	if err := server.ServeStdio(NewServer(p)); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}
