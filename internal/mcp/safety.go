package mcp

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/strogmv/dtogen/internal/pkg/logger"
)

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// safeInvokeTool turns handler panics and errors into error reports so the
// stdio transport stays open.
func safeInvokeTool(ctx context.Context, name string, h func() (*mcp.CallToolResult, error)) (resp *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("tool panic: %v", r)
			logger.From(ctx).Error("mcp tool panicked", "tool", name, "panic", r)
			resp = (&Report{Tool: name, Status: statusError, Summary: []string{msg}}).Result()
			err = nil
		}
	}()
	resp, err = h()
	if err != nil {
		return errorReport(name, err).Result(), nil
	}
	return resp, nil
}

// validateModelName rejects names that would resolve outside the models directory.
func validateModelName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.Contains(name, `\`) || path.IsAbs(name) {
		return fmt.Errorf("invalid model name %q", name)
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || clean != name {
		return fmt.Errorf("model name %q escapes the models directory", name)
	}
	return nil
}
