package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("dtogen/add-dto",
		mcp.WithPromptDescription("Guided flow to generate and review the DTO and validator of one model."),
		mcp.WithArgument("model", mcp.ArgumentDescription("Model name, e.g. user"), mcp.RequiredArgument()),
		mcp.WithArgument("validator", mcp.ArgumentDescription("yes to also write the validator")),
	), addDtoPrompt)
}

func addDtoPrompt(_ context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	model := strings.TrimSpace(request.Params.Arguments["model"])
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	validator := strings.EqualFold(strings.TrimSpace(request.Params.Arguments["validator"]), "yes")

	text := fmt.Sprintf(
		"You are adding a DTO for the %s model.\n\n"+
			"Steps:\n"+
			"1) Call dtogen_inspect_model with name %q and check every property was classified.\n"+
			"2) Call dtogen_preview with name %q (kind dto) and review the rendered source.\n"+
			"3) Call dtogen_generate with name %q, validator=%t, dry_run=true, then again without dry_run.\n"+
			"4) Report each written file with its action.\n\n"+
			"Rules:\n- Never pass force=true unless the user asked to overwrite.\n- Do not hand-edit generated files.\n",
		model, model, model, model, validator,
	)
	return mcp.NewGetPromptResult(
		"dtogen guided prompt: add dto",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
