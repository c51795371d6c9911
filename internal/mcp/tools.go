package mcp

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/strogmv/dtogen/compiler"
	"github.com/strogmv/dtogen/compiler/emitter"
	"github.com/strogmv/dtogen/compiler/parser"
)

type tools struct {
	pipeline *compiler.Pipeline
}

// PreviewPayload is the payload of dtogen_preview.
type PreviewPayload struct {
	Kind    string   `json:"kind"`
	Path    string   `json:"path"`
	Imports []string `json:"imports"`
	Source  string   `json:"source"`
}

func (t *tools) inspect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "dtogen_inspect_model"
	name := strings.TrimSpace(mcp.ParseString(request, "name", ""))
	if err := validateModelName(name); err != nil {
		return errorReport(tool, err).Result(), nil
	}

	in := t.pipeline.ResolveModel(ctx, name)
	report := &Report{Tool: tool, Status: statusOK, Payload: in.Model}
	if !in.Model.IsReadable {
		report.Status = statusUnreadable
		report.Summary = []string{fmt.Sprintf("%s %s", compiler.ErrUnreadableModel, in.Model.FileName)}
		return report.Result(), nil
	}
	report.Summary = []string{fmt.Sprintf("%s: %d properties", in.Model.Name, len(in.Model.Properties))}
	return report.Result(), nil
}

func (t *tools) preview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "dtogen_preview"
	name := strings.TrimSpace(mcp.ParseString(request, "name", ""))
	if err := validateModelName(name); err != nil {
		return errorReport(tool, err).Result(), nil
	}
	kind := mcp.ParseString(request, "kind", emitter.KindDto)
	if kind != emitter.KindDto && kind != emitter.KindValidator {
		return errorReport(tool, fmt.Errorf("kind must be %q or %q, got %q", emitter.KindDto, emitter.KindValidator, kind)).Result(), nil
	}

	var (
		in       parser.Introspection
		artifact = name
	)
	if source := mcp.ParseString(request, "source", ""); source != "" {
		in = t.pipeline.IntrospectSource(ctx, emitter.ModelNameFor(name), source)
	} else {
		in = t.pipeline.ResolveModel(ctx, emitter.ModelNameFor(name))
		if in.Model.IsReadable {
			artifact = path.Join(path.Dir(name), in.Model.Name)
		}
	}
	res := t.pipeline.Synthesize(ctx, artifact, in)

	em := t.pipeline.NewEmitter(false, true)
	payload := PreviewPayload{Kind: kind}
	var (
		src []byte
		err error
	)
	if kind == emitter.KindValidator {
		src, err = em.RenderValidator(res.Validator, res.Model, res.ValidatorImports)
		payload.Path, payload.Imports = res.Validator.ExportPath, res.ValidatorImports
	} else {
		src, err = em.RenderDto(res.Dto, res.Model, res.DtoImports)
		payload.Path, payload.Imports = res.Dto.ExportPath, res.DtoImports
	}
	if err != nil {
		return nil, compiler.WrapContractError(compiler.StageEmit, compiler.ErrCodeEmitRender, res.Name, err)
	}
	payload.Source = string(src)

	report := &Report{Tool: tool, Status: statusOK, Payload: payload, Summary: []string{payload.Path}}
	if !res.Model.IsReadable {
		report.Status = statusUnreadable
		report.Summary = append(report.Summary, fmt.Sprintf("%s %s, rendered a plain artifact", compiler.ErrUnreadableModel, res.Model.FileName))
	}
	return report.Result(), nil
}

func (t *tools) generate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "dtogen_generate"
	name := strings.TrimSpace(mcp.ParseString(request, "name", ""))
	model := strings.TrimSpace(mcp.ParseString(request, "model", ""))
	validator := mcp.ParseBoolean(request, "validator", false)
	force := mcp.ParseBoolean(request, "force", false)
	dryRun := mcp.ParseBoolean(request, "dry_run", false)

	var (
		results []emitter.Result
		err     error
	)
	if name == "" {
		results, err = t.pipeline.Generate(ctx, compiler.GenerateRequest{
			Dto:       true,
			Validator: validator,
			Force:     force,
			DryRun:    dryRun,
		})
	} else {
		if err := validateModelName(name); err != nil {
			return errorReport(tool, err).Result(), nil
		}
		if model != "" {
			if err := validateModelName(model); err != nil {
				return errorReport(tool, err).Result(), nil
			}
		}
		_, results, err = t.pipeline.Make(ctx, compiler.MakeRequest{
			Name:      name,
			Model:     model,
			Dto:       true,
			Validator: validator,
			Force:     force,
			DryRun:    dryRun,
		})
	}
	if err != nil {
		report := errorReport(tool, err)
		report.Payload = map[string]any{"results": results}
		return report.Result(), nil
	}

	if results == nil {
		results = []emitter.Result{}
	}
	summary := make([]string, 0, len(results))
	for _, r := range results {
		summary = append(summary, fmt.Sprintf("%s %s", r.Action, r.Path))
	}
	return (&Report{
		Tool:    tool,
		Status:  statusOK,
		Summary: summary,
		Payload: map[string]any{"results": results, "dry_run": dryRun},
	}).Result(), nil
}
