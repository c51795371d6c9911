package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/dtogen/compiler"
	"github.com/strogmv/dtogen/compiler/emitter"
	"github.com/strogmv/dtogen/compiler/ir"
)

const userModel = `import { BaseModel, column } from '@adonisjs/lucid/orm'

export default class User extends BaseModel {
  @column()
  declare name: string

  @column()
  declare age?: number
}
`

type testReport struct {
	Tool    string          `json:"tool"`
	Status  string          `json:"status"`
	Summary []string        `json:"summary"`
	Code    string          `json:"code"`
	Payload json.RawMessage `json:"payload"`
}

func newTestTools(t *testing.T) (*tools, string) {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "app", "models", "user.ts")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(userModel), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	p := compiler.NewPipeline(compiler.PipelineOptions{
		AppRoot:   root,
		ModelsDir: "app/models",
		Paths:     emitter.DefaultPaths(),
	})
	return &tools{pipeline: p}, root
}

func call(t *testing.T, h toolHandler, name string, args map[string]any) (*mcp.CallToolResult, testReport) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := safeInvokeTool(context.Background(), name, func() (*mcp.CallToolResult, error) {
		return h(context.Background(), req)
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %#v", res.Content[0])
	}
	var report testReport
	if err := json.Unmarshal([]byte(tc.Text), &report); err != nil {
		t.Fatalf("decode report %q: %v", tc.Text, err)
	}
	return res, report
}

func TestInspect(t *testing.T) {
	t.Parallel()
	tl, _ := newTestTools(t)

	res, report := call(t, tl.inspect, "dtogen_inspect_model", map[string]any{"name": "users"})
	assert.False(t, res.IsError)
	assert.Equal(t, "ok", report.Status)

	var model ir.ModelInfo
	require.NoError(t, json.Unmarshal(report.Payload, &model))
	assert.Equal(t, "User", model.Name)
	require.Len(t, model.Properties, 2)
	assert.True(t, model.Properties[1].IsOptionallyModified)
}

func TestInspect_Unreadable(t *testing.T) {
	t.Parallel()
	tl, _ := newTestTools(t)

	res, report := call(t, tl.inspect, "dtogen_inspect_model", map[string]any{"name": "ghost"})
	assert.False(t, res.IsError)
	assert.Equal(t, "unreadable", report.Status)
	require.Len(t, report.Summary, 1)
	assert.Contains(t, report.Summary[0], "ghost.ts")
}

func TestInspect_RejectsEscapingName(t *testing.T) {
	t.Parallel()
	tl, _ := newTestTools(t)

	for _, name := range []string{"", "../secret", "/etc/passwd", "a/../../b"} {
		res, report := call(t, tl.inspect, "dtogen_inspect_model", map[string]any{"name": name})
		assert.True(t, res.IsError, name)
		assert.Equal(t, "error", report.Status, name)
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()
	tl, root := newTestTools(t)

	_, report := call(t, tl.preview, "dtogen_preview", map[string]any{"name": "user", "kind": "validator"})
	assert.Equal(t, "ok", report.Status)
	var payload PreviewPayload
	require.NoError(t, json.Unmarshal(report.Payload, &payload))
	assert.Equal(t, "validator", payload.Kind)
	assert.Equal(t, "app/validators/user.ts", payload.Path)
	assert.Contains(t, payload.Source, "age: vine.number().optional(),")

	_, err := os.Stat(filepath.Join(root, "app", "validators"))
	assert.True(t, os.IsNotExist(err))
}

func TestPreview_InlineSource(t *testing.T) {
	t.Parallel()
	tl, _ := newTestTools(t)

	source := "export default class Tag extends BaseModel {\n  declare label: string\n}\n"
	_, report := call(t, tl.preview, "dtogen_preview", map[string]any{"name": "tag", "source": source})
	var payload PreviewPayload
	require.NoError(t, json.Unmarshal(report.Payload, &payload))
	assert.Equal(t, "dto", payload.Kind)
	assert.Equal(t, "app/dtos/tag.ts", payload.Path)
	assert.Contains(t, payload.Source, "export default class TagDto extends BaseModelDto {")
	assert.Contains(t, payload.Source, "declare label: string")
}

func TestPreview_BadKind(t *testing.T) {
	t.Parallel()
	tl, _ := newTestTools(t)

	res, report := call(t, tl.preview, "dtogen_preview", map[string]any{"name": "user", "kind": "model"})
	assert.True(t, res.IsError)
	assert.Contains(t, strings.Join(report.Summary, " "), "kind must be")
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	tl, root := newTestTools(t)

	_, report := call(t, tl.generate, "dtogen_generate", map[string]any{"validator": true, "dry_run": true})
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, []string{"create app/dtos/user.ts", "create app/validators/user.ts"}, report.Summary)
	_, err := os.Stat(filepath.Join(root, "app", "dtos", "user.ts"))
	assert.True(t, os.IsNotExist(err), "dry run must not write")

	_, report = call(t, tl.generate, "dtogen_generate", map[string]any{"name": "user"})
	assert.Equal(t, []string{"create app/dtos/user.ts"}, report.Summary)
	_, err = os.Stat(filepath.Join(root, "app", "dtos", "user.ts"))
	assert.NoError(t, err)

	_, report = call(t, tl.generate, "dtogen_generate", map[string]any{"name": "user"})
	assert.Equal(t, []string{"unchanged app/dtos/user.ts"}, report.Summary)
}

func TestGenerate_UnreadableExplicitModel(t *testing.T) {
	t.Parallel()
	tl, _ := newTestTools(t)

	res, report := call(t, tl.generate, "dtogen_generate", map[string]any{"name": "summary", "model": "ghost"})
	assert.True(t, res.IsError)
	assert.Equal(t, compiler.ErrCodeSourceUnreadable, report.Code)
}

func TestSafeInvokeTool_Panic(t *testing.T) {
	res, err := safeInvokeTool(context.Background(), "dtogen_preview", func() (*mcp.CallToolResult, error) {
		panic("boom")
	})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %#v", res.Content[0])
	}
	if !strings.Contains(tc.Text, "tool panic: boom") {
		t.Fatalf("expected panic message, got %s", tc.Text)
	}
}

func TestNewServer_ListsTools(t *testing.T) {
	tl, _ := newTestTools(t)
	s := NewServer(tl.pipeline)

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{"dtogen_inspect_model", "dtogen_preview", "dtogen_generate"} {
		assert.Contains(t, string(b), name)
	}
}

func TestAddDtoPrompt(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Name = "dtogen/add-dto"
	req.Params.Arguments = map[string]string{"model": "user", "validator": "yes"}

	res, err := addDtoPrompt(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, tc.Text, "validator=true")

	req.Params.Arguments = map[string]string{}
	_, err = addDtoPrompt(context.Background(), req)
	assert.Error(t, err)
}
