package emitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/dtogen/compiler/parser"
)

func TestRenderDto_Main(t *testing.T) {
	t.Parallel()

	res := introspectUser(t)
	e := New(t.TempDir(), DefaultPaths())
	dto := BuildDtoInfo("user", res.Model, e.Paths)

	out, err := e.RenderDto(dto, res.Model, ResolveImports(dto, res.Lines))
	require.NoError(t, err)

	want := `import { BaseModelDto } from '@adocasts.com/dto/base'
import User from '#models/user'
import PostDto from '#dtos/post'

export default class UserDto extends BaseModelDto {
  declare name: string
  declare email: string | null
  declare posts: PostDto[]

  constructor(user?: User) {
    super()

    if (!user) return
    this.name = user.name
    this.email = user.email
    this.posts = PostDto.fromArray(user.posts)
  }
}
`
	assert.Equal(t, want, string(out))
}

func TestRenderValidator_Main(t *testing.T) {
	t.Parallel()

	res := introspectUser(t)
	e := New(t.TempDir(), DefaultPaths())
	v := BuildValidatorInfo("user", res.Model, e.Paths)

	out, err := e.RenderValidator(v, res.Model, nil)
	require.NoError(t, err)

	want := `import vine from '@vinejs/vine'

export const userValidator = vine.compile(
  vine.object({
    name: vine.string().trim(),
    email: vine.string().trim().optional(),
    posts: vine.array(vine.object({})),
  })
)
`
	assert.Equal(t, want, string(out))
}

func TestRenderDto_PlainForUnreadableModel(t *testing.T) {
	t.Parallel()

	model := parser.Introspect(t.TempDir(), "ghost").Model
	e := New(t.TempDir(), DefaultPaths())

	out, err := e.RenderDto(BuildDtoInfo("ghost", model, e.Paths), model, nil)
	require.NoError(t, err)
	assert.Equal(t, "import { BaseDto } from '@adocasts.com/dto/base'\n\nexport default class GhostDto extends BaseDto {}\n", string(out))
}

func TestWrite_Actions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	e := New(root, DefaultPaths())

	action, err := e.Write("app/dtos/user.ts", []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, action)

	action, err = e.Write("app/dtos/user.ts", []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, ActionUnchanged, action)

	action, err = e.Write("app/dtos/user.ts", []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, ActionSkip, action)

	e.Force = true
	e.DryRun = true
	action, err = e.Write("app/dtos/user.ts", []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, action)
	data, err := os.ReadFile(filepath.Join(root, "app", "dtos", "user.ts"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data), "dry run must not touch the file")

	e.DryRun = false
	action, err = e.Write("app/dtos/user.ts", []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, action)
	data, err = os.ReadFile(filepath.Join(root, "app", "dtos", "user.ts"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestReadTemplate_Override(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dto"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dto", "plain.tmpl"), []byte("// {{ .Dto.ClassName }}\n"), 0o644))

	model := parser.Introspect(t.TempDir(), "ghost").Model
	e := New(t.TempDir(), DefaultPaths())
	e.TemplatesDir = dir

	out, err := e.RenderDto(BuildDtoInfo("ghost", model, e.Paths), model, nil)
	require.NoError(t, err)
	assert.Equal(t, "// GhostDto\n", string(out))

	v, err := e.RenderValidator(BuildValidatorInfo("ghost", model, e.Paths), model, nil)
	require.NoError(t, err)
	assert.Contains(t, string(v), "vine.object({})")
}
