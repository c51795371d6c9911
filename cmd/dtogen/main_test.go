package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/dtogen/compiler"
)

const userModel = `import { BaseModel, column, hasMany } from '@adonisjs/lucid/orm'
import type { HasMany } from '@adonisjs/lucid/types/relations'
import Post from '#models/post'

export default class User extends BaseModel {
  @column()
  declare name: string

  @hasMany(() => Post)
  declare posts: HasMany<typeof Post>
}
`

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "app", "models", "user.ts")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(userModel), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return root
}

func run(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetArgs(append([]string{"--app-root", root}, args...))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(context.Background())
	a.close(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dtogen "+compiler.Version+"\n", out)
}

func TestMakeDto(t *testing.T) {
	root := newProject(t)

	out, err := run(t, root, "make:dto", "user", "--validator")
	require.NoError(t, err)
	assert.Equal(t, "DONE: create app/dtos/user.ts\nDONE: create app/validators/user.ts\n", out)

	content, err := os.ReadFile(filepath.Join(root, "app", "dtos", "user.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "this.posts = PostDto.fromArray(user.posts)")

	out, err = run(t, root, "make:dto", "user")
	require.NoError(t, err)
	assert.Equal(t, "DONE: unchanged app/dtos/user.ts\n", out)
}

func TestMakeDto_UnreadableExplicitModelWarns(t *testing.T) {
	root := newProject(t)

	out, err := run(t, root, "make:dto", "summary", "-m", "ghost")
	require.NoError(t, err)
	assert.Empty(t, out)
	_, statErr := os.Stat(filepath.Join(root, "app", "dtos", "summary.ts"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMakeDto_UnreadableDerivedModelIsPlain(t *testing.T) {
	root := newProject(t)

	out, err := run(t, root, "make:dto", "ghost")
	require.NoError(t, err)
	assert.Equal(t, "DONE: create app/dtos/ghost.ts\n", out)

	content, err := os.ReadFile(filepath.Join(root, "app", "dtos", "ghost.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "export default class GhostDto extends BaseDto {}")
}

func TestMakeValidator_UnreadableExplicitModelFails(t *testing.T) {
	root := newProject(t)

	for _, use := range []string{"make:validator", "make:dto:validator"} {
		_, err := run(t, root, use, "summary", "-m", "ghost")
		require.Error(t, err, use)
		assert.Equal(t, compiler.ErrCodeSourceUnreadable, compiler.ErrorCode(err), use)
	}
}

func TestGenerateDtos_DryRun(t *testing.T) {
	root := newProject(t)

	out, err := run(t, root, "generate:dtos", "--validator", "--dry-run")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "DONE: create app/dtos/user.ts", lines[0])
	assert.Equal(t, "DONE: create app/validators/user.ts", lines[1])
	assert.Equal(t, "dry run: 2 create, 0 update, 0 skip, 0 unchanged; nothing written", lines[2])

	_, statErr := os.Stat(filepath.Join(root, "app", "dtos"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateValidators_HonoursProjectFile(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "dtogen.cue"), []byte(`validatorsDir: "src/validators"`+"\n"), 0o644))

	out, err := run(t, root, "generate:validators")
	require.NoError(t, err)
	assert.Equal(t, "DONE: create src/validators/user.ts\n", out)
}

func TestInspect(t *testing.T) {
	root := newProject(t)

	out, err := run(t, root, "inspect", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "model:     User")
	assert.Contains(t, out, "import PostDto from '#dtos/post'")

	_, err = run(t, root, "inspect", "ghost")
	assert.Equal(t, compiler.ErrCodeSourceUnreadable, compiler.ErrorCode(err))
}

func TestMetricsTextfile(t *testing.T) {
	root := newProject(t)
	t.Setenv("DTOGEN_METRICS_FILE", "metrics.prom")

	_, err := run(t, root, "make:dto", "user")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `dtogen_artifacts_emitted_total{action="create",kind="dto"} 1`)
}

func TestConfigEnvHelp(t *testing.T) {
	out, err := run(t, newProject(t), "config", "--env")
	require.NoError(t, err)
	assert.Contains(t, out, "DTOGEN_MODELS_DIR")
}

func TestInvalidLogLevelFlag(t *testing.T) {
	_, err := run(t, newProject(t), "--log-level", "loud", "make:dto", "user")
	assert.Equal(t, compiler.ErrCodeConfigValidate, compiler.ErrorCode(err))
}
