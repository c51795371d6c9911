package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.AppRoot)
	assert.Equal(t, "app/models", cfg.ModelsDir)
	assert.Equal(t, "#dtos", cfg.DtosNamespace)
	assert.Equal(t, filepath.Join(root, "app/models"), cfg.Resolve(cfg.ModelsDir))
}

func TestLoadProjectFileThenEnv(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, ProjectFile, `
modelsDir:     "src/models"
dtosNamespace: "#contracts"
logFormat:     "json"
concurrency:   2
`)
	t.Setenv("DTOGEN_LOG_FORMAT", "text")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "src/models", cfg.ModelsDir)
	assert.Equal(t, "#contracts", cfg.DtosNamespace)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "text", cfg.LogFormat, "environment wins over the project file")
	assert.Equal(t, "app/dtos", cfg.DtosDir, "unset keys keep their defaults")
}

func TestLoadDotEnv(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, ".env", "DTOGEN_VALIDATORS_DIR=src/validators\n")
	t.Cleanup(func() { os.Unsetenv("DTOGEN_VALIDATORS_DIR") })

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "src/validators", cfg.ValidatorsDir)
}

func TestLoadRejectsUnknownProjectKeys(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, ProjectFile, "modelDir: \"typo\"\n")

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modelDir")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, ProjectFile, "logLevel: \"loud\"\n")

	_, err := Load(root)
	require.Error(t, err)

	t.Setenv("DTOGEN_HTTP_ADDR", "not an address")
	_, err = Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "HTTPAddr"), err.Error())
}

func TestEnvHelpListsVariables(t *testing.T) {
	help := EnvHelp()
	assert.Contains(t, help, "DTOGEN_MODELS_DIR")
	assert.Contains(t, help, "DTOGEN_OTLP_ENDPOINT")
}
