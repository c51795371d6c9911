// Package emitter synthesizes DTO and validator artifacts from introspected
// models, renders them through templates and writes them under the app root.
package emitter

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/strogmv/dtogen/compiler/ir"
)

// Action is what happened (or would happen, in a dry run) to an output file.
type Action string

const (
	ActionCreate    Action = "create"
	ActionSkip      Action = "skip"
	ActionUpdate    Action = "update"
	ActionUnchanged Action = "unchanged"
)

// Artifact kinds.
const (
	KindDto       = "dto"
	KindValidator = "validator"
)

// Result reports one emitted file.
type Result struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Action Action `json:"action"`
}

// Emitter renders artifacts and writes them relative to Root.
type Emitter struct {
	Root         string
	ModelsDir    string // used to derive nested model import paths
	TemplatesDir string // optional template overrides
	Paths        Paths
	Force        bool
	DryRun       bool
}

func New(root string, paths Paths) *Emitter {
	return &Emitter{
		Root:  root,
		Paths: paths,
	}
}

// EmitDto renders and writes one DTO.
func (e *Emitter) EmitDto(dto ir.DtoInfo, model ir.ModelInfo, imports []string) (Result, error) {
	content, err := e.RenderDto(dto, model, imports)
	if err != nil {
		return Result{}, err
	}
	action, err := e.Write(dto.ExportPath, content)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: KindDto, Path: dto.ExportPath, Action: action}, nil
}

// EmitValidator renders and writes one validator.
func (e *Emitter) EmitValidator(v ir.ValidatorInfo, model ir.ModelInfo, imports []string) (Result, error) {
	content, err := e.RenderValidator(v, model, imports)
	if err != nil {
		return Result{}, err
	}
	action, err := e.Write(v.ExportPath, content)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: KindValidator, Path: v.ExportPath, Action: action}, nil
}

// Write stores content at the root-relative slash path rel. Existing files
// are left alone unless Force is set; identical content is never rewritten.
func (e *Emitter) Write(rel string, content []byte) (Action, error) {
	target := filepath.Join(e.Root, filepath.FromSlash(rel))

	existing, err := os.ReadFile(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if e.DryRun {
			return ActionCreate, nil
		}
		return ActionCreate, writeFileAtomic(target, content)
	case err != nil:
		return "", fmt.Errorf("read %s: %w", rel, err)
	case bytes.Equal(existing, content):
		return ActionUnchanged, nil
	case !e.Force:
		return ActionSkip, nil
	case e.DryRun:
		return ActionUpdate, nil
	default:
		return ActionUpdate, writeFileAtomic(target, content)
	}
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
