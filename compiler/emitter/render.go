package emitter

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/strogmv/dtogen/compiler/ir"
	"github.com/strogmv/dtogen/templates"
)

// Template names, relative to the templates root.
const (
	TemplateDtoMain        = "dto/main.tmpl"
	TemplateDtoPlain       = "dto/plain.tmpl"
	TemplateValidatorMain  = "validator/main.tmpl"
	TemplateValidatorPlain = "validator/plain.tmpl"
)

// DtoTemplateData is the view passed to the dto templates.
type DtoTemplateData struct {
	Dto         ir.DtoInfo
	Model       ir.ModelInfo
	ModelImport string
	Imports     []string
	Paths       Paths
}

// ValidatorTemplateData is the view passed to the validator templates.
type ValidatorTemplateData struct {
	Validator   ir.ValidatorInfo
	Model       ir.ModelInfo
	ModelImport string
	Imports     []string
	Paths       Paths
}

// ReadTemplate reads a template from the override directory when one is set,
// then from the embedded FS.
func (e *Emitter) ReadTemplate(name string) ([]byte, error) {
	if e.TemplatesDir != "" {
		content, err := os.ReadFile(filepath.Join(e.TemplatesDir, filepath.FromSlash(name)))
		if err == nil {
			return content, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return templates.FS.ReadFile(name)
}

func (e *Emitter) render(name string, data any) ([]byte, error) {
	content, err := e.ReadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	t, err := template.New(path.Base(name)).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// RenderDto renders the DTO source. Unreadable models use the plain template.
func (e *Emitter) RenderDto(dto ir.DtoInfo, model ir.ModelInfo, imports []string) ([]byte, error) {
	name := TemplateDtoMain
	if !model.IsReadable {
		name = TemplateDtoPlain
	}
	return e.render(name, DtoTemplateData{
		Dto:         dto,
		Model:       model,
		ModelImport: e.modelImport(model),
		Imports:     imports,
		Paths:       e.Paths,
	})
}

// RenderValidator renders the validator source. Unreadable models use the plain template.
func (e *Emitter) RenderValidator(v ir.ValidatorInfo, model ir.ModelInfo, imports []string) ([]byte, error) {
	name := TemplateValidatorMain
	if !model.IsReadable {
		name = TemplateValidatorPlain
	}
	return e.render(name, ValidatorTemplateData{
		Validator:   v,
		Model:       model,
		ModelImport: e.modelImport(model),
		Imports:     imports,
		Paths:       e.Paths,
	})
}

// modelImport is the aliased import path of a model, e.g. "#models/admin/user".
func (e *Emitter) modelImport(model ir.ModelInfo) string {
	base := strings.TrimSuffix(model.FileName, ".ts")
	dir := ""
	if e.ModelsDir != "" {
		if rel, err := filepath.Rel(e.ModelsDir, filepath.Dir(model.FilePath)); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			dir = filepath.ToSlash(rel)
		}
	}
	return path.Join(e.Paths.ModelsNamespace, dir, base)
}
