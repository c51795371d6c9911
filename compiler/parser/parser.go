// Package parser recovers property declarations from model source files and
// classifies their types. It works line by line and never builds a syntax tree.
package parser

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/strogmv/dtogen/compiler/ir"
	"github.com/strogmv/dtogen/compiler/pkg/names"
)

// Introspection is the result of analyzing one model.
type Introspection struct {
	Model ir.ModelInfo
	// Lines is the model source split into lines, nil when it could not be read.
	Lines      []string
	Extraction Extraction
}

// CanRead reports whether path is an existing regular file that can be opened.
func CanRead(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return !st.IsDir()
}

// NewModelInfo computes a model's identity from a requested name without
// touching the filesystem. "admin/users" resolves to <modelsDir>/admin/user.ts.
func NewModelInfo(modelsDir, name string) ir.ModelInfo {
	entity := names.CreateEntity(name)
	fileName := names.ModelFileName(entity.Name)
	return ir.ModelInfo{
		Name:       names.ModelName(entity.Name),
		Variable:   names.CamelCase(entity.Name),
		FileName:   fileName,
		FilePath:   filepath.Join(modelsDir, filepath.FromSlash(entity.Path), fileName),
		Properties: []ir.ModelProperty{},
	}
}

// Introspect reads the named model from modelsDir. An unreadable model yields
// IsReadable=false and no properties.
func Introspect(modelsDir, name string) Introspection {
	return introspectInfo(NewModelInfo(modelsDir, name))
}

// IntrospectFile reads a model whose file is already known, given as a slash
// path relative to modelsDir without extension ("admin/users"). Unlike
// Introspect the file name is taken as is.
func IntrospectFile(modelsDir, rel string) Introspection {
	info := NewModelInfo(modelsDir, rel)
	info.FileName = path.Base(rel) + ".ts"
	info.FilePath = filepath.Join(modelsDir, filepath.FromSlash(rel)+".ts")
	return introspectInfo(info)
}

func introspectInfo(info ir.ModelInfo) Introspection {
	if !CanRead(info.FilePath) {
		return Introspection{Model: info, Extraction: Extraction{Start: -1, End: -1}}
	}
	data, err := os.ReadFile(info.FilePath)
	if err != nil {
		return Introspection{Model: info, Extraction: Extraction{Start: -1, End: -1}}
	}
	return IntrospectSource(info, string(data))
}

// IntrospectSource analyzes source text for a model whose identity is already known.
func IntrospectSource(info ir.ModelInfo, source string) Introspection {
	lines := SplitLines(source)
	ex := ExtractDeclarations(lines)

	info.IsReadable = true
	info.Properties = ir.FromArray(ex.Declarations, ClassifyDeclaration)

	return Introspection{
		Model:      info,
		Lines:      lines,
		Extraction: ex,
	}
}

// SplitLines splits text on LF or CRLF line endings.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
