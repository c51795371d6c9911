package emitter

import (
	"strings"

	"github.com/strogmv/dtogen/compiler/ir"
	"github.com/strogmv/dtogen/compiler/parser"
	"github.com/strogmv/dtogen/compiler/pkg/names"
)

// ResolveImports computes the import statements a generated artifact needs,
// reusing the model file's own imports where a property type matches one.
// Statements are grouped by namespace in first-seen order.
func ResolveImports(artifact ir.Artifact, lines []string) []string {
	return ResolveImportsIn(artifact, lines, DefaultPaths().DtosNamespace)
}

// ResolveImportsIn is ResolveImports with a custom DTO namespace.
func ResolveImportsIn(artifact ir.Artifact, lines []string, dtosNamespace string) []string {
	importLines := ParseImportLines(lines)

	var imports []ir.ImportMap
	for _, prop := range artifact.ArtifactProperties() {
		for _, t := range prop.TypeRaw {
			if t.IsRelationship && t.Dto != "" {
				imports = append(imports, ir.ImportMap{
					Name:      t.Dto,
					Namespace: dtoNamespace(dtosNamespace, t.Dto),
					IsDefault: true,
				})
			}
		}
		if match, ok := matchImport(prop, importLines); ok {
			imports = append(imports, match)
		}
	}

	self := artifact.ArtifactClassName()
	kept := imports[:0]
	for _, imp := range imports {
		if imp.Name != self {
			kept = append(kept, imp)
		}
	}

	return buildImportStatements(kept)
}

// ParseImportLines recovers the import statements of a model file.
func ParseImportLines(lines []string) []ir.ImportLine {
	var out []ir.ImportLine
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "import ") {
			continue
		}
		part, namespace, _ := strings.Cut(strings.TrimPrefix(trimmed, "import "), "from ")
		part = strings.TrimSpace(part)
		part = strings.TrimSpace(strings.TrimPrefix(part, "type "))

		defaultPart, namedPart, _ := strings.Cut(part, "{")
		defaultPart = strings.TrimSpace(defaultPart)
		if alias, ok := strings.CutPrefix(defaultPart, "* as "); ok {
			defaultPart = alias
		}

		var named []string
		if namedPart != "" {
			namedPart, _, _ = strings.Cut(namedPart, "}")
			for _, n := range strings.Split(namedPart, ",") {
				n = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(n), "type "))
				if n != "" {
					named = append(named, n)
				}
			}
		}

		out = append(out, ir.ImportLine{
			Name:      parser.CleanDefinition(defaultPart),
			Names:     named,
			Namespace: parser.CleanDefinition(namespace),
			Line:      line,
		})
	}
	return out
}

// matchImport finds the import that provides one of the property's type
// tokens: a default import first, then the first named import.
func matchImport(prop ir.ArtifactProperty, lines []ir.ImportLine) (ir.ImportMap, bool) {
	types := map[string]bool{}
	for _, tok := range strings.Split(prop.Type, "|") {
		if tok = strings.TrimSpace(tok); tok != "" {
			types[tok] = true
		}
	}

	for _, line := range lines {
		if line.Name != "" && types[line.Name] {
			return ir.ImportMap{Name: line.Name, Namespace: line.Namespace, IsDefault: true}, true
		}
	}
	for _, line := range lines {
		for _, name := range line.Names {
			if types[name] {
				return ir.ImportMap{Name: name, Namespace: line.Namespace}, true
			}
		}
	}
	return ir.ImportMap{}, false
}

func buildImportStatements(imports []ir.ImportMap) []string {
	var order []string
	groups := map[string][]ir.ImportMap{}
	for _, imp := range imports {
		group, seen := groups[imp.Namespace]
		if !seen {
			order = append(order, imp.Namespace)
		}
		duplicate := false
		for _, existing := range group {
			if existing.Name == imp.Name {
				duplicate = true
				break
			}
		}
		if !duplicate {
			group = append(group, imp)
		}
		groups[imp.Namespace] = group
	}

	statements := make([]string, 0, len(order))
	for _, ns := range order {
		var defaultName string
		var named []string
		for _, imp := range groups[ns] {
			switch {
			case imp.IsDefault && defaultName == "":
				defaultName = imp.Name
			case !imp.IsDefault:
				named = append(named, imp.Name)
			}
		}

		var parts []string
		if defaultName != "" {
			parts = append(parts, defaultName)
		}
		if len(named) > 0 {
			parts = append(parts, "{ "+strings.Join(named, ", ")+" }")
		}
		statements = append(statements, "import "+strings.Join(parts, ", ")+" from '"+ns+"'")
	}
	return statements
}

// dtoNamespace maps "AccountTypeDto" to "#dtos/account_type".
func dtoNamespace(base, dto string) string {
	return base + "/" + strings.Replace(names.SnakeCase(dto), "_dto", "", 1)
}
