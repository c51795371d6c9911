package emitter

import (
	"path"
	"strings"

	"github.com/strogmv/dtogen/compiler/ir"
	"github.com/strogmv/dtogen/compiler/pkg/names"
)

// Paths holds the project-relative locations and import namespaces used when
// synthesizing artifacts.
type Paths struct {
	DtosDir         string
	ValidatorsDir   string
	ModelsNamespace string
	DtosNamespace   string
	BaseDtoPackage  string
}

// DefaultPaths matches a stock AdonisJS application layout.
func DefaultPaths() Paths {
	return Paths{
		DtosDir:         "app/dtos",
		ValidatorsDir:   "app/validators",
		ModelsNamespace: "#models",
		DtosNamespace:   "#dtos",
		BaseDtoPackage:  "@adocasts.com/dto/base",
	}
}

// BuildDtoInfo derives the DTO for model under the requested name. The
// identity comes from name alone; an unreadable model yields no properties.
func BuildDtoInfo(name string, model ir.ModelInfo, paths Paths) ir.DtoInfo {
	entity := names.CreateEntity(withSuffix(name, "dto"))
	fileName := trimArtifactFileName(entity.Name, "_dto")

	info := ir.DtoInfo{
		Entity:     entity,
		Variable:   names.CamelCase(names.StripExtension(name)),
		ClassName:  names.ModelName(entity.Name),
		FileName:   fileName,
		ExportPath: path.Join(paths.DtosDir, entity.Path, fileName+".ts"),
		Properties: []ir.DtoProperty{},
	}
	if !model.IsReadable {
		return info
	}

	info.Properties = ir.FromArray(model.Properties, func(p ir.ModelProperty) ir.DtoProperty {
		return buildDtoProperty(p, model)
	})
	return info
}

func buildDtoProperty(p ir.ModelProperty, model ir.ModelInfo) ir.DtoProperty {
	typeRaw := dtoTypes(p)
	typ := joinTypes(typeRaw, ir.PropertyType.Token)
	return ir.DtoProperty{
		Name:        p.Name,
		Type:        typ,
		TypeRaw:     typeRaw,
		Declaration: dtoDeclaration(p, typ),
		ValueSetter: dtoValueSetter(p, model),
	}
}

// dtoTypes normalizes a property's variants for the DTO. Relations collapse
// to their DTO type; singular ones may be unloaded and so gain null.
func dtoTypes(p ir.ModelProperty) []ir.PropertyType {
	if p.Relation != nil && p.Relation.DtoType != "" {
		types := []ir.PropertyType{*p.Relation}
		if !p.Relation.IsPlural {
			types = append(types, ir.PropertyType{Type: ir.TypeNull})
		}
		return types
	}

	return ir.FromArray(p.Types, func(t ir.PropertyType) ir.PropertyType {
		if t.Type == ir.TypeDateTime {
			t.Type = ir.TypeString
		}
		return t
	})
}

func dtoDeclaration(p ir.ModelProperty, typ string) string {
	if p.DefaultValue == "" {
		marker := ""
		if p.IsOptionallyModified {
			marker = "?"
		}
		return "declare " + p.Name + marker + ": " + typ
	}
	return p.Name + ": " + typ + " = " + p.DefaultValue
}

func dtoValueSetter(p ir.ModelProperty, model ir.ModelInfo) string {
	accessor := model.Variable + "." + p.Name

	if rel := p.Relation; rel != nil && rel.Model != "" {
		if rel.IsPlural {
			return rel.Dto + ".fromArray(" + accessor + ")"
		}
		return accessor + " && new " + rel.Dto + "(" + accessor + ")"
	}

	if p.HasType(ir.TypeDateTime) {
		switch {
		case p.IsOptional():
			return accessor + "?.toISO()"
		case p.IsNullable():
			return accessor + "?.toISO() ?? null"
		default:
			return accessor + ".toISO()!"
		}
	}

	return accessor
}

func joinTypes(types []ir.PropertyType, token func(ir.PropertyType) string) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, token(t))
	}
	return strings.Join(parts, " | ")
}

// withSuffix appends "_suffix" unless name already ends with it (any case).
func withSuffix(name, suffix string) string {
	name = names.StripExtension(name)
	if strings.HasSuffix(strings.ToLower(name), suffix) {
		return name
	}
	return name + "_" + suffix
}

// trimArtifactFileName turns "user_dto" into "user".
func trimArtifactFileName(entityName, suffix string) string {
	fileName := strings.TrimSuffix(names.ModelFileName(entityName), ".ts")
	return strings.Replace(fileName, suffix, "", 1)
}

// ModelNameFor strips an artifact suffix so "UserDto" and "user_validator"
// both look up the "user" model.
func ModelNameFor(name string) string {
	name = names.StripExtension(name)
	lower := strings.ToLower(name)
	for _, suffix := range []string{"validator", "dto"} {
		if strings.HasSuffix(lower, suffix) && len(name) > len(suffix) {
			return strings.TrimRight(name[:len(name)-len(suffix)], "_-. ")
		}
	}
	return name
}
