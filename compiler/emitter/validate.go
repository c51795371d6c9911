package emitter

import (
	"path"
	"strings"

	"github.com/strogmv/dtogen/compiler/ir"
	"github.com/strogmv/dtogen/compiler/pkg/names"
)

// BuildValidatorInfo derives the VineJS validator for model under the
// requested name. An unreadable model yields no properties.
func BuildValidatorInfo(name string, model ir.ModelInfo, paths Paths) ir.ValidatorInfo {
	entity := names.CreateEntity(withSuffix(name, "validator"))
	fileName := trimArtifactFileName(entity.Name, "_validator")

	info := ir.ValidatorInfo{
		Entity:     entity,
		Variable:   names.CamelCase(ModelNameFor(names.CreateEntity(name).Name)) + "Validator",
		ClassName:  names.ModelName(entity.Name),
		FileName:   fileName,
		ExportPath: path.Join(paths.ValidatorsDir, entity.Path, fileName+".ts"),
		Properties: []ir.ValidatorProperty{},
	}
	if !model.IsReadable {
		return info
	}

	info.Properties = ir.FromArray(model.Properties, buildValidatorProperty)
	return info
}

func buildValidatorProperty(p ir.ModelProperty) ir.ValidatorProperty {
	typeRaw := validatorTypes(p)
	return ir.ValidatorProperty{
		Name:           p.Name,
		Type:           joinTypes(typeRaw, func(t ir.PropertyType) string { return t.Type }),
		TypeRaw:        typeRaw,
		ValidationRule: ValidationRule(p, typeRaw),
	}
}

func validatorTypes(p ir.ModelProperty) []ir.PropertyType {
	if p.Relation != nil {
		types := []ir.PropertyType{*p.Relation}
		if !p.Relation.IsPlural {
			types = append(types, ir.PropertyType{Type: ir.TypeNull})
		}
		return types
	}
	return append([]ir.PropertyType{}, p.Types...)
}

// ValidationRule maps a property to its VineJS rule expression.
func ValidationRule(p ir.ModelProperty, types []ir.PropertyType) string {
	if rel := p.Relation; rel != nil {
		if rel.IsPlural {
			return "vine.array(vine.object({}))"
		}
		return "vine.object({})"
	}

	optional := p.IsOptionallyModified
	var primary *ir.PropertyType
	for i := range types {
		if ir.IsMissingValue(types[i].Type) {
			optional = true
			continue
		}
		if primary == nil {
			primary = &types[i]
		}
	}

	rule := primitiveRule(primary)
	if optional {
		rule += ".optional()"
	}
	return rule
}

func primitiveRule(primary *ir.PropertyType) string {
	if primary == nil {
		return "vine.string()"
	}
	switch primary.Type {
	case ir.TypeString:
		return "vine.string().trim()"
	case ir.TypeNumber:
		return "vine.number()"
	case ir.TypeBoolean:
		return "vine.boolean()"
	case ir.TypeDate:
		return "vine.date()"
	case ir.TypeDateTime:
		return "vine.string().datetime()"
	}
	if strings.Contains(primary.Type, "[]") {
		return "vine.array(vine.any())"
	}
	return "vine.string()"
}
