package parser

import (
	"strings"

	"github.com/strogmv/dtogen/compiler/ir"
)

// relationKinds maps relationship keywords to whether they hold many records.
var relationKinds = []struct {
	keyword string
	plural  bool
}{
	{"BelongsTo", false},
	{"HasOne", false},
	{"HasMany", true},
	{"ManyToMany", true},
	{"HasManyThrough", true},
}

// accessorPrefixes are dropped from the start of a declaration.
var accessorPrefixes = []string{
	"declare ",
	"public ",
	"private ",
	"protected ",
	"readonly ",
	"override ",
}

// RelationKeywords returns the recognized relationship keywords.
func RelationKeywords() []string {
	out := make([]string, 0, len(relationKinds))
	for _, k := range relationKinds {
		out = append(out, k.keyword)
	}
	return out
}

// PluralRelationKeywords returns the keywords whose relation holds a list.
func PluralRelationKeywords() []string {
	var out []string
	for _, k := range relationKinds {
		if k.plural {
			out = append(out, k.keyword)
		}
	}
	return out
}

func lookupRelation(head string) (plural, ok bool) {
	for _, k := range relationKinds {
		if k.keyword == head {
			return k.plural, true
		}
	}
	return false, false
}

// ClassifyDeclaration turns one declaration line into a ModelProperty.
// It never fails: malformed input produces a best-effort record.
func ClassifyDeclaration(line string) ir.ModelProperty {
	body := stripPrefixes(Condense(line), accessorPrefixes)
	body = strings.TrimSpace(strings.TrimSuffix(body, ";"))

	nameSegment, rest := splitNameAndRest(body)
	name := CleanDefinition(nameSegment)

	typeText, value := SplitTypeAndValue(rest)
	if typeText == "" {
		typeText = DefaultType(name)
	}

	var tokens []string
	for _, tok := range splitTopLevel(typeText, '|') {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}

	prop := ir.ModelProperty{
		Name:         name,
		Types:        ir.FromArray(tokens, ClassifyType),
		DefaultValue: value,
	}
	for i := range prop.Types {
		if prop.Types[i].IsRelationship {
			prop.Relation = &prop.Types[i]
			break
		}
	}
	if strings.HasSuffix(strings.TrimSpace(nameSegment), "?") && !prop.HasType(ir.TypeUndefined) {
		prop.IsOptionallyModified = true
	}
	return prop
}

// ClassifyType classifies one union token as a primitive or a relationship.
// "HasMany<typeof Post>" becomes a plural relationship to Post with DTO PostDto.
func ClassifyType(token string) ir.PropertyType {
	token = strings.TrimSpace(token)
	lt := strings.Index(token, "<")
	if lt < 0 {
		return ir.PropertyType{Type: token}
	}

	head := strings.TrimSpace(token[:lt])
	if dot := strings.LastIndex(head, "."); dot >= 0 {
		head = head[dot+1:]
	}
	plural, ok := lookupRelation(head)
	if !ok {
		return ir.PropertyType{Type: token}
	}

	model := relationTarget(token[lt+1:])
	if model == "" {
		return ir.PropertyType{Type: token}
	}

	dto := model
	if !strings.HasSuffix(dto, "Dto") {
		dto += "Dto"
	}
	dtoType := dto
	if plural {
		dtoType += "[]"
	}
	return ir.PropertyType{
		Type:           token,
		DtoType:        dtoType,
		Model:          model,
		Dto:            dto,
		IsRelationship: true,
		IsPlural:       plural,
	}
}

// relationTarget extracts the related model from a generic argument list such
// as "typeof Post>" or "[typeof Post, typeof User]>".
func relationTarget(args string) string {
	if gt := strings.LastIndex(args, ">"); gt >= 0 {
		args = args[:gt]
	}
	args = strings.Trim(strings.TrimSpace(args), "[]")
	first := strings.TrimSpace(splitTopLevel(args, ',')[0])
	first = strings.TrimSpace(strings.TrimPrefix(first, "typeof "))
	if dot := strings.LastIndex(first, "."); dot >= 0 {
		first = first[dot+1:]
	}
	return CleanDefinition(first)
}

// splitNameAndRest splits "name?: type = value" on the first colon. An
// assignment before any colon means the declaration has no type.
func splitNameAndRest(body string) (name, rest string) {
	colon := strings.Index(body, ":")
	eq := assignmentIndex(body)
	switch {
	case colon < 0 && eq < 0:
		return body, ""
	case colon < 0 || (eq >= 0 && eq < colon):
		return body[:eq], body[eq:]
	default:
		return body[:colon], body[colon+1:]
	}
}
