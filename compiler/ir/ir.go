// Package ir defines the records produced by model introspection and consumed
// by the DTO and validator synthesizers.
// Every value here is built once per invocation and never mutated afterwards.
package ir

// ModelInfo is one analyzed source model.
type ModelInfo struct {
	Name       string          `json:"name"`
	Variable   string          `json:"variable"`
	FileName   string          `json:"fileName"`
	FilePath   string          `json:"filePath"`
	IsReadable bool            `json:"isReadable"`
	Properties []ModelProperty `json:"properties"`
}

// ModelProperty is one field of a model.
type ModelProperty struct {
	Name  string         `json:"name"`
	Types []PropertyType `json:"types"`
	// Relation points at the relationship variant in Types, if any.
	Relation             *PropertyType `json:"relation,omitempty"`
	DefaultValue         string        `json:"defaultValue,omitempty"`
	IsOptionallyModified bool          `json:"isOptionallyModified"`
}

// HasType reports whether any variant carries the raw token typ.
func (p ModelProperty) HasType(typ string) bool {
	for _, t := range p.Types {
		if t.Type == typ {
			return true
		}
	}
	return false
}

// IsNullable reports whether the union contains an explicit null.
func (p ModelProperty) IsNullable() bool {
	return p.HasType(TypeNull)
}

// IsOptional reports whether the property may be missing, either through the
// optional marker on its name or an undefined/optional variant.
func (p ModelProperty) IsOptional() bool {
	return p.IsOptionallyModified || p.HasType(TypeUndefined) || p.HasType(TypeOptional)
}

// PropertyType is one variant within a property's type union.
// A variant is either a bare primitive token or a relationship, never both.
type PropertyType struct {
	Type           string `json:"type"`
	DtoType        string `json:"dtoType,omitempty"`
	Model          string `json:"model,omitempty"`
	Dto            string `json:"dto,omitempty"`
	IsRelationship bool   `json:"isRelationship,omitempty"`
	IsPlural       bool   `json:"isPlural,omitempty"`
}

// Token returns the DTO-facing token for relationships and the raw token otherwise.
func (t PropertyType) Token() string {
	if t.DtoType != "" {
		return t.DtoType
	}
	return t.Type
}

// Well-known primitive tokens.
const (
	TypeString    = "string"
	TypeNumber    = "number"
	TypeBoolean   = "boolean"
	TypeNull      = "null"
	TypeUndefined = "undefined"
	TypeOptional  = "optional"
	TypeDate      = "Date"
	TypeDateTime  = "DateTime"
)

// IsMissingValue reports whether typ denotes an absent value.
func IsMissingValue(typ string) bool {
	switch typ {
	case TypeNull, TypeUndefined, TypeOptional:
		return true
	}
	return false
}

// Entity is the path/name split of a requested artifact name ("admin/user" -> admin, user).
type Entity struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// DtoInfo describes a DTO file to be generated.
type DtoInfo struct {
	Entity     Entity        `json:"entity"`
	Variable   string        `json:"variable"`
	ClassName  string        `json:"className"`
	FileName   string        `json:"fileName"`
	ExportPath string        `json:"exportPath"`
	Properties []DtoProperty `json:"properties"`
}

// DtoProperty is one DTO field with its class declaration and constructor setter.
type DtoProperty struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	TypeRaw     []PropertyType `json:"typeRaw"`
	Declaration string         `json:"declaration"`
	ValueSetter string         `json:"valueSetter"`
}

// ValidatorInfo describes a validator file to be generated.
type ValidatorInfo struct {
	Entity     Entity              `json:"entity"`
	Variable   string              `json:"variable"`
	ClassName  string              `json:"className"`
	FileName   string              `json:"fileName"`
	ExportPath string              `json:"exportPath"`
	Properties []ValidatorProperty `json:"properties"`
}

// ValidatorProperty is one validated field.
type ValidatorProperty struct {
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	TypeRaw        []PropertyType `json:"typeRaw"`
	ValidationRule string         `json:"validationRule"`
}

// ArtifactProperty is the view of a generated property the import resolver needs.
type ArtifactProperty struct {
	Name    string
	Type    string
	TypeRaw []PropertyType
}

// Artifact is implemented by both generated artifact kinds.
type Artifact interface {
	ArtifactClassName() string
	ArtifactProperties() []ArtifactProperty
}

func (d DtoInfo) ArtifactClassName() string { return d.ClassName }

func (d DtoInfo) ArtifactProperties() []ArtifactProperty {
	return FromArray(d.Properties, func(p DtoProperty) ArtifactProperty {
		return ArtifactProperty{Name: p.Name, Type: p.Type, TypeRaw: p.TypeRaw}
	})
}

func (v ValidatorInfo) ArtifactClassName() string { return v.ClassName }

func (v ValidatorInfo) ArtifactProperties() []ArtifactProperty {
	return FromArray(v.Properties, func(p ValidatorProperty) ArtifactProperty {
		return ArtifactProperty{Name: p.Name, Type: p.Type, TypeRaw: p.TypeRaw}
	})
}

// ImportMap is one resolved import obligation.
type ImportMap struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	IsDefault bool   `json:"isDefault"`
}

// ImportLine is one import statement recovered from a model file.
type ImportLine struct {
	Name      string   `json:"name"`
	Names     []string `json:"names"`
	Namespace string   `json:"namespace"`
	Line      string   `json:"line"`
}

// FromArray builds one D per source, in order. A nil input yields an empty slice.
func FromArray[S, D any](sources []S, build func(S) D) []D {
	out := make([]D, 0, len(sources))
	for _, src := range sources {
		out = append(out, build(src))
	}
	return out
}
