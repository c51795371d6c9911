// Package names converts raw artifact names into the class, variable and file
// forms used by generated TypeScript sources.
package names

import (
	"path"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"

	"github.com/strogmv/dtogen/compiler/ir"
)

// sourceExtensions are stripped before a name is cased.
var sourceExtensions = []string{".ts", ".js"}

// Words splits a name on separators and case boundaries.
// "accountTypeID" -> account, Type, ID; "user_dto" -> user, dto.
func Words(name string) []string {
	runes := []rune(name)
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i, r := range runes {
		if r == '_' || r == '.' || r == '-' || r == ' ' || r == '/' {
			flush()
			continue
		}

		if i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				// Boundary before last upper when next is lower: "URLPath" -> "URL", "Path"
				flush()
			}
		}

		current.WriteRune(r)
	}
	flush()

	return words
}

// PascalCase joins words with each one title-cased: "user_dto" -> "UserDto".
func PascalCase(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = title(strings.ToLower(w))
	}
	return strings.Join(words, "")
}

// CamelCase is PascalCase with a lowercase first word: "some_test" -> "someTest".
func CamelCase(name string) string {
	words := Words(name)
	if len(words) == 0 {
		return ""
	}
	words[0] = strings.ToLower(words[0])
	for i := 1; i < len(words); i++ {
		words[i] = title(strings.ToLower(words[i]))
	}
	return strings.Join(words, "")
}

// SnakeCase lowercases words and joins them with underscores: "PostDto" -> "post_dto".
func SnakeCase(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// ModelName is the canonical model class name: singular PascalCase without a
// trailing "model" word or file extension. "account_types" -> "AccountType".
func ModelName(name string) string {
	return PascalCase(strings.Join(modelWords(name), "_"))
}

// ModelFileName is the model's file name: "AccountTypes" -> "account_type.ts".
func ModelFileName(name string) string {
	return SnakeCase(strings.Join(modelWords(name), "_")) + ".ts"
}

func modelWords(name string) []string {
	words := Words(StripExtension(name))
	if n := len(words); n > 1 && strings.EqualFold(words[n-1], "model") {
		words = words[:n-1]
	}
	if n := len(words); n > 0 {
		words[n-1] = inflection.Singular(words[n-1])
	}
	return words
}

// StripExtension removes a trailing .ts/.js extension.
func StripExtension(name string) string {
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// CreateEntity splits "admin/user_dto" into its directory and base name.
func CreateEntity(name string) ir.Entity {
	name = StripExtension(strings.ReplaceAll(name, "\\", "/"))
	dir, base := path.Split(name)
	return ir.Entity{
		Path: strings.Trim(dir, "/"),
		Name: base,
	}
}

func title(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
