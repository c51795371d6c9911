package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// definitionNoise is removed from name-like fragments.
var definitionNoise = strings.NewReplacer(
	"(", "", ")", "",
	"{", "", "}", "",
	"?", "", "!", "",
	"'", "", `"`, "", "`", "",
	";", "",
)

// Condense collapses whitespace runs into single spaces and trims the result.
func Condense(line string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
}

// CleanDefinition strips declaration syntax noise (getter marker, parens,
// braces, optional/definite markers, quotes) from a fragment, leaving a bare
// identifier or module path.
func CleanDefinition(part string) string {
	part = strings.TrimSpace(part)
	part = strings.TrimPrefix(part, "get ")
	part = definitionNoise.Replace(part)
	part = strings.TrimSpace(part)
	return strings.TrimSpace(strings.TrimRight(part, ","))
}

// SplitTypeAndValue splits a "type = defaultValue" fragment on its first
// assignment. Arrow tokens ("=>") inside the type are not assignments.
func SplitTypeAndValue(part string) (typeText, value string) {
	idx := assignmentIndex(part)
	if idx < 0 {
		return cleanType(part), ""
	}
	value = strings.TrimSpace(part[idx+1:])
	value = strings.TrimSpace(strings.TrimSuffix(value, ";"))
	return cleanType(part[:idx]), value
}

// DefaultType infers a type for declarations without one: "isActive" is a
// boolean, anything else is text.
func DefaultType(name string) string {
	if rest, ok := strings.CutPrefix(name, "is"); ok {
		if rest == "" {
			return "string"
		}
		r := []rune(rest)[0]
		if unicode.IsUpper(r) || r == '_' {
			return "boolean"
		}
	}
	return "string"
}

func cleanType(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	// getter opening brace
	text = strings.TrimSuffix(strings.TrimSpace(text), "{")
	return strings.TrimSpace(text)
}

func assignmentIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i+1 < len(s) && (s[i+1] == '>' || s[i+1] == '=') {
			i++
			continue
		}
		if i > 0 && (s[i-1] == '!' || s[i-1] == '<' || s[i-1] == '>') {
			continue
		}
		return i
	}
	return -1
}

// splitTopLevel splits s on sep, ignoring separators nested in <>, (), [] or {}.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<', '(', '[', '{':
			depth++
		case '>':
			// arrow types ("=>") do not close a generic
			if i > 0 && s[i-1] == '=' {
				continue
			}
			depth--
		case ')', ']', '}':
			depth--
		case sep:
			if depth <= 0 {
				parts = append(parts, s[start:i])
				start = i + len(string(sep))
			}
		}
	}
	return append(parts, s[start:])
}

// braceDelta counts opening minus closing braces outside of string literals.
func braceDelta(line string) int {
	return balance(line, '{', '}')
}

// parenDelta counts opening minus closing parentheses outside of string literals.
func parenDelta(line string) int {
	return balance(line, '(', ')')
}

func balance(line string, opening, closing rune) int {
	delta := 0
	var quote rune
	escaped := false
	for _, r := range line {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
		case opening:
			delta++
		case closing:
			delta--
		}
	}
	return delta
}
