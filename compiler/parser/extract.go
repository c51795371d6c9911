package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// class keyword at statement start of a condensed line
	classMarker = regexp.MustCompile(`^(export\s+(default\s+)?)?(declare\s+)?(abstract\s+)?class\s+[A-Za-z_$][\w$]*`)
	// identifier directly followed by an argument list (optionally generic)
	methodHead = regexp.MustCompile(`^[A-Za-z_$][\w$]*\s*(<[^>]*>)?\s*\(`)
)

// Declaration prefixes that mark a class member as a candidate.
var candidatePrefixes = []string{
	"declare ",
	"public ",
	"private ",
	"protected ",
	"readonly ",
	"get ",
}

// Modifiers skipped when deciding whether a member is a method.
var memberModifiers = []string{
	"declare ",
	"public ",
	"private ",
	"protected ",
	"readonly ",
	"override ",
	"abstract ",
	"async ",
}

// Extraction is the declaration set recovered from one class body.
type Extraction struct {
	// Declarations holds whitespace-condensed member lines in source order.
	Declarations []string
	// Lines is the unmodified input.
	Lines []string
	// Start and End are the class marker line and the closing brace line,
	// both -1 when no class body was found.
	Start int
	End   int
}

// Empty reports whether no class body was recognized.
func (e Extraction) Empty() bool {
	return e.Start < 0 || e.End < 0
}

// ExtractDeclarations scans lines for the class body and returns the member
// lines that declare properties or getters. Nested blocks (getter bodies,
// multi-line decorator arguments, methods) are skipped by brace balance.
func ExtractDeclarations(lines []string) Extraction {
	ex := Extraction{Lines: lines, Start: -1, End: -1}

	start := -1
	for i, raw := range lines {
		line := Condense(raw)
		if isComment(line) {
			continue
		}
		if classMarker.MatchString(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return ex
	}

	end := -1
	for i := len(lines) - 1; i > start; i-- {
		if Condense(lines[i]) == "}" {
			end = i
			break
		}
	}
	if end < 0 {
		return ex
	}
	ex.Start, ex.End = start, end

	depth := 0
	// open parentheses of a member signature spanning several lines
	parens := 0
	// class opening brace on its own line
	openPending := !strings.HasSuffix(Condense(lines[start]), "{")
	for _, raw := range lines[start+1 : end] {
		line := Condense(raw)
		if line == "" {
			continue
		}
		if openPending {
			openPending = false
			if line == "{" {
				continue
			}
		}
		if depth > 0 {
			depth += braceDelta(line)
			if depth < 0 {
				depth = 0
			}
			continue
		}
		if parens > 0 {
			parens += parenDelta(line)
			if parens > 0 {
				continue
			}
			parens = 0
			// ") {" closes the signature and opens the body
			depth = openedBlock(line)
			continue
		}

		if member := stripDecorators(line); member != "" && isCandidate(member) && !isMethod(member) {
			ex.Declarations = append(ex.Declarations, member)
		}
		if d := openedBlock(line); d > 0 {
			depth = d
		} else if p := parenDelta(line); p > 0 {
			parens = p
		}
	}

	return ex
}

// openedBlock returns the brace depth a line ending in "{" leaves open.
func openedBlock(line string) int {
	if !strings.HasSuffix(line, "{") {
		return 0
	}
	return max(braceDelta(line), 0)
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "*")
}

func isCandidate(line string) bool {
	for _, prefix := range candidatePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	if strings.HasPrefix(line, "static ") || strings.HasPrefix(line, "set ") {
		return false
	}
	r := []rune(line)[0]
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isMethod(line string) bool {
	body := stripPrefixes(line, memberModifiers)
	if strings.HasPrefix(body, "get ") {
		return false
	}
	if strings.HasPrefix(body, "constructor") {
		return true
	}
	return methodHead.MatchString(body)
}

func stripPrefixes(line string, prefixes []string) string {
	for {
		trimmed := false
		for _, prefix := range prefixes {
			if rest, ok := strings.CutPrefix(line, prefix); ok {
				line = strings.TrimSpace(rest)
				trimmed = true
			}
		}
		if !trimmed {
			return line
		}
	}
}

// stripDecorators drops leading "@name(...)" decorators from a member line.
// An unterminated decorator leaves nothing.
func stripDecorators(line string) string {
	for strings.HasPrefix(line, "@") {
		i := 1
		for i < len(line) && (line[i] == '.' || line[i] == '_' || line[i] == '$' ||
			unicode.IsLetter(rune(line[i])) || unicode.IsDigit(rune(line[i]))) {
			i++
		}
		if i < len(line) && line[i] == '(' {
			depth := 0
			closed := false
			for ; i < len(line); i++ {
				switch line[i] {
				case '(':
					depth++
				case ')':
					depth--
				}
				if depth == 0 {
					closed = true
					i++
					break
				}
			}
			if !closed {
				return ""
			}
		}
		line = strings.TrimSpace(line[i:])
	}
	return line
}
