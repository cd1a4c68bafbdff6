package domain

import (
	"regexp"
	"strings"

	m "recase.dev/pkg/recase/internal/model"
)

// snakeTokenPattern matches word-boundary-delimited snake_case tokens: a
// lowercase first segment followed by at least one underscore-joined segment.
// It runs over raw text, so tokens inside string and comment literals match
// too. That is inherited behavior and is kept on purpose; callers should not
// assume identifier position.
var snakeTokenPattern = regexp.MustCompile(`\b[a-z][a-z0-9]*(?:_[a-z0-9]+)+\b`)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedWords a converted token must never collide with.
var reservedWords = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "class": {}, "const": {},
	"continue": {}, "default": {}, "do": {}, "double": {}, "else": {},
	"enum": {}, "extends": {}, "final": {}, "finally": {}, "float": {},
	"for": {}, "goto": {}, "if": {}, "implements": {}, "import": {},
	"instanceof": {}, "int": {}, "interface": {}, "long": {}, "native": {},
	"new": {}, "package": {}, "private": {}, "protected": {}, "public": {},
	"return": {}, "short": {}, "static": {}, "strictfp": {}, "super": {},
	"switch": {}, "synchronized": {}, "this": {}, "throw": {}, "throws": {},
	"transient": {}, "try": {}, "void": {}, "volatile": {}, "while": {},
}

// ToCamel converts one snake_case token to camelCase: first segment kept as
// is, every following segment capitalized, underscores dropped. The function
// is pure and idempotent on already-converted input (which simply has no
// underscores left to drop).
func ToCamel(token string) string {
	segments := strings.Split(token, "_")
	if len(segments) == 1 {
		return token
	}

	var b strings.Builder

	b.WriteString(segments[0])

	for _, segment := range segments[1:] {
		if segment == "" {
			continue
		}

		b.WriteString(strings.ToUpper(segment[:1]))
		b.WriteString(segment[1:])
	}

	return b.String()
}

// ExtractRenames scans content for convention-violating tokens, deduplicates
// them, and returns the per-file mapping ordered longest-original-first. A
// token makes it into the mapping only when its converted form is a valid,
// non-reserved identifier that differs from the original. An empty mapping
// means the file is a no-op.
func ExtractRenames(content []byte) m.RenameMapping {
	tokens := snakeTokenPattern.FindAllString(string(content), -1)
	if len(tokens) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tokens))

	var renames []m.Rename

	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}

		seen[token] = struct{}{}

		converted := ToCamel(token)
		if converted == token {
			continue
		}

		if !identifierPattern.MatchString(converted) {
			continue
		}

		if _, reserved := reservedWords[converted]; reserved {
			continue
		}

		renames = append(renames, m.Rename{Original: token, Converted: converted})
	}

	return m.NewRenameMapping(renames)
}
