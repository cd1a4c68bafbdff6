package domain

import (
	"path/filepath"
	"strings"

	m "recase.dev/pkg/recase/internal/model"
)

// generatedMarkers are the banner substrings that identify derived files.
// Only the first few lines are inspected; real banners sit at the top.
var generatedMarkers = []string{
	"generated by",
	"auto-generated",
	"autogenerated",
	"automatically generated",
	"code generated",
	"do not edit",
	"@generated",
}

const generatedMarkerLines = 10

// SyntaxSanityChecker reports whether file content looks structurally sound
// enough to rewrite. It is a pluggable capability so the default heuristic
// scanner can later be swapped for a real tokenizer without touching the rest
// of the engine.
type SyntaxSanityChecker interface {
	// Check returns true when the content is safe to rewrite.
	Check(content []byte) bool
}

// Classifier decides whether a candidate file is eligible for rewriting.
type Classifier struct {
	syntax SyntaxSanityChecker
}

// NewClassifier constructs a Classifier. A nil checker falls back to the
// default brace-balance scanner.
func NewClassifier(syntax SyntaxSanityChecker) *Classifier {
	if syntax == nil {
		syntax = BraceBalanceChecker{}
	}

	return &Classifier{syntax: syntax}
}

// Classify tags a candidate as eligible, generated, or syntactically unsafe.
func (c *Classifier) Classify(path m.Path, content []byte) m.Classification {
	if isGeneratedName(path) || hasGeneratedMarker(content) {
		return m.ClassGenerated
	}

	if !c.syntax.Check(content) {
		return m.ClassSyntaxUnsafe
	}

	return m.ClassEligible
}

// isGeneratedName matches filename conventions for derived files.
func isGeneratedName(path m.Path) bool {
	name := strings.ToLower(filepath.Base(string(path)))

	if strings.HasPrefix(name, "generated") {
		return true
	}

	return strings.Contains(name, ".generated.") || strings.Contains(name, "_generated.")
}

// hasGeneratedMarker looks for a generated-file banner near the top of the
// content.
func hasGeneratedMarker(content []byte) bool {
	lines := strings.SplitN(string(content), "\n", generatedMarkerLines+1)
	if len(lines) > generatedMarkerLines {
		lines = lines[:generatedMarkerLines]
	}

	head := strings.ToLower(strings.Join(lines, "\n"))

	for _, marker := range generatedMarkers {
		if strings.Contains(head, marker) {
			return true
		}
	}

	return false
}

// BraceBalanceChecker is the default SyntaxSanityChecker: a single-pass
// character scanner tracking brace/paren depth and string/char/comment state.
// It is a heuristic, not a parser; it exists to keep the rewriter away from
// files that are already broken.
type BraceBalanceChecker struct{}

// Check implements SyntaxSanityChecker. Content is unsafe when depth goes
// negative, ends non-zero, or a literal/comment is still open at end of file.
func (BraceBalanceChecker) Check(content []byte) bool {
	const (
		stateCode = iota
		stateString
		stateChar
		stateLineComment
		stateBlockComment
	)

	state := stateCode
	braceDepth := 0
	parenDepth := 0
	escaped := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		switch state {
		case stateString:
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				state = stateCode
			}

		case stateChar:
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '\'' {
				state = stateCode
			}

		case stateLineComment:
			if ch == '\n' {
				state = stateCode
			}

		case stateBlockComment:
			if ch == '*' && i+1 < len(content) && content[i+1] == '/' {
				state = stateCode
				i++
			}

		default:
			switch ch {
			case '"':
				state = stateString
			case '\'':
				state = stateChar
			case '/':
				if i+1 < len(content) {
					switch content[i+1] {
					case '/':
						state = stateLineComment
						i++
					case '*':
						state = stateBlockComment
						i++
					}
				}
			case '{':
				braceDepth++
			case '}':
				braceDepth--
			case '(':
				parenDepth++
			case ')':
				parenDepth--
			}

			if braceDepth < 0 || parenDepth < 0 {
				return false
			}
		}
	}

	// A line comment on the last line needs no closing newline.
	if state != stateCode && state != stateLineComment {
		return false
	}

	return braceDepth == 0 && parenDepth == 0
}
