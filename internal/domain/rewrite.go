package domain

import (
	"regexp"

	m "recase.dev/pkg/recase/internal/model"
)

// RewriteResult is the outcome of applying a rename mapping to file content.
// It carries both versions so callers can decide what to do with the disk.
type RewriteResult struct {
	Original     []byte
	Rewritten    []byte
	Replacements int
	Modified     bool
}

// ApplyRenames produces new content with every occurrence of each original
// token replaced by its converted form at word boundaries only, so a token is
// never rewritten inside an unrelated longer identifier. The mapping's
// longest-original-first order guarantees that a name which is a prefix of
// another (user_id vs user_id_2) cannot corrupt the longer one. Doc-comment
// @param tags naming a renamed identifier are rewritten as well. Pure
// function; no I/O.
func ApplyRenames(content []byte, mapping m.RenameMapping) RewriteResult {
	result := RewriteResult{Original: content, Rewritten: content}

	if len(mapping) == 0 {
		return result
	}

	rewritten := string(content)

	for _, rename := range mapping {
		var count int

		rewritten, count = replaceParamTag(rewritten, rename)
		result.Replacements += count

		rewritten, count = replaceWord(rewritten, rename)
		result.Replacements += count
	}

	result.Rewritten = []byte(rewritten)
	result.Modified = result.Replacements > 0

	return result
}

// replaceParamTag rewrites the identifier in `@param <name>` documentation
// tags.
func replaceParamTag(content string, rename m.Rename) (string, int) {
	pattern := regexp.MustCompile(`(@param\s+)` + regexp.QuoteMeta(rename.Original) + `\b`)

	count := 0
	replaced := pattern.ReplaceAllStringFunc(content, func(match string) string {
		count++
		return pattern.FindStringSubmatch(match)[1] + rename.Converted
	})

	return replaced, count
}

// replaceWord rewrites every word-boundary occurrence of the original token.
func replaceWord(content string, rename m.Rename) (string, int) {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(rename.Original) + `\b`)

	count := 0
	replaced := pattern.ReplaceAllStringFunc(content, func(string) string {
		count++
		return rename.Converted
	})

	return replaced, count
}
