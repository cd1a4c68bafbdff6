package model

// Path represents a file system path.
type Path string

// Classification tags a candidate file after inspection.
type Classification string

const (
	// ClassEligible marks a file that is safe to rewrite.
	ClassEligible Classification = "eligible"

	// ClassGenerated marks a file produced by another tool. Generated files
	// are never rewritten to avoid clobbering derived artifacts.
	ClassGenerated Classification = "skip-generated"

	// ClassSyntaxUnsafe marks a file whose brace/paren balance or literal
	// state looks broken. Rewriting such a file could make it worse.
	ClassSyntaxUnsafe Classification = "skip-syntax-error"

	// ClassAccessError marks a file that could not be read.
	ClassAccessError Classification = "skip-access-error"
)

// SourceFile represents a candidate file inside the tree being refactored.
// Content is loaded lazily by the scheduler and released once the file's
// result has been recorded.
type SourceFile struct {
	Path           Path
	Classification Classification
}
