package model

import "time"

// Stats holds the aggregate counters for one run. Counters only ever grow;
// at the end of a successful run FilesProcessed equals FilesModified plus
// FilesSkipped.
type Stats struct {
	FilesProcessed     int `yaml:"files_processed"`
	FilesModified      int `yaml:"files_modified"`
	FilesSkipped       int `yaml:"files_skipped"`
	IdentifiersRenamed int `yaml:"identifiers_renamed"`
	ErrorCount         int `yaml:"error_count"`
}

// SkipReason explains why a file was left untouched.
type SkipReason string

const (
	// SkipGenerated: the file carries a generated-file marker.
	SkipGenerated SkipReason = "generated"
	// SkipSyntaxUnsafe: the syntax sanity check failed.
	SkipSyntaxUnsafe SkipReason = "unsafe"
	// SkipAccessError: the file could not be read.
	SkipAccessError SkipReason = "access-error"
	// SkipClean: the file contains no convention-violating tokens.
	SkipClean SkipReason = "clean"
)

// FileOutcome records what happened to a single file so the report can be
// audited file by file.
type FileOutcome struct {
	Path     Path       `yaml:"path"`
	Modified bool       `yaml:"modified"`
	Renamed  int        `yaml:"renamed,omitempty"`
	Skip     SkipReason `yaml:"skip,omitempty"`
	Error    string     `yaml:"error,omitempty"`
}

// RunReport is the structured, deterministic record of one run. Given the
// same inputs two reports differ only in the run metadata (ID, timestamps).
type RunReport struct {
	RunID      string        `yaml:"run_id"`
	Root       Path          `yaml:"root"`
	DryRun     bool          `yaml:"dry_run"`
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt time.Time     `yaml:"finished_at"`
	RolledBack bool          `yaml:"rolled_back,omitempty"`
	Stats      Stats         `yaml:"stats"`
	Changes    []Change      `yaml:"changes"`
	Outcomes   []FileOutcome `yaml:"outcomes"`
	Warnings   []string      `yaml:"warnings,omitempty"`
}
