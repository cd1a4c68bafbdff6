package model

import "sort"

// Rename is a single identifier conversion inside one file. Original is the
// snake_case token found in the source, Converted its camelCase form.
type Rename struct {
	Original  string
	Converted string
}

// RenameMapping is the ordered set of renames for one file. Order matters:
// longer originals must be substituted first so that a shorter name never
// clobbers a longer one it is a prefix of (user_id vs user_id_2).
type RenameMapping []Rename

// NewRenameMapping sorts renames longest-original-first and returns the
// resulting mapping. Ties break lexicographically so the order is stable.
func NewRenameMapping(renames []Rename) RenameMapping {
	mapping := make(RenameMapping, len(renames))
	copy(mapping, renames)

	sort.SliceStable(mapping, func(i, j int) bool {
		if len(mapping[i].Original) != len(mapping[j].Original) {
			return len(mapping[i].Original) > len(mapping[j].Original)
		}

		return mapping[i].Original < mapping[j].Original
	})

	return mapping
}

// Change is an immutable ledger entry recording one applied (or, in dry-run
// mode, would-be) rename. Changes feed the report only, never control flow.
type Change struct {
	Path      Path   `yaml:"path"`
	Original  string `yaml:"original"`
	Converted string `yaml:"converted"`
}

// SortChanges orders a change ledger by path, then original name. Parallel
// runs append changes in completion order; sorting restores a reproducible
// report.
func SortChanges(changes []Change) {
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Path != changes[j].Path {
			return changes[i].Path < changes[j].Path
		}

		return changes[i].Original < changes[j].Original
	})
}
