// Package coverage decodes Istanbul coverage maps into a canonical per-file model.
package coverage

import (
	"strconv"
)

// Location is a point in a source file as written by the instrumenter.
// The zero value is line 0 without a column, which is also what an absent
// location defaults to.
type Location struct {
	Line int
	// Column is nil for whole-line precision.
	Column *int
	// BadLine is set when the line was missing, null or not an integral number.
	BadLine bool
}

// HasColumn reports whether the location carries a column.
func (l Location) HasColumn() bool {
	return l.Column != nil
}

// Range is a {start, end} pair. Nil ends mean the key was absent.
type Range struct {
	Start *Location `json:"start"`
	End   *Location `json:"end"`
}

// Bounds returns both ends, substituting the zero Location for absent ones.
func (r Range) Bounds() (Location, Location) {
	var start, end Location
	if r.Start != nil {
		start = *r.Start
	}
	if r.End != nil {
		end = *r.End
	}
	return start, end
}

// BranchMapping describes one branch site and its alternative arms.
type BranchMapping struct {
	Locations []Range `json:"locations"`
}

// FnMapping describes one function. Loc is the legacy body span written by
// older instrumenters; Decl takes precedence when present.
type FnMapping struct {
	Decl *Range `json:"decl"`
	Loc  *Range `json:"loc"`
}

// Span returns the declaration span of the function.
func (f FnMapping) Span() Range {
	switch {
	case f.Decl != nil:
		return *f.Decl
	case f.Loc != nil:
		return *f.Loc
	default:
		return Range{}
	}
}

// FileCoverage is the canonical per-file record. Nil maps mean the field was
// absent from the report.
type FileCoverage struct {
	StatementMap map[string]Range         `json:"statementMap"`
	S            map[string]Count         `json:"s"`
	BranchMap    map[string]BranchMapping `json:"branchMap"`
	B            map[string]Counts        `json:"b"`
	FnMap        map[string]FnMapping     `json:"fnMap"`
	F            map[string]Count         `json:"f"`
}

// Count is an execution counter. Only the JSON number 0 marks an item as
// uncovered; anything else, including null, is treated as covered.
type Count struct {
	Hits    float64
	Numeric bool
}

// Uncovered reports whether the counter is exactly numeric zero.
func (c Count) Uncovered() bool {
	return c.Numeric && c.Hits == 0
}

// Counts holds per-arm branch counters aligned with BranchMapping.Locations.
type Counts []Count

// At returns the counter for arm i, or a covered zero value when out of range.
func (c Counts) At(i int) Count {
	if i < 0 || i >= len(c) {
		return Count{}
	}
	return c[i]
}

// Lookup finds the entry for an index key the way the instrumenter addresses
// it: numerically, so that "00" and "0" name the same slot.
func Lookup[V any](m map[string]V, key string) (V, bool) {
	var zero V
	n, err := strconv.Atoi(key)
	if err != nil {
		return zero, false
	}
	v, ok := m[strconv.Itoa(n)]
	return v, ok
}
