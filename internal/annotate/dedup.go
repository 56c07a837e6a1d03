package annotate

import (
	"cmp"
	"slices"
)

// defaultColumn stands in for an absent column during comparison.
const defaultColumn = 1

// Compare orders candidates by path, start line, end line, start column,
// end column, level, title and message. Absent columns compare as 1.
// Invalid lines compare equal to each other and before every valid line.
func Compare(a, b Candidate) int {
	if c := cmp.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	if c := compareLine(a.StartLine, b.StartLine); c != 0 {
		return c
	}
	if c := compareLine(a.EndLine, b.EndLine); c != 0 {
		return c
	}
	if c := cmp.Compare(columnOrDefault(a.StartColumn), columnOrDefault(b.StartColumn)); c != 0 {
		return c
	}
	if c := cmp.Compare(columnOrDefault(a.EndColumn), columnOrDefault(b.EndColumn)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Level, b.Level); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return cmp.Compare(a.Message, b.Message)
}

func compareLine(a, b Line) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	}
	return cmp.Compare(a.N, b.N)
}

func columnOrDefault(c int) int {
	if c == 0 {
		return defaultColumn
	}
	return c
}

// Sort orders candidates in place by Compare.
func Sort(cands []Candidate) {
	slices.SortStableFunc(cands, Compare)
}

// Dedup drops every element equal to its predecessor. It expects sorted
// input and keeps the first of each run.
func Dedup(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return cands
	}
	out := make([]Candidate, 0, len(cands))
	out = append(out, cands[0])
	for i := 1; i < len(cands); i++ {
		if Compare(cands[i], cands[i-1]) == 0 {
			continue
		}
		out = append(out, cands[i])
	}
	return out
}

// FilterValid keeps only candidates with usable line bounds.
func FilterValid(cands []Candidate) []Annotation {
	out := make([]Annotation, 0, len(cands))
	for _, c := range cands {
		if !c.Valid() {
			continue
		}
		out = append(out, c.Annotation())
	}
	return out
}
