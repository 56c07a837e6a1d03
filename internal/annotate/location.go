package annotate

import "covannot/internal/coverage"

// NormalizeRange converts an instrumenter {start, end} pair into a canonical
// range. Absent ends count as line 0.
//
// EndLine is taken from end alone and is never clamped against start, so an
// inverted pair collapses onto end.line. Downstream consumers rely on this.
func NormalizeRange(start, end coverage.Location) Range {
	r := Range{
		StartLine: minLine(start, end),
		EndLine:   lineOf(end),
	}
	if start.BadLine || end.BadLine || start.Line != end.Line {
		return r
	}
	if !start.HasColumn() || !end.HasColumn() {
		return r
	}
	sc, ec := *start.Column, *end.Column
	r.StartColumn = max(1, min(sc, ec))
	r.EndColumn = max(1, sc, ec)
	return r
}

func lineOf(l coverage.Location) Line {
	if l.BadLine {
		return Line{}
	}
	return ValidLine(l.Line)
}

func minLine(a, b coverage.Location) Line {
	if a.BadLine || b.BadLine {
		return Line{}
	}
	return ValidLine(min(a.Line, b.Line))
}
