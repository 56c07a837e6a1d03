package annotate

// Level is the annotation_level of a check-run annotation.
type Level string

const (
	// LevelWarning is the only level the scanner produces.
	LevelWarning Level = "warning"
)

// Annotation is a fully valid, line-anchored finding ready for emission.
// Columns are 0 when absent; present columns are always >= 1.
type Annotation struct {
	Path        string `json:"path"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
	StartColumn int    `json:"start_column,omitempty"`
	EndColumn   int    `json:"end_column,omitempty"`
	Level       Level  `json:"annotation_level"`
	Title       string `json:"title"`
	Message     string `json:"message"`
}

// HasColumns reports whether the annotation is column-precise.
func (a Annotation) HasColumns() bool {
	return a.StartColumn > 0 && a.EndColumn > 0
}

// Line is a line number that may be unusable, the result of malformed
// instrumenter data.
type Line struct {
	N     int
	Valid bool
}

// ValidLine wraps a usable line number.
func ValidLine(n int) Line { return Line{N: n, Valid: true} }

// Range is the canonical location of a candidate.
type Range struct {
	StartLine   Line
	EndLine     Line
	StartColumn int
	EndColumn   int
}

// Candidate is an annotation as produced by the scanner, before the
// validity filter has had a chance to drop it.
type Candidate struct {
	Path string
	Range
	Level   Level
	Title   string
	Message string
}

// Valid reports whether both line bounds are usable numbers.
func (c Candidate) Valid() bool {
	return c.StartLine.Valid && c.EndLine.Valid
}

// Annotation narrows a valid candidate. The result is meaningless for
// candidates that fail Valid.
func (c Candidate) Annotation() Annotation {
	return Annotation{
		Path:        c.Path,
		StartLine:   c.StartLine.N,
		EndLine:     c.EndLine.N,
		StartColumn: c.StartColumn,
		EndColumn:   c.EndColumn,
		Level:       c.Level,
		Title:       c.Title,
		Message:     c.Message,
	}
}
