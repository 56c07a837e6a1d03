// Package testkit holds checks shared by the CLI tests and the fuzz harnesses.
package testkit

import (
	"fmt"

	"covannot/internal/annotate"
)

// CheckAnnotationInvariants verifies the guarantees of annotate.Create:
// 1) every annotation has an ordered line span and a level
// 2) columns only appear on single-line spans
// 3) the list is strictly increasing, hence sorted and free of duplicates
func CheckAnnotationInvariants(anns []annotate.Annotation) error {
	for i, a := range anns {
		if a.StartLine > a.EndLine {
			return fmt.Errorf("annotation %d: start line %d after end line %d", i, a.StartLine, a.EndLine)
		}
		if a.Level == "" {
			return fmt.Errorf("annotation %d: empty level", i)
		}
		if (a.StartColumn != 0 || a.EndColumn != 0) && a.StartLine != a.EndLine {
			return fmt.Errorf("annotation %d: columns on multi-line span %d-%d", i, a.StartLine, a.EndLine)
		}
		if i == 0 {
			continue
		}
		if c := annotate.Compare(candidate(anns[i-1]), candidate(a)); c >= 0 {
			if c == 0 {
				return fmt.Errorf("annotation %d duplicates its predecessor: %+v", i, a)
			}
			return fmt.Errorf("annotation %d is out of order: %+v before %+v", i, anns[i-1], a)
		}
	}
	return nil
}

func candidate(a annotate.Annotation) annotate.Candidate {
	return annotate.Candidate{
		Path: a.Path,
		Range: annotate.Range{
			StartLine:   annotate.ValidLine(a.StartLine),
			EndLine:     annotate.ValidLine(a.EndLine),
			StartColumn: a.StartColumn,
			EndColumn:   a.EndColumn,
		},
		Level:   a.Level,
		Title:   a.Title,
		Message: a.Message,
	}
}
