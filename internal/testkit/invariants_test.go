package testkit

import (
	"strings"
	"testing"

	"covannot/internal/annotate"
)

func ann(path string, start, end int) annotate.Annotation {
	return annotate.Annotation{Path: path, StartLine: start, EndLine: end, Level: annotate.LevelWarning, Title: "t", Message: "m"}
}

func TestCheckAnnotationInvariants(t *testing.T) {
	cols := ann("a.ts", 3, 3)
	cols.StartColumn, cols.EndColumn = 2, 8
	wideCols := ann("a.ts", 3, 4)
	wideCols.StartColumn = 2
	noLevel := ann("a.ts", 1, 1)
	noLevel.Level = ""

	tests := []struct {
		name string
		anns []annotate.Annotation
		want string
	}{
		{"empty", nil, ""},
		{"sorted", []annotate.Annotation{ann("a.ts", 1, 2), cols, ann("b.ts", 1, 1)}, ""},
		{"duplicate", []annotate.Annotation{ann("a.ts", 1, 1), ann("a.ts", 1, 1)}, "duplicates"},
		{"unsorted", []annotate.Annotation{ann("b.ts", 1, 1), ann("a.ts", 1, 1)}, "out of order"},
		{"inverted", []annotate.Annotation{ann("a.ts", 5, 4)}, "after end line"},
		{"columns on multi-line", []annotate.Annotation{wideCols}, "multi-line"},
		{"no level", []annotate.Annotation{noLevel}, "empty level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAnnotationInvariants(tt.anns)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
