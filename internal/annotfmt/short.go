package annotfmt

import (
	"fmt"
	"io"
	"strings"

	"covannot/internal/annotate"
)

// Short writes one line per annotation:
//
//	warning src/a.ts:5:2 🧾 Statement is not covered: Warning! Not covered statement
//
// The column is omitted for whole-line annotations.
func Short(w io.Writer, anns []annotate.Annotation, opts Opts) error {
	var b strings.Builder
	for _, a := range opts.limit(anns) {
		fmt.Fprintf(&b, "%s %s %s: %s\n", a.Level, location(a), singleLine(a.Title), singleLine(a.Message))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func location(a annotate.Annotation) string {
	if a.HasColumns() {
		return fmt.Sprintf("%s:%d:%d", a.Path, a.StartLine, a.StartColumn)
	}
	return fmt.Sprintf("%s:%d", a.Path, a.StartLine)
}

func singleLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
