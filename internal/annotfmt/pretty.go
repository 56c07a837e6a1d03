package annotfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"covannot/internal/annotate"
)

type palette struct {
	path    *color.Color
	span    *color.Color
	warning *color.Color
	summary *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold, color.Underline),
		span:    color.New(color.FgCyan),
		warning: color.New(color.FgYellow, color.Bold),
		summary: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.span, p.warning, p.summary} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty writes a human-readable report grouped by file. It expects the core's
// sorted order, so annotations of one file are contiguous.
//
//	src/a.ts
//	  5:2-10  warning  🧾 Statement is not covered  Warning! Not covered statement
func Pretty(w io.Writer, anns []annotate.Annotation, opts Opts) error {
	pal := newPalette(opts.Color)
	shown := opts.limit(anns)

	spanWidth, titleWidth := 0, 0
	for _, a := range shown {
		spanWidth = max(spanWidth, runewidth.StringWidth(spanText(a)))
		titleWidth = max(titleWidth, runewidth.StringWidth(singleLine(a.Title)))
	}

	var b strings.Builder
	current := ""
	for i, a := range shown {
		if i == 0 || a.Path != current {
			if i > 0 {
				b.WriteByte('\n')
			}
			current = a.Path
			b.WriteString(pal.path.Sprint(displayPath(a.Path)))
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(pal.span.Sprint(runewidth.FillRight(spanText(a), spanWidth)))
		b.WriteString("  ")
		b.WriteString(pal.warning.Sprint(string(a.Level)))
		b.WriteString("  ")
		b.WriteString(runewidth.FillRight(singleLine(a.Title), titleWidth))
		b.WriteString("  ")
		b.WriteString(singleLine(a.Message))
		b.WriteByte('\n')
	}

	if len(shown) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(pal.summary.Sprint(summaryLine(len(anns), len(shown), countFiles(anns))))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func countFiles(anns []annotate.Annotation) int {
	n := 0
	for i, a := range anns {
		if i == 0 || a.Path != anns[i-1].Path {
			n++
		}
	}
	return n
}

func spanText(a annotate.Annotation) string {
	switch {
	case a.HasColumns() && a.StartLine == a.EndLine:
		return fmt.Sprintf("%d:%d-%d", a.StartLine, a.StartColumn, a.EndColumn)
	case a.HasColumns():
		return fmt.Sprintf("%d:%d-%d:%d", a.StartLine, a.StartColumn, a.EndLine, a.EndColumn)
	case a.StartLine == a.EndLine:
		return fmt.Sprintf("%d", a.StartLine)
	default:
		return fmt.Sprintf("%d-%d", a.StartLine, a.EndLine)
	}
}

func displayPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}

func summaryLine(total, shown, files int) string {
	if total == 0 {
		return "no uncovered code found"
	}
	s := fmt.Sprintf("%d %s in %d %s", total, plural(total, "annotation", "annotations"), files, plural(files, "file", "files"))
	if shown < total {
		s += fmt.Sprintf(" (showing first %d)", shown)
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
