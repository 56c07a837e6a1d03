package annotfmt

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"covannot/internal/annotate"
)

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// GitHub writes GitHub Actions workflow commands, one per annotation:
//
//	::warning file=src/a.ts,line=5,endLine=5,col=2,endColumn=10,title=...::message
func GitHub(w io.Writer, anns []annotate.Annotation, opts Opts) error {
	bw := bufio.NewWriter(w)
	for _, a := range opts.limit(anns) {
		bw.WriteString(githubCommand(a))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func githubCommand(a annotate.Annotation) string {
	var sb strings.Builder
	sb.WriteString("::")
	sb.WriteString(githubLevel(a.Level))
	sb.WriteString(" file=")
	sb.WriteString(propertyEscaper.Replace(a.Path))
	sb.WriteString(",line=")
	sb.WriteString(strconv.Itoa(a.StartLine))
	sb.WriteString(",endLine=")
	sb.WriteString(strconv.Itoa(a.EndLine))
	if a.HasColumns() {
		sb.WriteString(",col=")
		sb.WriteString(strconv.Itoa(a.StartColumn))
		sb.WriteString(",endColumn=")
		sb.WriteString(strconv.Itoa(a.EndColumn))
	}
	if a.Title != "" {
		sb.WriteString(",title=")
		sb.WriteString(propertyEscaper.Replace(a.Title))
	}
	sb.WriteString("::")
	sb.WriteString(dataEscaper.Replace(a.Message))
	return sb.String()
}

func githubLevel(l annotate.Level) string {
	switch l {
	case "failure", "error":
		return "error"
	case "notice":
		return "notice"
	default:
		return "warning"
	}
}
