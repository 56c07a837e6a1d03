// Package annotfmt renders annotations for terminals, CI systems and other
// tools. It never changes the order or content the core produced.
package annotfmt

import (
	"fmt"
	"io"
	"strings"

	"covannot/internal/annotate"
)

// Format selects an output encoding.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatGitHub
	FormatShort
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatJSON:
		return "json"
	case FormatGitHub:
		return "github"
	case FormatShort:
		return "short"
	case FormatMsgpack:
		return "msgpack"
	}
	return "unknown"
}

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "github":
		return FormatGitHub, nil
	case "short":
		return FormatShort, nil
	case "msgpack":
		return FormatMsgpack, nil
	}
	return FormatPretty, fmt.Errorf("unknown format %q (expected pretty|json|github|short|msgpack)", s)
}

// Opts configures rendering.
type Opts struct {
	Color bool
	Max   int // обрезка вывода, не результата ядра; 0 - без ограничений
}

func (o Opts) limit(anns []annotate.Annotation) []annotate.Annotation {
	if o.Max > 0 && o.Max < len(anns) {
		return anns[:o.Max]
	}
	return anns
}

// Write renders anns to w in the requested format.
func Write(w io.Writer, format Format, anns []annotate.Annotation, opts Opts) error {
	switch format {
	case FormatJSON:
		return JSON(w, anns, opts)
	case FormatGitHub:
		return GitHub(w, anns, opts)
	case FormatShort:
		return Short(w, anns, opts)
	case FormatMsgpack:
		return Msgpack(w, anns, opts)
	default:
		return Pretty(w, anns, opts)
	}
}
