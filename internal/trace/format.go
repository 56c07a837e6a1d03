package trace

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output file extension
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent formats an event in the given format. started
// anchors the relative timestamps of the text format.
func FormatEvent(ev *Event, format Format, started time.Time) []byte {
	switch format {
	case FormatNDJSON:
		return formatNDJSON(ev)
	default:
		return formatText(ev, started)
	}
}

func formatNDJSON(ev *Event) []byte {
	type jsonEvent struct {
		Time      string            `json:"time"`
		Seq       uint64            `json:"seq"`
		Kind      string            `json:"kind"`
		Scope     string            `json:"scope"`
		SpanID    uint64            `json:"span_id,omitempty"`
		ParentID  uint64            `json:"parent_id,omitempty"`
		Name      string            `json:"name"`
		Detail    string            `json:"detail,omitempty"`
		ElapsedMS float64           `json:"elapsed_ms,omitempty"`
		Extra     map[string]string `json:"extra,omitempty"`
	}

	j := jsonEvent{
		Time:      ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Name:      ev.Name,
		Detail:    ev.Detail,
		ElapsedMS: float64(ev.Elapsed) / float64(time.Millisecond),
		Extra:     ev.Extra,
	}

	data, _ := json.Marshal(j)
	data = append(data, '\n')
	return data
}

// formatText renders: [elapsed] [indent]→/←/•/! name (detail) {k=v} took
func formatText(ev *Event, started time.Time) []byte {
	var sb strings.Builder

	var since time.Duration
	if !started.IsZero() {
		since = ev.Time.Sub(started)
	}
	fmt.Fprintf(&sb, "[%8.3fms] ", float64(since)/float64(time.Millisecond))

	if ev.Scope > ScopeCommand {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope)-1))
	}

	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("\u2192 ") // →
	case KindSpanEnd:
		sb.WriteString("\u2190 ") // ←
	case KindPoint:
		sb.WriteString("\u2022 ") // •
	case KindError:
		sb.WriteString("! ")
	}

	sb.WriteString(ev.Name)

	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteString(")")
	}

	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(ev.Extra[k])
		}
		sb.WriteString("}")
	}

	if ev.Kind == KindSpanEnd {
		fmt.Fprintf(&sb, " %.3fms", float64(ev.Elapsed)/float64(time.Millisecond))
	}

	sb.WriteString("\n")
	return []byte(sb.String())
}
