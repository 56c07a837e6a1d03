package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
	// KindError records a failure; it passes every level but off.
	KindError
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	// ScopeCommand is a whole CLI invocation.
	ScopeCommand Scope = iota + 1
	// ScopeStage is one pipeline stage (load, annotate, emit).
	ScopeStage
	// ScopeReport is work on a single coverage report.
	ScopeReport
	// ScopeFile is work on a single file record.
	ScopeFile
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopeStage:
		return "stage"
	case ScopeReport:
		return "report"
	case ScopeFile:
		return "file"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	Name     string            // e.g. "load", "annotate", "report:coverage-final.json"
	Detail   string            // optional detail message
	Elapsed  time.Duration     // span duration, set on KindSpanEnd
	Extra    map[string]string // extensible key-value pairs
}
