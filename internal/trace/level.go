package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota // no tracing
	LevelError               // only failures
	LevelStage               // command + pipeline stage boundaries
	LevelDetail              // per-report events
	LevelDebug               // everything
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelStage:
		return "stage"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "stage":
		return LevelStage, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|stage|detail|debug)", s)
	}
}

// ShouldEmit returns true if an event of the given scope passes this level.
// Error events pass every level except off.
func (l Level) ShouldEmit(ev *Event) bool {
	if l == LevelOff {
		return false
	}
	if ev.Kind == KindError {
		return true
	}
	switch l {
	case LevelStage:
		return ev.Scope <= ScopeStage
	case LevelDetail:
		return ev.Scope <= ScopeReport
	case LevelDebug:
		return true
	}
	return false
}
