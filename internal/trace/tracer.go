package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level     // tracing level
	Format     Format    // output format (FormatAuto picks by extension)
	Output     io.Writer // takes precedence over OutputPath; never closed
	OutputPath string    // file path; "" or "-" means stderr
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

// openOutput opens the output writer from config.
func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return keepOpen{cfg.Output}, nil
	}

	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return keepOpen{os.Stderr}, nil
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}

	return f, nil
}

// keepOpen hides the Close method of the wrapped writer.
type keepOpen struct{ io.Writer }
