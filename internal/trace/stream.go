package trace

import (
	"io"
	"sync"
	"time"
)

// StreamTracer writes events immediately to an io.Writer.
type StreamTracer struct {
	mu      sync.Mutex
	w       io.Writer
	level   Level
	format  Format
	started time.Time
}

// NewStreamTracer creates a new StreamTracer.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{
		w:       w,
		level:   level,
		format:  format,
		started: time.Now(),
	}
}

// Emit writes an event to the output.
func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev) {
		return
	}
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	data := FormatEvent(ev, t.format, t.started)

	t.mu.Lock()
	defer t.mu.Unlock()

	// Best-effort write - trace errors must not fail the command
	_, _ = t.w.Write(data) //nolint:errcheck
}

// Flush calls the writer's Flush method when it has one.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Level returns the current tracing level.
func (t *StreamTracer) Level() Level {
	return t.level
}

// Enabled returns true if tracing is active.
func (t *StreamTracer) Enabled() bool {
	return t.level > LevelOff
}
