// Package observ records wall-clock timings of the CLI pipeline stages.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Stage records the duration and metadata of one pipeline stage.
type Stage struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Items int
}

// Timer tracks the execution time of consecutive stages.
type Timer struct {
	stages []Stage
	now    func() time.Time
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{stages: make([]Stage, 0, 4), now: time.Now} }

// Begin starts a new stage and returns its index.
func (t *Timer) Begin(name string) int {
	t.stages = append(t.stages, Stage{Name: name, Start: t.now()})
	return len(t.stages) - 1
}

// End finishes a stage by its index, recording how many items it produced.
func (t *Timer) End(idx int, items int) {
	if idx < 0 || idx >= len(t.stages) {
		return
	}
	s := &t.stages[idx]
	s.Dur = t.now().Sub(s.Start)
	s.Items = items
}

// StageReport is the serialisable form of a stage.
type StageReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Items      int     `json:"items"`
}

// Report aggregates all stages.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Stages  []StageReport `json:"stages"`
}

// Report returns the stages and their total duration in milliseconds.
func (t *Timer) Report() Report {
	report := Report{Stages: make([]StageReport, len(t.stages))}
	var total time.Duration
	for i, s := range t.stages {
		total += s.Dur
		report.Stages[i] = StageReport{
			Name:       s.Name,
			DurationMS: durationToMillis(s.Dur),
			Items:      s.Items,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary returns a human-readable table of the tracked stages.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, s := range report.Stages {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  %d items\n", s.Name, s.DurationMS, s.Items)
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
