// Package prof drives the runtime profilers behind the CLI debug flags.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Config names the output files. Empty paths disable the profiler.
type Config struct {
	CPUPath   string
	MemPath   string
	TracePath string
}

// Enabled reports whether any profiler is requested.
func (c Config) Enabled() bool {
	return c.CPUPath != "" || c.MemPath != "" || c.TracePath != ""
}

// Session holds the profilers started by Start.
type Session struct {
	cfg     Config
	cpuFile *os.File
	exeFile *os.File
}

// Start enables the CPU profile and the runtime execution trace. The heap
// profile is captured by Stop. On error nothing is left running.
func Start(cfg Config) (*Session, error) {
	s := &Session{cfg: cfg}
	if cfg.CPUPath != "" {
		f, err := os.Create(cfg.CPUPath)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpuFile = f
	}
	if cfg.TracePath != "" {
		f, err := os.Create(cfg.TracePath)
		if err != nil {
			_ = s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			_ = s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		s.exeFile = f
	}
	return s, nil
}

// Stop ends the running profilers and writes the heap profile. It is safe to
// call more than once.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.exeFile != nil {
		trace.Stop()
		errs = append(errs, s.exeFile.Close())
		s.exeFile = nil
	}
	errs = append(errs, s.stopCPU())
	if s.cfg.MemPath != "" {
		errs = append(errs, writeHeap(s.cfg.MemPath))
		s.cfg.MemPath = ""
	}
	return errors.Join(errs...)
}

func (s *Session) stopCPU() error {
	if s.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpuFile.Close()
	s.cpuFile = nil
	return err
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("heap profile: %w", closeErr)
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	return nil
}
