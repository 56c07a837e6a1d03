package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSession_WritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUPath:   filepath.Join(dir, "cpu.pprof"),
		MemPath:   filepath.Join(dir, "mem.pprof"),
		TracePath: filepath.Join(dir, "exec.trace"),
	}
	s, err := Start(cfg)
	if err != nil {
		t.Skipf("profilers unavailable: %v", err)
	}

	sum := 0
	for i := range 100000 {
		sum += i
	}
	_ = sum

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, path := range []string{cfg.CPUPath, cfg.MemPath, cfg.TracePath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestStart_Disabled(t *testing.T) {
	var cfg Config
	if cfg.Enabled() {
		t.Fatal("zero config must be disabled")
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestStart_BadPath(t *testing.T) {
	_, err := Start(Config{CPUPath: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
