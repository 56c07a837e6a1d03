package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "covannot.toml"

type projectConfig struct {
	Path     string            `toml:"-"`
	Annotate annotateConfig    `toml:"annotate"`
	Messages map[string]string `toml:"messages"`

	// explicit records which [annotate] keys the file sets.
	explicit map[string]bool
}

type annotateConfig struct {
	Format         string `toml:"format"`
	Locale         string `toml:"locale"`
	MaxAnnotations int    `toml:"max_annotations"`
}

func (c *projectConfig) has(key string) bool {
	return c != nil && c.explicit[key]
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// resolveConfig loads an explicit config path, or the nearest covannot.toml
// above startDir. A missing implicit config is not an error and yields nil.
func resolveConfig(explicitPath, startDir string) (*projectConfig, error) {
	if explicitPath != "" {
		return loadConfig(explicitPath)
	}
	path, ok, err := findConfig(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return loadConfig(path)
}

func loadConfig(path string) (*projectConfig, error) {
	cfg := &projectConfig{Path: path, explicit: make(map[string]bool)}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	for _, key := range []string{"format", "locale", "max_annotations"} {
		if meta.IsDefined("annotate", key) {
			cfg.explicit[key] = true
		}
	}
	if meta.IsDefined("annotate", "max_annotations") && cfg.Annotate.MaxAnnotations < 0 {
		return nil, fmt.Errorf("%s: [annotate].max_annotations must not be negative", path)
	}
	if meta.IsDefined("annotate", "format") && strings.TrimSpace(cfg.Annotate.Format) == "" {
		return nil, fmt.Errorf("%s: [annotate].format must not be empty", path)
	}
	return cfg, nil
}
