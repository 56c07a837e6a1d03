package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var builtinSeeds = []string{
	`{}`,
	`null`,
	`{"coverageMap": {}}`,
	`{"a.ts": {"statementMap": {}, "s": {}, "branchMap": {}, "b": {}, "fnMap": {}, "f": {}}}`,
	`{"/repo/a.ts": {"path": "/repo/a.ts",
		"statementMap": {"0": {"start": {"line": 2, "column": 4}, "end": {"line": 2, "column": 9}},
		                 "1": {"start": {"line": 9, "column": 0}, "end": {"line": 4}}},
		"s": {"0": 0, "1": 0},
		"branchMap": {"0": {"locations": [{"start": {"line": 3}, "end": {"line": 5}}, {}]}},
		"b": {"0": [1, 0, 0]},
		"fnMap": {"0": {"name": "f", "loc": {"start": {"line": 1, "column": 0}, "end": {"line": 7, "column": 1}}}},
		"f": {"0": 0}}}`,
	`{"b.ts": {"data": {"statementMap": {"00": {"start": {"line": "x"}, "end": {"line": null}}},
		"s": {"0": 0}, "branchMap": {}, "b": {}, "fnMap": {}, "f": {}}}}`,
	`{"c.ts": {"statementMap": {"0": {"start": {"line": 1.5}, "end": {"line": 1e309}}}, "s": {"0": "0"}}}`,
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "reports")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.json файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
