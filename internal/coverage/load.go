package coverage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// jestReport is the subset of `jest --json --coverage` output we care about.
type jestReport struct {
	CoverageMap json.RawMessage `json:"coverageMap"`
}

// Decode reads either a bare coverage map (coverage-final.json) or a Jest
// JSON report that carries the map under "coverageMap".
func Decode(r io.Reader) (Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (Map, error) {
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))

	var report jestReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse coverage report: %w", err)
	}
	if !isNull(report.CoverageMap) {
		data = report.CoverageMap
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse coverage map: %w", err)
	}
	if m == nil {
		m = Map{}
	}
	return m, nil
}

// LoadFile reads and decodes a report from disk.
func LoadFile(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
