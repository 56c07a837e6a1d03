package coverage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedRecord marks a file record that lacks one of the maps the
// scanner walks.
var ErrMalformedRecord = errors.New("malformed coverage record")

// Shape identifies which of the two historical layouts a record used.
type Shape uint8

const (
	// ShapeFlat keeps statementMap and friends at the top level.
	ShapeFlat Shape = iota + 1
	// ShapeWrapped nests them under a "data" key.
	ShapeWrapped
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeWrapped:
		return "wrapped"
	}
	return "unknown"
}

// Record is one per-file entry of a coverage map in either layout.
type Record interface {
	Shape() Shape
	// Canonical returns the record in its single logical shape or an error
	// wrapping ErrMalformedRecord.
	Canonical() (*FileCoverage, error)
}

// FlatRecord is a record with fields at the top level.
type FlatRecord struct {
	Data FileCoverage
}

func (FlatRecord) Shape() Shape { return ShapeFlat }

func (r FlatRecord) Canonical() (*FileCoverage, error) {
	fc := r.Data
	if err := fc.validate(); err != nil {
		return nil, err
	}
	return &fc, nil
}

// WrappedRecord is a record whose fields live under "data".
type WrappedRecord struct {
	Data *FileCoverage
}

func (WrappedRecord) Shape() Shape { return ShapeWrapped }

func (r WrappedRecord) Canonical() (*FileCoverage, error) {
	if r.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrMalformedRecord)
	}
	fc := *r.Data
	if err := fc.validate(); err != nil {
		return nil, err
	}
	return &fc, nil
}

func (fc *FileCoverage) validate() error {
	switch {
	case fc.StatementMap == nil:
		return fmt.Errorf("%w: missing statementMap", ErrMalformedRecord)
	case fc.S == nil:
		return fmt.Errorf("%w: missing s", ErrMalformedRecord)
	case fc.BranchMap == nil:
		return fmt.Errorf("%w: missing branchMap", ErrMalformedRecord)
	case fc.B == nil:
		return fmt.Errorf("%w: missing b", ErrMalformedRecord)
	case fc.FnMap == nil:
		return fmt.Errorf("%w: missing fnMap", ErrMalformedRecord)
	case fc.F == nil:
		return fmt.Errorf("%w: missing f", ErrMalformedRecord)
	}
	return nil
}

// DecodeRecord picks the layout by the presence of the statementMap key.
func DecodeRecord(data []byte) (Record, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if _, ok := probe["statementMap"]; ok {
		var fc FileCoverage
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
		return FlatRecord{Data: fc}, nil
	}
	rec := WrappedRecord{}
	if raw, ok := probe["data"]; ok && !isNull(raw) {
		var fc FileCoverage
		if err := json.Unmarshal(raw, &fc); err != nil {
			return nil, err
		}
		rec.Data = &fc
	}
	return rec, nil
}

// Map is a coverage map keyed by the file path the instrumenter recorded.
type Map map[string]Record

func (m *Map) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	paths := make([]string, 0, len(raw))
	for p := range raw {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make(Map, len(raw))
	for _, path := range paths {
		rec, err := DecodeRecord(raw[path])
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out[path] = rec
	}
	*m = out
	return nil
}

// Paths returns the file paths in lexical order.
func (m Map) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
