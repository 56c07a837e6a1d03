package coverage

import (
	"bytes"
	"encoding/json"
	"math"

	"fortio.org/safecast"
)

var jsonNull = []byte("null")

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// decodeNumber reads a finite JSON number. Strings, booleans, objects and
// null are rejected.
func decodeNumber(raw json.RawMessage) (float64, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isKind reports whether raw is a JSON value that opens with delim.
func isKind(raw []byte, delim byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == delim
}

// decodeInt reads an integral JSON number that fits into int.
func decodeInt(raw json.RawMessage) (int, bool) {
	f, ok := decodeNumber(raw)
	if !ok || math.Trunc(f) != f {
		return 0, false
	}
	n, err := safecast.Convert[int](f)
	if err != nil {
		return 0, false
	}
	return n, true
}

// UnmarshalJSON never fails on odd values: a bad line is recorded in
// BadLine and a bad column is dropped. A location that is not an object has
// no usable line.
func (l *Location) UnmarshalJSON(data []byte) error {
	if !isKind(data, '{') {
		*l = Location{BadLine: true}
		return nil
	}
	var raw struct {
		Line   json.RawMessage `json:"line"`
		Column json.RawMessage `json:"column"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = Location{}
	if n, ok := decodeInt(raw.Line); ok {
		l.Line = n
	} else {
		l.BadLine = true
	}
	if n, ok := decodeInt(raw.Column); ok {
		l.Column = &n
	}
	return nil
}

// UnmarshalJSON treats a range that is not an object as one with both ends
// absent.
func (r *Range) UnmarshalJSON(data []byte) error {
	*r = Range{}
	if !isKind(data, '{') {
		return nil
	}
	type plain Range
	return json.Unmarshal(data, (*plain)(r))
}

// UnmarshalJSON drops locations that are not an array; the site then has
// no arms to report.
func (b *BranchMapping) UnmarshalJSON(data []byte) error {
	*b = BranchMapping{}
	if !isKind(data, '{') {
		return nil
	}
	var raw struct {
		Locations json.RawMessage `json:"locations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !isKind(raw.Locations, '[') {
		return nil
	}
	return json.Unmarshal(raw.Locations, &b.Locations)
}

// UnmarshalJSON treats a function entry that is not an object as one
// without spans.
func (f *FnMapping) UnmarshalJSON(data []byte) error {
	*f = FnMapping{}
	if !isKind(data, '{') {
		return nil
	}
	type plain FnMapping
	return json.Unmarshal(data, (*plain)(f))
}

func (c *Count) UnmarshalJSON(data []byte) error {
	f, ok := decodeNumber(data)
	*c = Count{Hits: f, Numeric: ok}
	return nil
}

// UnmarshalJSON accepts any value; non-arrays decode to nil so that the
// scanner sees every arm as covered.
func (c *Counts) UnmarshalJSON(data []byte) error {
	if !isKind(data, '[') {
		*c = nil
		return nil
	}
	var items []Count
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = items
	return nil
}
