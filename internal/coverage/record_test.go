package coverage

import (
	"errors"
	"strings"
	"testing"
)

const flatRecord = `{
	"path": "/repo/src/a.ts",
	"statementMap": {"0": {"start": {"line": 5, "column": 2}, "end": {"line": 5, "column": 10}}},
	"s": {"0": 0},
	"branchMap": {"0": {"type": "if", "locations": [
		{"start": {"line": 7, "column": 0}, "end": {"line": 7, "column": 4}},
		{"start": {"line": 8, "column": 0}, "end": {"line": 9, "column": null}}
	]}},
	"b": {"0": [0, 3]},
	"fnMap": {"0": {"name": "run", "decl": {"start": {"line": 1, "column": 9}, "end": {"line": 1, "column": 12}}}},
	"f": {"0": 1}
}`

func TestDecodeRecord_Flat(t *testing.T) {
	rec, err := DecodeRecord([]byte(flatRecord))
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.Shape() != ShapeFlat {
		t.Fatalf("expected flat shape, got %s", rec.Shape())
	}
	fc, err := rec.Canonical()
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}

	st := fc.StatementMap["0"]
	start, end := st.Bounds()
	if start.Line != 5 || start.Column == nil || *start.Column != 2 {
		t.Errorf("unexpected statement start: %+v", start)
	}
	if end.Line != 5 || end.Column == nil || *end.Column != 10 {
		t.Errorf("unexpected statement end: %+v", end)
	}
	if !fc.S["0"].Uncovered() {
		t.Errorf("expected statement 0 to be uncovered")
	}

	arms := fc.BranchMap["0"].Locations
	if len(arms) != 2 {
		t.Fatalf("expected 2 branch locations, got %d", len(arms))
	}
	if arms[1].End.HasColumn() {
		t.Errorf("null column should decode as absent")
	}
	counts := fc.B["0"]
	if !counts.At(0).Uncovered() || counts.At(1).Uncovered() {
		t.Errorf("unexpected branch counts: %+v", counts)
	}
	if counts.At(5).Uncovered() {
		t.Errorf("out of range arm must read as covered")
	}

	if fn := fc.FnMap["0"].Span(); fn.Start == nil || fn.Start.Line != 1 {
		t.Errorf("unexpected function span %+v", fn)
	}
	if fc.F["0"].Uncovered() {
		t.Errorf("function 0 was hit once")
	}
}

func TestDecodeRecord_Wrapped(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"data": ` + flatRecord + `}`))
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.Shape() != ShapeWrapped {
		t.Fatalf("expected wrapped shape, got %s", rec.Shape())
	}
	fc, err := rec.Canonical()
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if len(fc.StatementMap) != 1 || len(fc.BranchMap) != 1 || len(fc.FnMap) != 1 {
		t.Fatalf("wrapped record lost fields: %+v", fc)
	}
}

func TestCanonical_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"wrapped without data", `{"other": 1}`, "data"},
		{"wrapped with null data", `{"data": null}`, "data"},
		{"missing branchMap", `{"statementMap": {}, "s": {}, "b": {}, "fnMap": {}, "f": {}}`, "branchMap"},
		{"null statementMap", `{"statementMap": null, "s": {}, "branchMap": {}, "b": {}, "fnMap": {}, "f": {}}`, "statementMap"},
		{"missing f", `{"statementMap": {}, "s": {}, "branchMap": {}, "b": {}, "fnMap": {}}`, "f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeRecord([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeRecord: %v", err)
			}
			_, err = rec.Canonical()
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("expected ErrMalformedRecord, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should name %q", err, tt.field)
			}
		})
	}
}

func TestLocation_BadValues(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		line      int
		badLine   bool
		hasColumn bool
	}{
		{"complete", `{"line": 3, "column": 4}`, 3, false, true},
		{"missing line", `{"column": 4}`, 0, true, true},
		{"null line", `{"line": null}`, 0, true, false},
		{"string line", `{"line": "3"}`, 0, true, false},
		{"fractional line", `{"line": 3.5}`, 0, true, false},
		{"fractional line near integer", `{"line": 2.0000001}`, 0, true, false},
		{"huge line", `{"line": 1e300}`, 0, true, false},
		{"number instead of object", `5`, 0, true, false},
		{"string instead of object", `"x"`, 0, true, false},
		{"integral float line", `{"line": 3.0}`, 3, false, false},
		{"fractional column", `{"line": 1, "column": 0.5}`, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var loc Location
			if err := loc.UnmarshalJSON([]byte(tt.input)); err != nil {
				t.Fatalf("UnmarshalJSON: %v", err)
			}
			if loc.Line != tt.line || loc.BadLine != tt.badLine || loc.HasColumn() != tt.hasColumn {
				t.Errorf("got %+v (column set: %v)", loc, loc.HasColumn())
			}
		})
	}
}

func TestCount_OnlyNumericZeroIsUncovered(t *testing.T) {
	tests := []struct {
		input     string
		uncovered bool
	}{
		{`0`, true},
		{`-0`, true},
		{`0.0`, true},
		{`1`, false},
		{`null`, false},
		{`"0"`, false},
		{`false`, false},
	}

	for _, tt := range tests {
		var c Count
		if err := c.UnmarshalJSON([]byte(tt.input)); err != nil {
			t.Fatalf("UnmarshalJSON(%s): %v", tt.input, err)
		}
		if c.Uncovered() != tt.uncovered {
			t.Errorf("Count(%s).Uncovered() = %v, want %v", tt.input, c.Uncovered(), tt.uncovered)
		}
	}
}

func TestCounts_NonArray(t *testing.T) {
	var c Counts
	if err := c.UnmarshalJSON([]byte(`null`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if c != nil {
		t.Errorf("expected nil counts, got %v", c)
	}
}

func TestLookup_Numeric(t *testing.T) {
	m := map[string]int{"0": 10, "12": 20}
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"0", 10, true},
		{"00", 10, true},
		{"12", 20, true},
		{"+12", 20, true},
		{"3", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := Lookup(m, tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFnMapping_Span(t *testing.T) {
	decl := &Range{Start: &Location{Line: 1}, End: &Location{Line: 2}}
	loc := &Range{Start: &Location{Line: 3}, End: &Location{Line: 4}}

	if got := (FnMapping{Decl: decl, Loc: loc}).Span(); got.Start.Line != 1 {
		t.Errorf("decl must win over loc, got %+v", got.Start)
	}
	if got := (FnMapping{Loc: loc}).Span(); got.Start.Line != 3 {
		t.Errorf("expected loc fallback, got %+v", got.Start)
	}
	if got := (FnMapping{}).Span(); got.Start != nil || got.End != nil {
		t.Errorf("expected empty range, got %+v", got)
	}
}

// A wrong JSON type inside one entry must not cost the rest of the report.
func TestDecodeBytes_TolerantEntries(t *testing.T) {
	const valid = `"1": {"start": {"line": 3, "column": 0}, "end": {"line": 3, "column": 5}}`
	tests := []struct {
		name  string
		entry string
		check func(t *testing.T, fc *FileCoverage)
	}{
		{
			name: "number as statement start",
			entry: `"statementMap": {"0": {"start": 5, "end": {"line": 4}}, ` + valid + `},
				"s": {"0": 0, "1": 0}, "branchMap": {}, "b": {}, "fnMap": {}, "f": {}`,
			check: func(t *testing.T, fc *FileCoverage) {
				start, end := fc.StatementMap["0"].Bounds()
				if !start.BadLine || end.BadLine || end.Line != 4 {
					t.Errorf("unexpected bounds %+v %+v", start, end)
				}
			},
		},
		{
			name: "number as function name",
			entry: `"statementMap": {` + valid + `}, "s": {"1": 0}, "branchMap": {}, "b": {},
				"fnMap": {"0": {"name": 7, "decl": {"start": {"line": 1}, "end": {"line": 1}}}, "1": 5}, "f": {"0": 0, "1": 0}`,
			check: func(t *testing.T, fc *FileCoverage) {
				if sp := fc.FnMap["0"].Span(); sp.Start == nil || sp.Start.Line != 1 {
					t.Errorf("decl lost: %+v", sp)
				}
				if sp := fc.FnMap["1"].Span(); sp.Start != nil || sp.End != nil {
					t.Errorf("non-object function must have no spans, got %+v", sp)
				}
			},
		},
		{
			name: "string as branch locations",
			entry: `"statementMap": {` + valid + `}, "s": {"1": 0},
				"branchMap": {"0": {"locations": "x"}, "1": 3, "2": {"locations": [5, {"start": {"line": 8}, "end": {"line": 8}}]}},
				"b": {"0": [0], "1": [0], "2": [0, 0]}, "fnMap": {}, "f": {}`,
			check: func(t *testing.T, fc *FileCoverage) {
				if n := len(fc.BranchMap["0"].Locations); n != 0 {
					t.Errorf("string locations must decode to none, got %d", n)
				}
				if n := len(fc.BranchMap["1"].Locations); n != 0 {
					t.Errorf("non-object branch must have no arms, got %d", n)
				}
				arms := fc.BranchMap["2"].Locations
				if len(arms) != 2 || arms[0].Start != nil || arms[1].Start.Line != 8 {
					t.Errorf("unexpected arms %+v", arms)
				}
			},
		},
		{
			name: "fractional line",
			entry: `"statementMap": {"0": {"start": {"line": 2.5}, "end": {"line": 2.5}}, ` + valid + `},
				"s": {"0": 0, "1": 0}, "branchMap": {}, "b": {}, "fnMap": {}, "f": {}`,
			check: func(t *testing.T, fc *FileCoverage) {
				start, end := fc.StatementMap["0"].Bounds()
				if !start.BadLine || !end.BadLine {
					t.Errorf("fractional lines must be unusable, got %+v %+v", start, end)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := DecodeBytes([]byte(`{"a.ts": {"path": 7, ` + tt.entry + `}}`))
			if err != nil {
				t.Fatalf("DecodeBytes: %v", err)
			}
			fc, err := m["a.ts"].Canonical()
			if err != nil {
				t.Fatalf("Canonical: %v", err)
			}
			start, _ := fc.StatementMap["1"].Bounds()
			if start.Line != 3 || start.BadLine || !fc.S["1"].Uncovered() {
				t.Errorf("valid statement on line 3 lost: %+v", start)
			}
			tt.check(t, fc)
		})
	}
}

func TestRange_NullEndIsAbsent(t *testing.T) {
	var r Range
	if err := r.UnmarshalJSON([]byte(`{"start": null, "end": {"line": 2}}`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	start, end := r.Bounds()
	if start.Line != 0 || start.BadLine || start.HasColumn() || end.Line != 2 {
		t.Errorf("null start must default like an absent one, got %+v %+v", start, end)
	}
}
