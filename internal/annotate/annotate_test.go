package annotate

import (
	"errors"
	"reflect"
	"testing"

	"covannot/internal/coverage"
)

var stubCatalog = CatalogFunc(func(key MessageKey) string {
	return "<" + string(key) + ">"
})

func mustMap(t *testing.T, doc string) coverage.Map {
	t.Helper()
	m, err := coverage.DecodeBytes([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	return m
}

func mustCreate(t *testing.T, maps ...coverage.Map) []Annotation {
	t.Helper()
	got, err := Create(Options{WorkDir: "/repo", Catalog: stubCatalog}, maps...)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return got
}

const emptyMaps = `"branchMap": {}, "b": {}, "fnMap": {}, "f": {}`

func TestCreate_UncoveredStatement(t *testing.T) {
	m := mustMap(t, `{"/repo/src/a.ts": {
		"statementMap": {"0": {"start": {"line": 5, "column": 2}, "end": {"line": 5, "column": 10}}},
		"s": {"0": 0}, `+emptyMaps+`}}`)

	got := mustCreate(t, m)
	want := []Annotation{{
		Path:        "src/a.ts",
		StartLine:   5,
		EndLine:     5,
		StartColumn: 2,
		EndColumn:   10,
		Level:       LevelWarning,
		Title:       "<notCoveredStatementTitle>",
		Message:     "<notCoveredStatementMessage>",
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Create() = %+v, want %+v", got, want)
	}
}

func TestCreate_BranchArms(t *testing.T) {
	m := mustMap(t, `{"/repo/src/a.ts": {
		"statementMap": {}, "s": {},
		"branchMap": {"0": {"locations": [
			{"start": {"line": 3, "column": 4}, "end": {"line": 3, "column": 9}},
			{"start": {"line": 4, "column": 4}, "end": {"line": 4, "column": 9}}
		]}},
		"b": {"0": [0, 1]},
		"fnMap": {}, "f": {}}}`)

	got := mustCreate(t, m)
	if len(got) != 1 {
		t.Fatalf("expected one annotation, got %+v", got)
	}
	if got[0].StartLine != 3 || got[0].Title != "<notCoveredBranchTitle>" || got[0].Message != "<notCoveredBranchMessage>" {
		t.Errorf("unexpected annotation %+v", got[0])
	}
}

func TestCreate_BranchWithoutLocations(t *testing.T) {
	m := mustMap(t, `{"/repo/src/a.ts": {
		"statementMap": {}, "s": {},
		"branchMap": {"0": {"type": "if"}, "1": {"locations": null}, "2": {"locations": []}},
		"b": {"0": [0, 0], "1": [0], "2": []},
		"fnMap": {}, "f": {}}}`)

	if got := mustCreate(t, m); len(got) != 0 {
		t.Fatalf("expected no annotations, got %+v", got)
	}
}

func TestCreate_BranchCountsMisaligned(t *testing.T) {
	m := mustMap(t, `{"/repo/src/a.ts": {
		"statementMap": {}, "s": {},
		"branchMap": {
			"0": {"locations": [{"start": {"line": 1}, "end": {"line": 1}}, {"start": {"line": 2}, "end": {"line": 2}}]},
			"1": {"locations": [{"start": {"line": 3}, "end": {"line": 3}}]}
		},
		"b": {"0": [0]},
		"fnMap": {}, "f": {}}}`)

	got := mustCreate(t, m)
	if len(got) != 1 || got[0].StartLine != 1 {
		t.Fatalf("expected only the first arm of branch 0, got %+v", got)
	}
}

func TestCreate_UncoveredFunction(t *testing.T) {
	m := mustMap(t, `{"src/a.ts": {
		"statementMap": {}, "s": {}, "branchMap": {}, "b": {},
		"fnMap": {
			"0": {"name": "hit", "decl": {"start": {"line": 1, "column": 9}, "end": {"line": 1, "column": 12}}},
			"1": {"name": "missed", "decl": {"start": {"line": 8, "column": 9}, "end": {"line": 8, "column": 15}}},
			"2": {"name": "legacy", "loc": {"start": {"line": 20, "column": 0}, "end": {"line": 24, "column": 1}}}
		},
		"f": {"0": 2, "1": 0, "2": 0}}}`)

	got := mustCreate(t, m)
	want := []Annotation{
		{Path: "src/a.ts", StartLine: 8, EndLine: 8, StartColumn: 9, EndColumn: 15, Level: LevelWarning,
			Title: "<notCoveredFunctionTitle>", Message: "<notCoveredFunctionMessage>"},
		{Path: "src/a.ts", StartLine: 20, EndLine: 24, Level: LevelWarning,
			Title: "<notCoveredFunctionTitle>", Message: "<notCoveredFunctionMessage>"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Create() = %+v, want %+v", got, want)
	}
}

func TestCreate_DifferentFilesAreDistinct(t *testing.T) {
	stmt := `{"statementMap": {"0": {"start": {"line": 2}, "end": {"line": 2}}}, "s": {"0": 0}, ` + emptyMaps + `}`
	m := mustMap(t, `{"/repo/a.ts": `+stmt+`, "/repo/b.ts": `+stmt+`}`)

	got := mustCreate(t, m)
	if len(got) != 2 || got[0].Path != "a.ts" || got[1].Path != "b.ts" {
		t.Fatalf("expected a.ts and b.ts, got %+v", got)
	}
}

func TestCreate_MultiLineOmitsColumns(t *testing.T) {
	m := mustMap(t, `{"/repo/a.ts": {
		"statementMap": {"0": {"start": {"line": 3, "column": 6}, "end": {"line": 7, "column": 2}}},
		"s": {"0": 0}, `+emptyMaps+`}}`)

	got := mustCreate(t, m)
	if len(got) != 1 {
		t.Fatalf("expected one annotation, got %+v", got)
	}
	if got[0].StartLine != 3 || got[0].EndLine != 7 || got[0].HasColumns() {
		t.Fatalf("unexpected annotation %+v", got[0])
	}
}

func TestCreate_SameFileTwice(t *testing.T) {
	stmt := `{"statementMap": {"0": {"start": {"line": 2, "column": 1}, "end": {"line": 2, "column": 8}}}, "s": {"0": 0}, ` + emptyMaps + `}`
	abs := mustMap(t, `{"/repo/src/a.ts": `+stmt+`}`)
	rel := mustMap(t, `{"src/a.ts": {"data": `+stmt+`}}`)

	got := mustCreate(t, abs, rel, abs)
	if len(got) != 1 {
		t.Fatalf("expected duplicates to collapse, got %+v", got)
	}
}

func TestCreate_DropsInvalidLines(t *testing.T) {
	m := mustMap(t, `{"/repo/a.ts": {
		"statementMap": {
			"0": {"start": {"column": 1}, "end": {"line": 4}},
			"1": {"start": {"line": 4}, "end": {"line": null}},
			"2": {"start": {"line": 6}, "end": {"line": 6}}
		},
		"s": {"0": 0, "1": 0, "2": 0}, `+emptyMaps+`}}`)

	got := mustCreate(t, m)
	if len(got) != 1 || got[0].StartLine != 6 {
		t.Fatalf("expected only the statement on line 6, got %+v", got)
	}
}

func TestCreate_OnlyNumericZeroIsUncovered(t *testing.T) {
	m := mustMap(t, `{"/repo/a.ts": {
		"statementMap": {
			"0": {"start": {"line": 1}, "end": {"line": 1}},
			"1": {"start": {"line": 2}, "end": {"line": 2}},
			"2": {"start": {"line": 3}, "end": {"line": 3}},
			"3": {"start": {"line": 4}, "end": {"line": 4}}
		},
		"s": {"0": null, "1": "0", "2": false}, `+emptyMaps+`}}`)

	if got := mustCreate(t, m); len(got) != 0 {
		t.Fatalf("expected nothing uncovered, got %+v", got)
	}
}

func TestCreate_MalformedRecord(t *testing.T) {
	m := mustMap(t, `{"/repo/a.ts": {"statementMap": {}, "s": {}}}`)

	_, err := Create(Options{WorkDir: "/repo"}, m)
	if !errors.Is(err, coverage.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestCreate_NilCatalogEchoesKeys(t *testing.T) {
	m := mustMap(t, `{"/repo/a.ts": {
		"statementMap": {"0": {"start": {"line": 1}, "end": {"line": 1}}},
		"s": {"0": 0}, `+emptyMaps+`}}`)

	got, err := Create(Options{WorkDir: "/repo"}, m)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(got) != 1 || got[0].Title != string(NotCoveredStatementTitle) {
		t.Fatalf("unexpected annotations %+v", got)
	}
}

func TestCreate_Deterministic(t *testing.T) {
	doc := `{
		"/repo/z.ts": {"statementMap": {"0": {"start": {"line": 9}, "end": {"line": 9}}, "1": {"start": {"line": 1}, "end": {"line": 1}}},
			"s": {"0": 0, "1": 0},
			"branchMap": {"0": {"locations": [{"start": {"line": 1}, "end": {"line": 1}}]}}, "b": {"0": [0]},
			"fnMap": {"0": {"decl": {"start": {"line": 1}, "end": {"line": 1}}}}, "f": {"0": 0}},
		"/repo/a.ts": {"data": {"statementMap": {"0": {"start": {"line": 2, "column": 3}, "end": {"line": 2, "column": 5}}},
			"s": {"0": 0}, "branchMap": {}, "b": {}, "fnMap": {}, "f": {}}}
	}`

	first := mustCreate(t, mustMap(t, doc))
	for range 10 {
		again := mustCreate(t, mustMap(t, doc))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("output changed between runs:\n%+v\n%+v", first, again)
		}
	}
	if len(first) != 5 {
		t.Fatalf("expected 5 annotations, got %d: %+v", len(first), first)
	}
	if first[0].Path != "a.ts" {
		t.Errorf("expected a.ts first, got %s", first[0].Path)
	}
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		workDir string
		name    string
		want    string
	}{
		{"/repo", "/repo/src/a.ts", "src/a.ts"},
		{"/repo/", "/repo/src/../lib/b.ts", "lib/b.ts"},
		{"/repo", "src/a.ts", "src/a.ts"},
		{"/repo", "/other/c.ts", "../other/c.ts"},
		{"/repo", "/repo", ""},
		{"", "/abs/d.ts", "/abs/d.ts"},
		{"/repo", "/repo/café.ts", "café.ts"},
	}
	for _, tt := range tests {
		if got := RelativePath(tt.workDir, tt.name); got != tt.want {
			t.Errorf("RelativePath(%q, %q) = %q, want %q", tt.workDir, tt.name, got, tt.want)
		}
	}
}
