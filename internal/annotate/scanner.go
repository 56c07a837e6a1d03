package annotate

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"covannot/internal/coverage"
)

// Scanner walks coverage maps and produces raw candidates.
type Scanner struct {
	workDir string
	catalog Catalog
}

// NewScanner returns a scanner that relativises paths against workDir and
// resolves titles through catalog. A nil catalog echoes message keys.
func NewScanner(workDir string, catalog Catalog) *Scanner {
	if catalog == nil {
		catalog = keyCatalog{}
	}
	return &Scanner{workDir: workDir, catalog: catalog}
}

// Scan returns one candidate per uncovered statement, branch arm and
// function in m, in no particular order.
func (s *Scanner) Scan(m coverage.Map) ([]Candidate, error) {
	var out []Candidate
	for _, name := range m.Paths() {
		var err error
		out, err = s.scanRecord(out, name, m[name])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Scanner) scanRecord(out []Candidate, name string, rec coverage.Record) ([]Candidate, error) {
	if rec == nil {
		return out, fmt.Errorf("%s: %w: empty entry", name, coverage.ErrMalformedRecord)
	}
	fc, err := rec.Canonical()
	if err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}
	path := RelativePath(s.workDir, name)

	for _, idx := range sortedKeys(fc.StatementMap) {
		hits, _ := coverage.Lookup(fc.S, idx)
		if !hits.Uncovered() {
			continue
		}
		start, end := fc.StatementMap[idx].Bounds()
		out = append(out, s.candidate(path, KindStatement, start, end))
	}

	for _, idx := range sortedKeys(fc.BranchMap) {
		arms := fc.BranchMap[idx].Locations
		if len(arms) == 0 {
			continue
		}
		counts, _ := coverage.Lookup(fc.B, idx)
		for i, arm := range arms {
			if !counts.At(i).Uncovered() {
				continue
			}
			start, end := arm.Bounds()
			out = append(out, s.candidate(path, KindBranch, start, end))
		}
	}

	for _, idx := range sortedKeys(fc.FnMap) {
		hits, _ := coverage.Lookup(fc.F, idx)
		if !hits.Uncovered() {
			continue
		}
		start, end := fc.FnMap[idx].Span().Bounds()
		out = append(out, s.candidate(path, KindFunction, start, end))
	}

	return out, nil
}

func (s *Scanner) candidate(path string, kind Kind, start, end coverage.Location) Candidate {
	title, message := kind.keys()
	return Candidate{
		Path:    path,
		Range:   NormalizeRange(start, end),
		Level:   LevelWarning,
		Title:   s.catalog.Message(title),
		Message: s.catalog.Message(message),
	}
}

// RelativePath expresses name relative to workDir with forward slashes and
// NFC-normalised text. Relative names are taken to be relative to workDir
// already. An empty workDir leaves the path unrelativised.
func RelativePath(workDir, name string) string {
	p := filepath.Clean(name)
	if workDir != "" {
		base := filepath.Clean(workDir)
		target := p
		if !filepath.IsAbs(target) {
			target = filepath.Join(base, target)
		}
		if rel, err := filepath.Rel(base, target); err == nil {
			p = rel
		}
	}
	if p == "." {
		p = ""
	}
	return norm.NFC.String(filepath.ToSlash(p))
}

// sortedKeys orders index keys numerically, falling back to lexical order
// for keys that are not numbers.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, ei := strconv.Atoi(keys[i])
		nj, ej := strconv.Atoi(keys[j])
		if ei == nil && ej == nil && ni != nj {
			return ni < nj
		}
		if (ei == nil) != (ej == nil) {
			return ei == nil
		}
		return keys[i] < keys[j]
	})
	return keys
}
