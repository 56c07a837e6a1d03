package annotate

import "covannot/internal/coverage"

// Options carries the collaborators of Create.
type Options struct {
	// WorkDir is the base for path relativisation.
	WorkDir string
	// Catalog resolves titles and messages. Nil echoes message keys.
	Catalog Catalog
}

// Create turns coverage maps into a sorted, duplicate-free list of valid
// annotations. Candidates from all maps are pooled before deduplication, so
// a file reported twice yields each annotation once.
//
// The only error is a wrapped coverage.ErrMalformedRecord for a file record
// missing one of its maps.
func Create(opts Options, maps ...coverage.Map) ([]Annotation, error) {
	sc := NewScanner(opts.WorkDir, opts.Catalog)

	var cands []Candidate
	for _, m := range maps {
		found, err := sc.Scan(m)
		if err != nil {
			return nil, err
		}
		cands = append(cands, found...)
	}

	Sort(cands)
	return FilterValid(Dedup(cands)), nil
}
