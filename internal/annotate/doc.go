// Package annotate turns a coverage map into check-run annotations.
//
// # Pipeline
//
// Create runs three stages over its input:
//
//   - NormalizeRange maps an instrumenter {start, end} pair onto a canonical
//     Range. Columns survive only for single-line ranges with both columns
//     present.
//   - Scanner walks statements, branch arms and functions of every file and
//     emits one Candidate per item whose hit count is exactly zero.
//   - Sort, Dedup and FilterValid order the candidates by Compare, collapse
//     adjacent equal entries and drop the ones with unusable line numbers.
//
// Compare is the only notion of equality in the package. Dedup relies on
// Sort having grouped equal candidates next to each other.
//
// # Collaborators
//
// The working directory and the message Catalog are passed in through
// Options. The package performs no IO and keeps no state between calls;
// reading reports lives in internal/coverage and rendering in
// internal/annotfmt.
package annotate
