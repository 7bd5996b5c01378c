// Package docindex answers predicate queries over a parsed documentation
// export. An Index is immutable after construction and safe for concurrent
// readers.
package docindex

import (
	"strings"

	"github.com/cockroachdb/errors"

	"mddocs/internal/domain"
)

// Predicate selects documentation entries.
type Predicate func(e *domain.DocEntry) bool

// Cardinality summarises how many entries a lookup matched.
type Cardinality int

const (
	None Cardinality = iota
	One
	Many
)

// Result is the outcome of a single lookup.
type Result struct {
	Matches []*domain.DocEntry
}

// Cardinality reports whether the lookup matched nothing, one entry, or more.
func (r Result) Cardinality() Cardinality {
	switch len(r.Matches) {
	case 0:
		return None
	case 1:
		return One
	default:
		return Many
	}
}

// Unique returns the single match. It fails with ErrAmbiguousDocumentation
// when more than one entry matched and ErrInconsistentIndex when none did.
func (r Result) Unique() (*domain.DocEntry, error) {
	switch r.Cardinality() {
	case One:
		return r.Matches[0], nil
	case Many:
		ids := make([]string, len(r.Matches))
		for i, m := range r.Matches {
			ids[i] = m.Raw
		}
		err := errors.Mark(errors.Newf("%d documentation entries match", len(r.Matches)), domain.ErrAmbiguousDocumentation)
		err = errors.WithDetailf(err, "candidates: %s", strings.Join(ids, ", "))
		return nil, errors.WithHint(err, "identifiers that are dotted suffixes of one another collide; enable matching.exact_identifiers or fix the export")
	default:
		return nil, errors.Mark(errors.New("no documentation entry matches"), domain.ErrInconsistentIndex)
	}
}

// Index is an ordered forest of documentation entries.
type Index struct {
	entries []*domain.DocEntry
	byKind  map[domain.Kind][]*domain.DocEntry
}

// New builds an index over entries, preserving their order.
func New(entries []*domain.DocEntry) *Index {
	idx := &Index{
		entries: entries,
		byKind:  make(map[domain.Kind][]*domain.DocEntry),
	}
	for _, e := range entries {
		idx.byKind[e.ID.Kind] = append(idx.byKind[e.ID.Kind], e)
	}
	return idx
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entries returns all entries in export order.
func (idx *Index) Entries() []*domain.DocEntry {
	return idx.entries
}

// Lookup evaluates pred once per entry of the given kind and returns every
// match in export order.
func (idx *Index) Lookup(kind domain.Kind, pred Predicate) Result {
	var res Result
	for _, e := range idx.byKind[kind] {
		if pred(e) {
			res.Matches = append(res.Matches, e)
		}
	}
	return res
}

// Exists reports whether any entry of the given kind satisfies pred.
func (idx *Index) Exists(kind domain.Kind, pred Predicate) bool {
	for _, e := range idx.byKind[kind] {
		if pred(e) {
			return true
		}
	}
	return false
}

// FetchUnique returns the single entry satisfying pred, or a fatal error
// when there is not exactly one.
func (idx *Index) FetchUnique(kind domain.Kind, pred Predicate) (*domain.DocEntry, error) {
	return idx.Lookup(kind, pred).Unique()
}
