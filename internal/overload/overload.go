// Package overload decides whether a documentation entry describes a
// particular method or constructor overload.
package overload

import (
	"mddocs/internal/cref"
	"mddocs/internal/domain"
)

// Disambiguator compares method parameter lists with documentation entries.
type Disambiguator struct {
	split     cref.SplitFunc
	normalize func(string) string
}

// New returns a Disambiguator using structural parameter splitting and
// metadata type-name normalisation.
func New() *Disambiguator {
	return &Disambiguator{split: cref.SplitStructural, normalize: cref.NormalizeTypeName}
}

// NewLegacy returns a Disambiguator that splits parameter lists on every comma
// and compares metadata type names verbatim.
func NewLegacy() *Disambiguator {
	return &Disambiguator{split: cref.SplitLegacy, normalize: func(s string) string { return s }}
}

// Same reports whether e documents m. All of the following must hold:
// m has parameters exactly when e has <param> children, the counts agree,
// the names agree in order, and the types agree in order with the entry's
// parenthesized identifier suffix.
func (d *Disambiguator) Same(m *domain.MethodDef, e *domain.DocEntry) bool {
	if m.HasParameters() != (len(e.Params) > 0) {
		return false
	}
	if len(m.Params) != len(e.Params) {
		return false
	}
	for i, p := range m.Params {
		if p.Name != e.Params[i].Name {
			return false
		}
	}

	types := cref.ParamTypes(e.ID, d.split)
	if len(types) != len(m.Params) {
		return false
	}
	for i, p := range m.Params {
		if d.normalize(p.TypeName) != types[i] {
			return false
		}
	}
	return true
}
