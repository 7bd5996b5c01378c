package usecase

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"mddocs/internal/cref"
	"mddocs/internal/docindex"
	"mddocs/internal/domain"
	"mddocs/internal/logger"
	"mddocs/internal/overload"
	"mddocs/internal/port"
)

// ResolveOptions tunes identifier matching and parallelism.
type ResolveOptions struct {
	// ExactIdentifiers requires qualified names to be equal instead of
	// accepting any identifier that ends with the expected name.
	ExactIdentifiers bool
	// LegacyParamSplit splits documented parameter lists on every comma and
	// compares metadata type names verbatim.
	LegacyParamSplit bool
	// Workers bounds concurrent type resolution; <= 0 uses GOMAXPROCS.
	Workers int
	// Filter, when set, drops types before any documentation lookup.
	Filter func(t *domain.TypeDef) bool
}

// Resolver pairs module metadata with documentation entries. It holds no
// mutable state, so one Resolver may serve concurrent calls.
type Resolver struct {
	module    port.ModuleView
	index     *docindex.Index
	ids       cref.Builder
	overloads *overload.Disambiguator
	workers   int
	filter    func(t *domain.TypeDef) bool
}

// NewResolver creates a resolver over module and index.
func NewResolver(module port.ModuleView, index *docindex.Index, opts ResolveOptions) *Resolver {
	r := &Resolver{
		module:    module,
		index:     index,
		ids:       cref.Builder{Mode: cref.Suffix},
		overloads: overload.New(),
		workers:   opts.Workers,
		filter:    opts.Filter,
	}
	if opts.ExactIdentifiers {
		r.ids.Mode = cref.Exact
	}
	if opts.LegacyParamSplit {
		r.overloads = overload.NewLegacy()
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// ResolveModule resolves every public, documented type of the module. The
// result follows metadata order. After the first fatal error no further
// types are started, and the error of the earliest failed type is returned.
func (r *Resolver) ResolveModule() ([]*domain.ResolvedType, error) {
	var candidates []*domain.TypeDef
	for _, t := range r.module.Types() {
		if !t.Public {
			continue
		}
		if r.filter != nil && !r.filter(t) {
			logger.Logger.Debugw("type filtered out", "type", t.FullName())
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	type result struct {
		index int
		rt    *domain.ResolvedType
		err   error
	}

	numWorkers := r.workers
	if numWorkers > len(candidates) {
		numWorkers = len(candidates)
	}

	work := make(chan int, len(candidates))
	results := make(chan result, len(candidates))
	var failed atomic.Bool
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if failed.Load() {
					continue
				}
				rt, err := r.ResolveType(candidates[idx])
				if err != nil {
					failed.Store(true)
				}
				results <- result{index: idx, rt: rt, err: err}
			}
		}()
	}

	for i := range candidates {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	indexed := make([]*domain.ResolvedType, len(candidates))
	errs := make([]error, len(candidates))
	for res := range results {
		indexed[res.index] = res.rt
		errs[res.index] = res.err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var out []*domain.ResolvedType
	for _, rt := range indexed {
		if rt != nil {
			out = append(out, rt)
		}
	}
	return out, nil
}

// ResolveType binds t to its documentation entry and resolves its members,
// ancestor chain and signature. An undocumented type yields (nil, nil).
func (r *Resolver) ResolveType(t *domain.TypeDef) (*domain.ResolvedType, error) {
	key := cref.ForType(t)
	res := r.index.Lookup(domain.KindType, func(e *domain.DocEntry) bool {
		return r.ids.Matches(key, e.ID)
	})
	if res.Cardinality() == docindex.None {
		logger.Logger.Debugw("undocumented type skipped", "type", t.FullName())
		return nil, nil
	}
	doc, err := res.Unique()
	if err != nil {
		return nil, errors.Wrapf(err, "type %s", t.FullName())
	}

	rt := &domain.ResolvedType{
		Def:         t,
		Doc:         doc,
		Module:      r.module.Name(),
		Inheritance: ResolveChain(r.module, t),
		Signature:   TypeSignature(t),
	}

	for _, kind := range domain.MemberKinds {
		members, err := r.ResolveMembers(rt, kind)
		if err != nil {
			return nil, err
		}
		switch kind {
		case domain.Constructor:
			rt.Constructors = members
		case domain.Property:
			rt.Properties = members
		case domain.Method:
			rt.Methods = members
		case domain.Field:
			rt.Fields = members
		}
	}
	return rt, nil
}

// ResolveMembers returns the visible, documented members of one kind in the
// order the type declares them.
func (r *Resolver) ResolveMembers(rt *domain.ResolvedType, kind domain.MemberKind) ([]*domain.ResolvedMember, error) {
	typeName := rt.Def.FullName()
	var out []*domain.ResolvedMember

	bind := func(name string, key cref.Key, pred docindex.Predicate, m *domain.ResolvedMember) error {
		res := r.index.Lookup(key.Kind, pred)
		if res.Cardinality() == docindex.None {
			logger.Logger.Debugw("undocumented member skipped", "type", typeName, "member", name, "kind", kind)
			return nil
		}
		doc, err := res.Unique()
		if err != nil {
			return errors.Wrapf(err, "%s %s of %s", kind, name, typeName)
		}
		m.Doc = doc
		m.Type = rt
		out = append(out, m)
		return nil
	}

	switch kind {
	case domain.Constructor, domain.Method:
		for _, md := range rt.Def.Methods {
			if !VisibleFor(kind, md.Access, md.IsConstructor) {
				continue
			}
			key := cref.ForMethod(typeName, md)
			pred := func(e *domain.DocEntry) bool {
				return r.ids.Matches(key, e.ID) && r.overloads.Same(md, e)
			}
			if err := bind(md.Name, key, pred, &domain.ResolvedMember{Kind: kind, Method: md}); err != nil {
				return nil, err
			}
		}
	case domain.Property:
		for _, pd := range rt.Def.Properties {
			if !propertyVisible(pd) {
				continue
			}
			key := cref.ForProperty(typeName, pd.Name)
			pred := func(e *domain.DocEntry) bool { return r.ids.Matches(key, e.ID) }
			if err := bind(pd.Name, key, pred, &domain.ResolvedMember{Kind: kind, Property: pd}); err != nil {
				return nil, err
			}
		}
	case domain.Field:
		for _, fd := range rt.Def.Fields {
			if !VisibleFor(kind, fd.Access, false) {
				continue
			}
			key := cref.ForField(typeName, fd.Name)
			pred := func(e *domain.DocEntry) bool { return r.ids.Matches(key, e.ID) }
			if err := bind(fd.Name, key, pred, &domain.ResolvedMember{Kind: kind, Field: fd}); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errors.Newf("unknown member kind %q", kind)
	}
	return out, nil
}
