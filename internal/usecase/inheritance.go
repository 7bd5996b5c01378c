package usecase

import (
	"mddocs/internal/domain"
	"mddocs/internal/port"
)

// ResolveChain builds the ancestor chain of t, most-derived first. The chain
// ends at a type without a base, or at the first base that no loaded module
// defines; that terminal node carries the reference's name and Resolved=false.
func ResolveChain(module port.ModuleView, t *domain.TypeDef) *domain.InheritanceNode {
	head := &domain.InheritanceNode{Name: t.Name, Namespace: t.Namespace, Resolved: true}
	seen := map[domain.TypeRef]bool{t.Ref(): true}

	cur, def := head, t
	for def.Base != nil {
		base, ok := module.ResolveType(*def.Base)
		if !ok {
			cur.Parent = &domain.InheritanceNode{Name: def.Base.Name, Namespace: def.Base.Namespace}
			break
		}
		if seen[base.Ref()] {
			break
		}
		seen[base.Ref()] = true

		cur.Parent = &domain.InheritanceNode{Name: base.Name, Namespace: base.Namespace, Resolved: true}
		cur, def = cur.Parent, base
	}
	return head
}
