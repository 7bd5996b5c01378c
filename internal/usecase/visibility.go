package usecase

import "mddocs/internal/domain"

// VisibleFor reports whether a member of the given kind with the given access
// belongs to the documented surface. Constructors and methods are kept apart
// by isConstructor; protected members of one kind never leak into the other.
func VisibleFor(kind domain.MemberKind, access domain.Access, isConstructor bool) bool {
	switch kind {
	case domain.Constructor:
		if !isConstructor {
			return false
		}
	case domain.Method:
		if isConstructor {
			return false
		}
	}
	return access.IsPublic() || access.IsProtected()
}

func propertyVisible(p *domain.PropertyDef) bool {
	for _, acc := range []*domain.Accessor{p.Getter, p.Setter} {
		if acc != nil && VisibleFor(domain.Property, acc.Access, false) {
			return true
		}
	}
	return false
}
