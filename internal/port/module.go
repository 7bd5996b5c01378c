package port

import (
	"context"

	"mddocs/internal/domain"
)

// ModuleView is read-only access to the type definitions of a compiled module.
type ModuleView interface {
	// Name is the module's simple name.
	Name() string

	// Types enumerates the module's type definitions in metadata order.
	Types() []*domain.TypeDef

	// ResolveType finds the definition of ref in the module or any module it
	// references. ok is false when no loaded module defines it.
	ResolveType(ref domain.TypeRef) (def *domain.TypeDef, ok bool)
}

// Decompiler produces declaration text for a member handle. Implementations
// are called from concurrent workers and may be slow.
type Decompiler interface {
	Decompile(ctx context.Context, h domain.MemberHandle) (string, error)
}
