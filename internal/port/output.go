package port

import "mddocs/internal/domain"

// Page is one rendered documentation file, addressed relative to the output
// directory.
type Page struct {
	Path    string
	Content []byte
}

// Renderer turns resolved entities into pages.
type Renderer interface {
	TypePage(t *domain.ResolvedType) (Page, error)

	MemberPage(m *domain.ResolvedMember, declaration string) (Page, error)
}

// PageStore remembers what previous runs wrote so unchanged pages can be
// skipped and stale ones removed.
type PageStore interface {
	PageHash(path string) (string, bool, error)

	PutPage(path, hash string) error

	DeletePage(path string) error

	ListPages() ([]string, error)

	Close() error
}

// DeclarationStore keeps decompiled declarations between runs.
type DeclarationStore interface {
	Declaration(key string) (string, bool, error)

	PutDeclaration(key, text string) error

	// PruneDeclarations deletes entries whose key does not start with scope.
	PruneDeclarations(scope string) (int, error)
}
