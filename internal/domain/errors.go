package domain

import "github.com/cockroachdb/errors"

var (
	// ErrAmbiguousDocumentation marks a lookup that matched more than one
	// documentation entry. It aborts the resolution pass.
	ErrAmbiguousDocumentation = errors.New("ambiguous documentation match")

	// ErrInconsistentIndex marks a unique fetch that found nothing after an
	// existence check with the same predicate succeeded.
	ErrInconsistentIndex = errors.New("inconsistent documentation index")

	// ErrDecompiler marks a failure of the external decompiler.
	ErrDecompiler = errors.New("decompiler failure")
)
