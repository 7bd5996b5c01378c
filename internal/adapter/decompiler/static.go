// Package decompiler provides port.Decompiler implementations.
package decompiler

import (
	"context"

	"github.com/cockroachdb/errors"

	"mddocs/internal/domain"
)

// Static returns the declaration text recorded in the metadata dump.
type Static struct{}

// NewStatic returns a Static decompiler.
func NewStatic() *Static {
	return &Static{}
}

// Decompile returns h.Declaration, or ErrDecompiler when the dump carried none.
func (Static) Decompile(_ context.Context, h domain.MemberHandle) (string, error) {
	if h.Declaration == "" {
		return "", errors.Mark(errors.Newf("no declaration recorded for %s", h.FullName), domain.ErrDecompiler)
	}
	return h.Declaration, nil
}
