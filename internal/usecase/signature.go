package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"mddocs/internal/domain"
	"mddocs/internal/port"
)

// TypeSignature renders the declaration header of t: one "[Attribute]" line
// per custom attribute, then access, modifiers, category and name. A nil
// definition yields "".
func TypeSignature(t *domain.TypeDef) string {
	if t == nil {
		return ""
	}

	var sb strings.Builder
	for _, a := range t.Attributes {
		sb.WriteString("[" + attributeName(a) + "]\n")
	}

	parts := []string{"internal"}
	if t.Public {
		parts[0] = "public"
	}
	category := t.Category
	if category == "" {
		category = domain.CategoryClass
	}
	if category == domain.CategoryClass {
		switch {
		case t.Abstract && t.Sealed:
			parts = append(parts, "static")
		case t.Abstract:
			parts = append(parts, "abstract")
		case t.Sealed:
			parts = append(parts, "sealed")
		}
	}
	parts = append(parts, string(category), t.Name)

	sb.WriteString(strings.Join(parts, " "))
	return sb.String()
}

func attributeName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if short := strings.TrimSuffix(name, "Attribute"); short != "" {
		return short
	}
	return name
}

// Synthesizer produces member declaration text through a decompiler.
type Synthesizer struct {
	decompiler port.Decompiler
}

func NewSynthesizer(decompiler port.Decompiler) *Synthesizer {
	return &Synthesizer{decompiler: decompiler}
}

// FieldDeclaration returns the field's declaration with any initializer
// removed: "public int Count = 5;" becomes "public int Count;". The cut is
// made at the first '=', so a string default containing '=' is cut early.
func (s *Synthesizer) FieldDeclaration(ctx context.Context, f *domain.FieldDef) (string, error) {
	text, err := s.decompile(ctx, f.Handle)
	if err != nil {
		return "", err
	}
	if i := strings.IndexByte(text, '='); i >= 0 {
		text = strings.TrimSpace(text[:i]) + ";"
	}
	return text, nil
}

// Declaration returns the declaration text of any resolved member.
func (s *Synthesizer) Declaration(ctx context.Context, m *domain.ResolvedMember) (string, error) {
	if m.Field != nil {
		return s.FieldDeclaration(ctx, m.Field)
	}
	return s.decompile(ctx, m.Handle())
}

func (s *Synthesizer) decompile(ctx context.Context, h domain.MemberHandle) (string, error) {
	text, err := s.decompiler.Decompile(ctx, h)
	if err != nil {
		if !errors.Is(err, domain.ErrDecompiler) {
			err = errors.Mark(err, domain.ErrDecompiler)
		}
		return "", errors.Wrapf(err, "declaration of %s", h)
	}
	return strings.TrimSpace(text), nil
}
