// Package cref builds and parses documentation-comment identifiers
// ("T:Ns.Type", "M:Ns.Type.#ctor(System.Int32)", ...).
package cref

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"mddocs/internal/domain"
)

// Mode selects how a built key is compared against exported identifiers.
type Mode int

const (
	// Suffix accepts any identifier whose qualified name ends with the key.
	// "Ns.SubFoo.Bar" therefore matches a key for "Foo.Bar".
	Suffix Mode = iota
	// Exact requires the qualified names to be equal.
	Exact
)

// Key is the identifier a member would have in the documentation export,
// without its parameter list.
type Key struct {
	Kind domain.Kind
	Name string
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.Name
}

// ForType builds the key of a type definition.
func ForType(t *domain.TypeDef) Key {
	return Key{Kind: domain.KindType, Name: t.FullName()}
}

// ForField builds the key of a field declared on typeName.
func ForField(typeName, name string) Key {
	return Key{Kind: domain.KindField, Name: typeName + "." + name}
}

// ForProperty builds the key of a property declared on typeName.
func ForProperty(typeName, name string) Key {
	return Key{Kind: domain.KindProperty, Name: typeName + "." + name}
}

// ForMethod builds the key of a method or constructor declared on typeName.
func ForMethod(typeName string, m *domain.MethodDef) Key {
	name := m.Name
	if m.IsConstructor {
		name = "#ctor"
		if m.Static {
			name = "#cctor"
		}
	}
	return Key{Kind: domain.KindMethod, Name: typeName + "." + name}
}

// Builder compares keys to parsed identifiers under a fixed Mode.
type Builder struct {
	Mode Mode
}

// Matches reports whether id is an export of k.
func (b Builder) Matches(k Key, id domain.CanonicalID) bool {
	if id.Kind != k.Kind {
		return false
	}
	if b.Mode == Exact {
		return id.Name == k.Name
	}
	return strings.HasSuffix(id.Name, k.Name)
}

var knownKinds = map[domain.Kind]bool{
	domain.KindType:     true,
	domain.KindMethod:   true,
	domain.KindProperty: true,
	domain.KindField:    true,
	domain.KindEvent:    true,
	domain.KindNS:       true,
}

// Parse splits a raw identifier into kind, qualified name and parameter list.
func Parse(raw string) (domain.CanonicalID, error) {
	if len(raw) < 3 || raw[1] != ':' {
		return domain.CanonicalID{}, errors.Newf("malformed identifier %q", raw)
	}
	kind := domain.Kind(raw[:1])
	if !knownKinds[kind] {
		return domain.CanonicalID{}, errors.Newf("unknown identifier kind %q in %q", kind, raw)
	}

	id := domain.CanonicalID{Kind: kind, Name: raw[2:]}
	open := strings.IndexByte(id.Name, '(')
	if open < 0 {
		return id, nil
	}
	// conversion operators carry a "~ReturnType" after the list
	closing := strings.LastIndexByte(id.Name, ')')
	if closing < open {
		return domain.CanonicalID{}, errors.Newf("unbalanced parameter list in %q", raw)
	}
	id.HasParams = true
	id.RawParams = id.Name[open+1 : closing]
	id.Name = id.Name[:open]
	return id, nil
}

// SplitFunc splits the text between an identifier's parentheses into
// parameter type names.
type SplitFunc func(raw string) []string

// SplitLegacy splits on every comma. Generic instantiations with more than one
// argument, such as "System.Collections.Generic.Dictionary{System.String,System.Int32}",
// come apart into several entries.
func SplitLegacy(raw string) []string {
	return strings.Split(raw, ",")
}

// SplitStructural splits on commas that are not nested inside {}, [] or ().
func SplitStructural(raw string) []string {
	if raw == "" {
		return nil
	}
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, raw[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, raw[start:])
}

// ParamTypes returns the parameter type names of id, or nil when id has no
// parameter list.
func ParamTypes(id domain.CanonicalID, split SplitFunc) []string {
	if !id.HasParams {
		return nil
	}
	return split(id.RawParams)
}

var genericArity = regexp.MustCompile("`[0-9]+<")

// NormalizeTypeName rewrites a metadata type name into the form used inside
// documentation identifiers: nested types joined with '.', generic arguments
// in braces, by-reference suffix '@'.
func NormalizeTypeName(name string) string {
	name = strings.ReplaceAll(name, "/", ".")
	name = genericArity.ReplaceAllString(name, "<")
	name = strings.NewReplacer("<", "{", ">", "}").Replace(name)
	if strings.HasSuffix(name, "&") {
		name = strings.TrimSuffix(name, "&") + "@"
	}
	return name
}
