// Package markdown renders resolved types and members as Markdown pages.
package markdown

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"mddocs/internal/cref"
	"mddocs/internal/domain"
)

var (
	qualifier = regexp.MustCompile(`(?:[A-Za-z_][A-Za-z0-9_]*\.)+`)
	unsafe    = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	arrayRank = regexp.MustCompile(`\[[^\]]*\]`)
)

// markers spells out type-name punctuation that SafeName would drop, so
// "Int32", "Int32[]", "Int32@" and "Int32*" get different page names.
var markers = strings.NewReplacer(
	"@", "Ref",
	"*", "Ptr",
	"{", "Of",
	"}", "",
	",", "And",
)

// Section is the directory member pages of a kind are written to.
func Section(kind domain.MemberKind) string {
	switch kind {
	case domain.Constructor:
		return "Constructors"
	case domain.Property:
		return "Properties"
	case domain.Method:
		return "Methods"
	default:
		return "Fields"
	}
}

// SafeName makes s usable as a file name.
func SafeName(s string) string {
	return strings.Trim(unsafe.ReplaceAllString(s, "_"), "_")
}

// ShortTypeName drops namespace qualifiers from a metadata type name, keeping
// generic arguments: "System.Collections.Generic.List`1<System.String>"
// becomes "List{String}".
func ShortTypeName(name string) string {
	return qualifier.ReplaceAllString(cref.NormalizeTypeName(name), "")
}

// DisplayName is the member's heading name; methods and constructors carry
// their parameter types so overloads stay apart.
func DisplayName(m *domain.ResolvedMember) string {
	if m.Method == nil {
		return m.Name()
	}
	name := m.Method.Name
	if m.Method.IsConstructor {
		name = m.Type.Def.Name
	}
	params := make([]string, len(m.Method.Params))
	for i, p := range m.Method.Params {
		params[i] = ShortTypeName(p.TypeName)
	}
	return name + "(" + strings.Join(params, ", ") + ")"
}

func typeDir(t *domain.TypeDef) string {
	if t.Namespace == "" {
		return ""
	}
	return strings.ReplaceAll(t.Namespace, ".", "/")
}

// TypePagePath is the slash-separated page path of a type.
func TypePagePath(t *domain.TypeDef) string {
	return path.Join(typeDir(t), SafeName(t.Name)+".md")
}

// MemberPagePath is the slash-separated page path of a member.
func MemberPagePath(m *domain.ResolvedMember) string {
	def := m.Type.Def
	return path.Join(typeDir(def), SafeName(def.Name), Section(m.Kind), memberFile(m)+".md")
}

// memberLink is a member page path relative to its type page.
func memberLink(m *domain.ResolvedMember) string {
	return path.Join(SafeName(m.Type.Def.Name), Section(m.Kind), memberFile(m)+".md")
}

func memberFile(m *domain.ResolvedMember) string {
	if m.Method == nil {
		return SafeName(m.Name())
	}
	name := m.Method.Name
	if m.Method.IsConstructor {
		name = m.Type.Def.Name
		if m.Method.Static {
			name += "_static"
		}
	}
	parts := []string{name}
	for _, p := range m.Method.Params {
		parts = append(parts, fileToken(ShortTypeName(p.TypeName)))
	}
	return SafeName(strings.Join(parts, "_"))
}

// fileToken encodes a short type name for use in a file name:
// "Int32[]" becomes "Int32Array", "Int32[0:,0:]" "Int32Array2",
// "Int32@" "Int32Ref" and "List{String}" "ListOfString".
func fileToken(name string) string {
	name = arrayRank.ReplaceAllStringFunc(name, func(dims string) string {
		if rank := strings.Count(dims, ",") + 1; rank > 1 {
			return "Array" + strconv.Itoa(rank)
		}
		return "Array"
	})
	return markers.Replace(name)
}
