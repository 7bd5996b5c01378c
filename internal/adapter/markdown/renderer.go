package markdown

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"mddocs/internal/adapter/xmldoc"
	"mddocs/internal/domain"
	"mddocs/internal/port"
)

// Renderer produces one page per type and one per member.
type Renderer struct {
	typeTmpl   *template.Template
	memberTmpl *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"section":     Section,
		"displayName": DisplayName,
		"memberLink":  memberLink,
		"shortType":   ShortTypeName,
		"shortCref":   xmldoc.ShortName,
		"oneLine":     oneLine,
		"title":       title,
		"indent":      indent,
	}
	return &Renderer{
		typeTmpl:   template.Must(template.New("type").Funcs(funcs).Parse(typeTemplate)),
		memberTmpl: template.Must(template.New("member").Funcs(funcs).Parse(memberTemplate)),
	}
}

type sectionView struct {
	Title   string
	Members []*domain.ResolvedMember
}

type typeView struct {
	*domain.ResolvedType
	Ancestors []*domain.InheritanceNode // root first
	Sections  []sectionView
}

// TypePage renders the overview page of t.
func (r *Renderer) TypePage(t *domain.ResolvedType) (port.Page, error) {
	view := typeView{ResolvedType: t}
	chain := t.Inheritance.Chain()
	for i := len(chain) - 1; i >= 0; i-- {
		view.Ancestors = append(view.Ancestors, chain[i])
	}
	for _, kind := range domain.MemberKinds {
		if members := t.Members(kind); len(members) > 0 {
			view.Sections = append(view.Sections, sectionView{Title: Section(kind), Members: members})
		}
	}

	var buf bytes.Buffer
	if err := r.typeTmpl.Execute(&buf, view); err != nil {
		return port.Page{}, errors.Wrapf(err, "render type %s", t.Def.FullName())
	}
	return port.Page{Path: TypePagePath(t.Def), Content: buf.Bytes()}, nil
}

type memberView struct {
	*domain.ResolvedMember
	Declaration string
	ParamTypes  map[string]string
	ReturnType  string
}

// MemberPage renders the page of one member with its declaration text.
func (r *Renderer) MemberPage(m *domain.ResolvedMember, declaration string) (port.Page, error) {
	view := memberView{ResolvedMember: m, Declaration: declaration, ParamTypes: map[string]string{}}
	switch {
	case m.Method != nil:
		for _, p := range m.Method.Params {
			view.ParamTypes[p.Name] = ShortTypeName(p.TypeName)
		}
		if !m.Method.IsConstructor && m.Method.ReturnType != "" && m.Method.ReturnType != "System.Void" {
			view.ReturnType = ShortTypeName(m.Method.ReturnType)
		}
	case m.Property != nil:
		view.ReturnType = ShortTypeName(m.Property.TypeName)
	case m.Field != nil:
		view.ReturnType = ShortTypeName(m.Field.TypeName)
	}

	var buf bytes.Buffer
	if err := r.memberTmpl.Execute(&buf, view); err != nil {
		return port.Page{}, errors.Wrapf(err, "render %s %s", m.Kind, m.Name())
	}
	return port.Page{Path: MemberPagePath(m), Content: buf.Bytes()}, nil
}

func oneLine(s string) string {
	if i := strings.Index(s, "\n\n"); i >= 0 {
		s = s[:i]
	}
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const typeTemplate = `# {{ .Def.Name }} {{ title (print .Def.Category) }}

Namespace: {{ .Def.Namespace }}
Assembly: {{ .Module }}
{{- with .Doc.Summary }}

{{ . }}
{{- end }}

## Inheritance Hierarchy
{{ range $i, $n := .Ancestors }}
{{ indent $i }}- {{ if eq $n.FullName $.Def.FullName }}**{{ $n.FullName }}**{{ else }}{{ $n.FullName }}{{ end }}
{{- end }}

## Syntax

` + "```csharp" + `
{{ .Signature }}
` + "```" + `
{{- with .Doc.TypeParams }}

### Type Parameters
{{ range . }}
- ` + "`{{ .Name }}`" + `: {{ .Text }}
{{- end }}
{{- end }}
{{- with .Doc.Remarks }}

## Remarks

{{ . }}
{{- end }}
{{- range .Sections }}

## {{ .Title }}

| Name | Summary |
|------|---------|
{{- range .Members }}
| [{{ displayName . }}]({{ memberLink . }}) | {{ oneLine .Doc.Summary }} |
{{- end }}
{{- end }}
{{- with .Doc.Example }}

## Example

{{ . }}
{{- end }}
`

const memberTemplate = `# {{ .Type.Def.Name }}.{{ displayName .ResolvedMember }} {{ title (print .Kind) }}

Namespace: {{ .Type.Def.Namespace }}
Assembly: {{ .Type.Module }}
{{- with .Doc.Summary }}

{{ . }}
{{- end }}

## Syntax

` + "```csharp" + `
{{ .Declaration }}
` + "```" + `
{{- with .Doc.Params }}

### Parameters
{{ range . }}
- ` + "`{{ .Name }}`" + ` {{ with index $.ParamTypes .Name }}({{ . }}) {{ end }}- {{ .Text }}
{{- end }}
{{- end }}
{{- if .ReturnType }}

### {{ if .Method }}Returns{{ else }}Value{{ end }}

` + "`{{ .ReturnType }}`" + `
{{- if .Method }}{{ with .Doc.Returns }}: {{ . }}{{ end }}{{ else }}{{ with .Doc.Value }}: {{ . }}{{ end }}{{ end }}
{{- end }}
{{- with .Doc.Exceptions }}

### Exceptions

| Exception | Condition |
|-----------|-----------|
{{- range . }}
| {{ shortCref .Cref }} | {{ oneLine .Text }} |
{{- end }}
{{- end }}
{{- with .Doc.Remarks }}

## Remarks

{{ . }}
{{- end }}
{{- with .Doc.Example }}

## Example

{{ . }}
{{- end }}
`
