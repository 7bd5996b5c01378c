package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mddocs/internal/domain"
)

const jsonDump = `{
  "name": "Acme.Widgets",
  "file": "Acme.Widgets.dll",
  "types": [
    {
      "namespace": "Acme.Widgets",
      "name": "Gauge",
      "visibility": "public",
      "kind": "class",
      "sealed": true,
      "attributes": ["ObsoleteAttribute"],
      "base": {"namespace": "Acme.Base", "name": "Control"},
      "fields": [
        {"name": "Count", "type": "System.Int32", "access": "public", "declaration": "public int Count = 5;"}
      ],
      "properties": [
        {"name": "Label", "type": "System.String", "getter": {"access": "public"}, "setter": {"access": "private"}}
      ],
      "methods": [
        {"name": ".ctor", "access": "public", "params": [{"name": "start", "type": "System.Int32"}]},
        {"name": "Reset", "access": "protected", "returns": "System.Void"}
      ]
    },
    {"namespace": "Acme.Widgets", "name": "Hidden", "visibility": "internal"}
  ]
}`

const yamlReference = `name: Acme.Base
types:
  - namespace: Acme.Base
    name: Control
    visibility: public
    kind: class
    abstract: true
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	mod := write(t, dir, "Acme.Widgets.json", jsonDump)
	ref := write(t, dir, "Acme.Base.yaml", yamlReference)

	m, err := Load(mod, ref)
	require.NoError(t, err)
	assert.Equal(t, "Acme.Widgets", m.Name())
	assert.Equal(t, "Acme.Widgets.dll", m.File())
	require.Len(t, m.Types(), 2)

	gauge := m.Types()[0]
	assert.Equal(t, "Acme.Widgets.Gauge", gauge.FullName())
	assert.True(t, gauge.Public)
	assert.True(t, gauge.Sealed)
	assert.Equal(t, domain.CategoryClass, gauge.Category)
	assert.Equal(t, []string{"ObsoleteAttribute"}, gauge.Attributes)
	assert.Equal(t, &domain.TypeRef{Namespace: "Acme.Base", Name: "Control"}, gauge.Base)
	assert.False(t, m.Types()[1].Public)

	require.Len(t, gauge.Fields, 1)
	assert.Equal(t, domain.AccessPublic, gauge.Fields[0].Access)
	assert.Equal(t, "public int Count = 5;", gauge.Fields[0].Handle.Declaration)
	assert.Equal(t, "Acme.Widgets.Gauge.Count", gauge.Fields[0].Handle.FullName)

	require.Len(t, gauge.Properties, 1)
	assert.Equal(t, domain.AccessPublic, gauge.Properties[0].Getter.Access)
	assert.Equal(t, domain.AccessPrivate, gauge.Properties[0].Setter.Access)

	require.Len(t, gauge.Methods, 2)
	assert.True(t, gauge.Methods[0].IsConstructor)
	assert.Equal(t, []domain.Parameter{{Name: "start", TypeName: "System.Int32"}}, gauge.Methods[0].Params)
	assert.False(t, gauge.Methods[1].IsConstructor)
	assert.Equal(t, domain.AccessFamily, gauge.Methods[1].Access)
	assert.Equal(t, "Acme.Widgets.Gauge..ctor(System.Int32)", gauge.Methods[0].Handle.String())
	assert.Equal(t, "()", gauge.Methods[1].Handle.Signature)
	assert.Empty(t, gauge.Fields[0].Handle.Signature)

	control, ok := m.ResolveType(*gauge.Base)
	require.True(t, ok)
	assert.True(t, control.Abstract)

	_, ok = m.ResolveType(domain.TypeRef{Namespace: "System", Name: "Object"})
	assert.False(t, ok)
}

func TestLoadNameFallback(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "Nameless.yml", "types: []\n")

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Nameless", m.Name())
	assert.Empty(t, m.Types())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = Load(write(t, dir, "broken.json", "{"))
	assert.Error(t, err)

	_, err = Load(write(t, dir, "access.json", `{"types":[{"name":"T","fields":[{"name":"f","access":"sometimes"}]}]}`))
	assert.ErrorContains(t, err, "unknown access")

	_, err = Load(write(t, dir, "kind.json", `{"types":[{"name":"T","kind":"record"}]}`))
	assert.ErrorContains(t, err, "unknown type kind")

	good := write(t, dir, "good.json", `{"types":[]}`)
	_, err = Load(good, filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestNewModule(t *testing.T) {
	base := NewModule("Base", []*domain.TypeDef{{Namespace: "B", Name: "Root"}})
	m := NewModule("Top", []*domain.TypeDef{{Namespace: "T", Name: "Leaf"}}, base)

	_, ok := m.ResolveType(domain.TypeRef{Namespace: "B", Name: "Root"})
	assert.True(t, ok)
	_, ok = m.ResolveType(domain.TypeRef{Namespace: "T", Name: "Leaf"})
	assert.True(t, ok)
	_, ok = base.ResolveType(domain.TypeRef{Namespace: "T", Name: "Leaf"})
	assert.False(t, ok)
}
