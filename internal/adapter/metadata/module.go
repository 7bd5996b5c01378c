// Package metadata implements port.ModuleView over a metadata dump of a
// compiled module (JSON or YAML).
package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"mddocs/internal/domain"
)

// Module is a loaded module plus the modules it may resolve ancestors from.
// It is immutable after loading.
type Module struct {
	name       string
	file       string
	types      []*domain.TypeDef
	byRef      map[domain.TypeRef]*domain.TypeDef
	references []*Module
}

// NewModule builds a Module from definitions already in memory.
func NewModule(name string, types []*domain.TypeDef, references ...*Module) *Module {
	m := &Module{
		name:       name,
		types:      types,
		byRef:      make(map[domain.TypeRef]*domain.TypeDef, len(types)),
		references: references,
	}
	for _, t := range types {
		m.byRef[t.Ref()] = t
	}
	return m
}

// Load reads a dump file; ".yaml" and ".yml" are decoded as YAML, anything
// else as JSON. References are loaded the same way and consulted by
// ResolveType after the module itself.
func Load(path string, references ...string) (*Module, error) {
	dump, err := readDump(path)
	if err != nil {
		return nil, err
	}

	var refs []*Module
	for _, rp := range references {
		ref, err := Load(rp)
		if err != nil {
			return nil, errors.Wrapf(err, "load reference %s", rp)
		}
		refs = append(refs, ref)
	}

	types, err := convertTypes(dump)
	if err != nil {
		return nil, errors.Wrapf(err, "module %s", path)
	}

	m := NewModule(dump.Name, types, refs...)
	m.file = dump.File
	if m.name == "" {
		m.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

func readDump(path string) (*moduleDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read metadata dump")
	}

	var dump moduleDump
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &dump)
	default:
		err = json.Unmarshal(data, &dump)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return &dump, nil
}

// Name returns the module's simple name.
func (m *Module) Name() string {
	return m.name
}

// File returns the module file name recorded in the dump, if any.
func (m *Module) File() string {
	return m.file
}

// Types returns the module's definitions in dump order.
func (m *Module) Types() []*domain.TypeDef {
	return m.types
}

// ResolveType looks ref up in the module, then in each reference in order.
func (m *Module) ResolveType(ref domain.TypeRef) (*domain.TypeDef, bool) {
	if t, ok := m.byRef[ref]; ok {
		return t, true
	}
	for _, r := range m.references {
		if t, ok := r.ResolveType(ref); ok {
			return t, true
		}
	}
	return nil, false
}
