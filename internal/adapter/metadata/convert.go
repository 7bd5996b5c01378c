package metadata

import (
	"strings"

	"github.com/cockroachdb/errors"

	"mddocs/internal/domain"
)

var accessNames = map[string]domain.Access{
	"private":            domain.AccessPrivate,
	"famandassem":        domain.AccessFamANDAssem,
	"private protected":  domain.AccessFamANDAssem,
	"assembly":           domain.AccessAssembly,
	"internal":           domain.AccessAssembly,
	"family":             domain.AccessFamily,
	"protected":          domain.AccessFamily,
	"famorassem":         domain.AccessFamORAssem,
	"protected internal": domain.AccessFamORAssem,
	"public":             domain.AccessPublic,
}

func parseAccess(s string) (domain.Access, error) {
	if s == "" {
		return domain.AccessPrivate, nil
	}
	a, ok := accessNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, errors.Newf("unknown access %q", s)
	}
	return a, nil
}

func parseCategory(s string) (domain.TypeCategory, error) {
	switch domain.TypeCategory(strings.ToLower(s)) {
	case "", domain.CategoryClass:
		return domain.CategoryClass, nil
	case domain.CategoryStruct, domain.CategoryInterface, domain.CategoryEnum, domain.CategoryDelegate:
		return domain.TypeCategory(strings.ToLower(s)), nil
	}
	return "", errors.Newf("unknown type kind %q", s)
}

func convertTypes(dump *moduleDump) ([]*domain.TypeDef, error) {
	types := make([]*domain.TypeDef, 0, len(dump.Types))
	for _, td := range dump.Types {
		t, err := convertType(td)
		if err != nil {
			return nil, errors.Wrapf(err, "type %s.%s", td.Namespace, td.Name)
		}
		types = append(types, t)
	}
	return types, nil
}

func convertType(td typeDump) (*domain.TypeDef, error) {
	if td.Name == "" {
		return nil, errors.New("type without a name")
	}
	category, err := parseCategory(td.Kind)
	if err != nil {
		return nil, err
	}

	t := &domain.TypeDef{
		Namespace:  td.Namespace,
		Name:       td.Name,
		Public:     strings.EqualFold(td.Visibility, "public"),
		Category:   category,
		Abstract:   td.Abstract,
		Sealed:     td.Sealed,
		Attributes: td.Attributes,
	}
	if td.Base != nil {
		t.Base = &domain.TypeRef{Namespace: td.Base.Namespace, Name: td.Base.Name}
	}
	t.Handle = domain.MemberHandle{Token: td.Token, FullName: t.FullName(), Declaration: td.Declaration}

	for _, fd := range td.Fields {
		access, err := parseAccess(fd.Access)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", fd.Name)
		}
		t.Fields = append(t.Fields, &domain.FieldDef{
			Name:     fd.Name,
			TypeName: fd.Type,
			Access:   access,
			Static:   fd.Static,
			Handle:   handle(t, fd.Name, fd.Token, fd.Declaration),
		})
	}

	for _, pd := range td.Properties {
		p := &domain.PropertyDef{
			Name:     pd.Name,
			TypeName: pd.Type,
			Handle:   handle(t, pd.Name, pd.Token, pd.Declaration),
		}
		if p.Getter, err = accessor(pd.Getter); err != nil {
			return nil, errors.Wrapf(err, "property %s getter", pd.Name)
		}
		if p.Setter, err = accessor(pd.Setter); err != nil {
			return nil, errors.Wrapf(err, "property %s setter", pd.Name)
		}
		t.Properties = append(t.Properties, p)
	}

	for _, md := range td.Methods {
		access, err := parseAccess(md.Access)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", md.Name)
		}
		m := &domain.MethodDef{
			Name:          md.Name,
			IsConstructor: md.Constructor || md.Name == ".ctor" || md.Name == ".cctor",
			Access:        access,
			Static:        md.Static || md.Name == ".cctor",
			ReturnType:    md.Returns,
			Handle:        handle(t, md.Name, md.Token, md.Declaration),
		}
		types := make([]string, len(md.Params))
		for i, p := range md.Params {
			m.Params = append(m.Params, domain.Parameter{Name: p.Name, TypeName: p.Type})
			types[i] = p.Type
		}
		m.Handle.Signature = "(" + strings.Join(types, ",") + ")"
		t.Methods = append(t.Methods, m)
	}
	return t, nil
}

func accessor(ad *accessorDump) (*domain.Accessor, error) {
	if ad == nil {
		return nil, nil
	}
	a, err := parseAccess(ad.Access)
	if err != nil {
		return nil, err
	}
	return &domain.Accessor{Access: a}, nil
}

func handle(t *domain.TypeDef, member, token, declaration string) domain.MemberHandle {
	return domain.MemberHandle{
		Token:       token,
		FullName:    t.FullName() + "." + member,
		Declaration: declaration,
	}
}
