package domain

// Kind is the single-letter prefix of a documentation identifier.
type Kind string

const (
	KindType     Kind = "T"
	KindMethod   Kind = "M"
	KindProperty Kind = "P"
	KindField    Kind = "F"
	KindEvent    Kind = "E"
	KindNS       Kind = "N"
)

// MemberKind distinguishes the four member variants a type page is split into.
type MemberKind string

const (
	Constructor MemberKind = "constructor"
	Method      MemberKind = "method"
	Property    MemberKind = "property"
	Field       MemberKind = "field"
)

// MemberKinds is the order member sections are resolved and rendered in.
var MemberKinds = []MemberKind{Constructor, Property, Method, Field}

// Access mirrors the member-access field of compiled metadata.
type Access int

const (
	AccessPrivate Access = iota
	AccessFamANDAssem
	AccessAssembly
	AccessFamily
	AccessFamORAssem
	AccessPublic
)

// IsPublic reports whether the member is public.
func (a Access) IsPublic() bool { return a == AccessPublic }

// IsProtected reports whether the member is reachable from derived types
// outside the module.
func (a Access) IsProtected() bool { return a == AccessFamily || a == AccessFamORAssem }

func (a Access) String() string {
	switch a {
	case AccessFamANDAssem:
		return "private protected"
	case AccessAssembly:
		return "internal"
	case AccessFamily:
		return "protected"
	case AccessFamORAssem:
		return "protected internal"
	case AccessPublic:
		return "public"
	default:
		return "private"
	}
}

// TypeCategory is the declared category of a type definition.
type TypeCategory string

const (
	CategoryClass     TypeCategory = "class"
	CategoryStruct    TypeCategory = "struct"
	CategoryInterface TypeCategory = "interface"
	CategoryEnum      TypeCategory = "enum"
	CategoryDelegate  TypeCategory = "delegate"
)

// TypeRef names a type that may or may not be defined in the loaded modules.
type TypeRef struct {
	Namespace string
	Name      string
}

// FullName joins namespace and name with a dot.
func (r TypeRef) FullName() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "." + r.Name
}

// MemberHandle is what the decompiler needs to locate a definition.
type MemberHandle struct {
	Token       string
	FullName    string
	Signature   string // "(System.Int32,System.String)" for methods and constructors, else empty
	Declaration string // optional declaration text recorded alongside the metadata
}

// String is the full name with the parameter signature, which tells
// overloads apart.
func (h MemberHandle) String() string {
	return h.FullName + h.Signature
}

// Key identifies the member for memoisation.
func (h MemberHandle) Key() string {
	return h.Token + "\x00" + h.String()
}

// Parameter is one formal parameter of a method or constructor.
type Parameter struct {
	Name     string
	TypeName string // metadata full name of the parameter type
}

type TypeDef struct {
	Namespace  string
	Name       string
	Public     bool
	Category   TypeCategory
	Abstract   bool
	Sealed     bool
	Attributes []string // custom attribute type names, declaration order
	Base       *TypeRef
	Handle     MemberHandle

	Fields     []*FieldDef
	Properties []*PropertyDef
	Methods    []*MethodDef // constructors included
}

// FullName returns the namespace-qualified name.
func (t *TypeDef) FullName() string {
	return t.Ref().FullName()
}

// Ref returns a reference to t.
func (t *TypeDef) Ref() TypeRef {
	return TypeRef{Namespace: t.Namespace, Name: t.Name}
}

type FieldDef struct {
	Name     string
	TypeName string
	Access   Access
	Static   bool
	Handle   MemberHandle
}

// Accessor is a property getter or setter.
type Accessor struct {
	Access Access
}

type PropertyDef struct {
	Name     string
	TypeName string
	Getter   *Accessor
	Setter   *Accessor
	Handle   MemberHandle
}

type MethodDef struct {
	Name          string
	IsConstructor bool
	Access        Access
	Static        bool
	ReturnType    string
	Params        []Parameter
	Handle        MemberHandle
}

// HasParameters reports whether the method declares at least one parameter.
func (m *MethodDef) HasParameters() bool { return len(m.Params) > 0 }

// ParamDoc documents one parameter or type parameter.
type ParamDoc struct {
	Name string
	Text string
}

// ExceptionDoc documents one exception a member may throw.
type ExceptionDoc struct {
	Cref string
	Text string
}

// DocEntry is one <member> element of the documentation export.
type DocEntry struct {
	Raw string // identifier exactly as exported, e.g. "M:Ns.T.Foo(System.Int32)"
	ID  CanonicalID

	Summary    string
	Remarks    string
	Returns    string
	Value      string
	Example    string
	Params     []ParamDoc // every <param> element, document order
	TypeParams []ParamDoc
	Exceptions []ExceptionDoc
}

// CanonicalID is a parsed documentation identifier.
type CanonicalID struct {
	Kind      Kind
	Name      string // qualified name without the parameter list
	HasParams bool   // a parenthesized suffix was present
	RawParams string // text between the parentheses, verbatim
}
