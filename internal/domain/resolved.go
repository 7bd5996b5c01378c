package domain

// ResolvedType pairs a public type definition with its documentation entry.
// Values are built once per resolution pass and never mutated afterwards.
type ResolvedType struct {
	Def         *TypeDef
	Doc         *DocEntry
	Module      string
	Inheritance *InheritanceNode
	Signature   string

	Constructors []*ResolvedMember
	Properties   []*ResolvedMember
	Methods      []*ResolvedMember
	Fields       []*ResolvedMember
}

// Members returns the resolved members of one kind in metadata order.
func (t *ResolvedType) Members(kind MemberKind) []*ResolvedMember {
	switch kind {
	case Constructor:
		return t.Constructors
	case Property:
		return t.Properties
	case Method:
		return t.Methods
	case Field:
		return t.Fields
	}
	return nil
}

// MemberCount is the total number of resolved members across all kinds.
func (t *ResolvedType) MemberCount() int {
	return len(t.Constructors) + len(t.Properties) + len(t.Methods) + len(t.Fields)
}

// ResolvedMember is a documented member. Exactly one of Method, Property and
// Field is set; constructors use Method.
type ResolvedMember struct {
	Kind     MemberKind
	Method   *MethodDef
	Property *PropertyDef
	Field    *FieldDef
	Doc      *DocEntry
	Type     *ResolvedType
}

// Name returns the metadata name of the member.
func (m *ResolvedMember) Name() string {
	switch {
	case m.Method != nil:
		return m.Method.Name
	case m.Property != nil:
		return m.Property.Name
	case m.Field != nil:
		return m.Field.Name
	}
	return ""
}

// Handle returns the decompiler handle of the member.
func (m *ResolvedMember) Handle() MemberHandle {
	switch {
	case m.Method != nil:
		return m.Method.Handle
	case m.Property != nil:
		return m.Property.Handle
	case m.Field != nil:
		return m.Field.Handle
	}
	return MemberHandle{}
}

// InheritanceNode is one link of an ancestor chain, most-derived first.
// Resolved is false for the terminal node of an ancestor that none of the
// loaded modules define.
type InheritanceNode struct {
	Name      string
	Namespace string
	Resolved  bool
	Parent    *InheritanceNode
}

// FullName joins namespace and name with a dot.
func (n *InheritanceNode) FullName() string {
	return TypeRef{Namespace: n.Namespace, Name: n.Name}.FullName()
}

// Chain flattens the node and its ancestors, most-derived first.
func (n *InheritanceNode) Chain() []*InheritanceNode {
	var chain []*InheritanceNode
	for cur := n; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	return chain
}
