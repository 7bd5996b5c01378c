package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mddocs/internal/adapter/metadata"
	"mddocs/internal/adapter/xmldoc"
	"mddocs/internal/docindex"
	"mddocs/internal/domain"
)

const widgetsXML = `<?xml version="1.0"?>
<doc>
  <assembly><name>Acme.Widgets</name></assembly>
  <members>
    <member name="T:Acme.Widgets.Control"><summary>Base of all widgets.</summary></member>
    <member name="T:Acme.Widgets.Gauge"><summary>A dial.</summary></member>
    <member name="M:Acme.Widgets.Gauge.#ctor"><summary>Creates an empty gauge.</summary></member>
    <member name="M:Acme.Widgets.Gauge.#ctor(System.Int32)">
      <summary>Creates a gauge.</summary>
      <param name="max">Upper bound.</param>
    </member>
    <member name="M:Acme.Widgets.Gauge.Set(System.Int32)">
      <summary>Sets a value.</summary>
      <param name="value">The value.</param>
    </member>
    <member name="M:Acme.Widgets.Gauge.Set(System.Int32,System.String)">
      <summary>Sets a labelled value.</summary>
      <param name="value">The value.</param>
      <param name="label">The label.</param>
    </member>
    <member name="M:Acme.Widgets.Gauge.Reset"><summary>Resets.</summary></member>
    <member name="P:Acme.Widgets.Gauge.Count"><summary>Current count.</summary></member>
    <member name="F:Acme.Widgets.Gauge.Max"><summary>Upper bound.</summary></member>
    <member name="T:Acme.Widgets.Hidden"><summary>Not public.</summary></member>
  </members>
</doc>`

func widgetTypes() []*domain.TypeDef {
	control := &domain.TypeDef{
		Namespace: "Acme.Widgets", Name: "Control", Public: true, Category: domain.CategoryClass, Abstract: true,
		Base: &domain.TypeRef{Namespace: "System", Name: "Object"},
	}
	gauge := &domain.TypeDef{
		Namespace: "Acme.Widgets", Name: "Gauge", Public: true, Category: domain.CategoryClass, Sealed: true,
		Attributes: []string{"System.SerializableAttribute"},
		Base:       &domain.TypeRef{Namespace: "Acme.Widgets", Name: "Control"},
		Fields: []*domain.FieldDef{
			{Name: "Max", TypeName: "System.Int32", Access: domain.AccessPublic,
				Handle: domain.MemberHandle{FullName: "Acme.Widgets.Gauge.Max", Declaration: "public int Max = 100;"}},
			{Name: "value", TypeName: "System.Int32", Access: domain.AccessPrivate,
				Handle: domain.MemberHandle{FullName: "Acme.Widgets.Gauge.value"}},
		},
		Properties: []*domain.PropertyDef{
			{Name: "Count", TypeName: "System.Int32", Getter: &domain.Accessor{Access: domain.AccessPublic},
				Handle: domain.MemberHandle{FullName: "Acme.Widgets.Gauge.Count", Declaration: "public int Count { get; }"}},
			{Name: "Secret", TypeName: "System.String", Getter: &domain.Accessor{Access: domain.AccessAssembly}},
		},
		Methods: []*domain.MethodDef{
			{Name: ".ctor", IsConstructor: true, Access: domain.AccessPublic,
				Handle: domain.MemberHandle{FullName: "Acme.Widgets.Gauge..ctor", Declaration: "public Gauge()"}},
			{Name: ".ctor", IsConstructor: true, Access: domain.AccessPublic,
				Params: []domain.Parameter{{Name: "max", TypeName: "System.Int32"}},
				Handle: domain.MemberHandle{FullName: "Acme.Widgets.Gauge..ctor", Declaration: "public Gauge(int max)"}},
			{Name: "Set", Access: domain.AccessPublic, ReturnType: "System.Void",
				Params: []domain.Parameter{{Name: "value", TypeName: "System.Int32"}, {Name: "label", TypeName: "System.String"}},
				Handle: domain.MemberHandle{FullName: "Acme.Widgets.Gauge.Set", Declaration: "public void Set(int value, string label)"}},
			{Name: "Set", Access: domain.AccessPublic, ReturnType: "System.Void",
				Params: []domain.Parameter{{Name: "value", TypeName: "System.Int32"}},
				Handle: domain.MemberHandle{FullName: "Acme.Widgets.Gauge.Set", Declaration: "public void Set(int value)"}},
			{Name: "Reset", Access: domain.AccessFamily, ReturnType: "System.Void",
				Handle: domain.MemberHandle{FullName: "Acme.Widgets.Gauge.Reset", Declaration: "protected void Reset()"}},
			{Name: "Undocumented", Access: domain.AccessPublic, ReturnType: "System.Void"},
		},
	}
	hidden := &domain.TypeDef{Namespace: "Acme.Widgets", Name: "Hidden", Category: domain.CategoryClass}
	plain := &domain.TypeDef{Namespace: "Acme.Widgets", Name: "Plain", Public: true, Category: domain.CategoryClass}
	return []*domain.TypeDef{control, gauge, hidden, plain}
}

func parseIndex(t *testing.T, xml string) *docindex.Index {
	t.Helper()
	doc, err := xmldoc.Parse(strings.NewReader(xml))
	require.NoError(t, err)
	return docindex.New(doc.Entries)
}

func widgetResolver(t *testing.T, opts ResolveOptions) *Resolver {
	t.Helper()
	module := metadata.NewModule("Acme.Widgets", widgetTypes())
	return NewResolver(module, parseIndex(t, widgetsXML), opts)
}
