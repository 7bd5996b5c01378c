package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mddocs/internal/domain"
)

func fixture() *domain.ResolvedType {
	def := &domain.TypeDef{Namespace: "Acme.Widgets", Name: "Gauge", Public: true, Category: domain.CategoryClass}
	ctor := &domain.MethodDef{Name: ".ctor", IsConstructor: true, Access: domain.AccessPublic,
		Params: []domain.Parameter{{Name: "max", TypeName: "System.Int32"}}}
	set := &domain.MethodDef{Name: "Set", Access: domain.AccessPublic, ReturnType: "System.Int32",
		Params: []domain.Parameter{
			{Name: "value", TypeName: "System.Int32"},
			{Name: "tags", TypeName: "System.Collections.Generic.List`1<System.String>"},
		}}
	count := &domain.PropertyDef{Name: "Count", TypeName: "System.Int32", Getter: &domain.Accessor{Access: domain.AccessPublic}}

	rt := &domain.ResolvedType{
		Def:    def,
		Doc:    &domain.DocEntry{Summary: "A dial.\n\nSecond paragraph.", Remarks: "Thread safe."},
		Module: "Acme.Widgets",
		Inheritance: &domain.InheritanceNode{Name: "Gauge", Namespace: "Acme.Widgets", Resolved: true,
			Parent: &domain.InheritanceNode{Name: "Object", Namespace: "System", Resolved: false}},
		Signature: "public class Gauge",
	}
	rt.Constructors = []*domain.ResolvedMember{{Kind: domain.Constructor, Method: ctor, Type: rt,
		Doc: &domain.DocEntry{Summary: "Creates a gauge."}}}
	rt.Methods = []*domain.ResolvedMember{{Kind: domain.Method, Method: set, Type: rt,
		Doc: &domain.DocEntry{
			Summary:    "Sets a | value.",
			Params:     []domain.ParamDoc{{Name: "value", Text: "The new value."}},
			Returns:    "The previous value.",
			Exceptions: []domain.ExceptionDoc{{Cref: "T:System.ArgumentException", Text: "When negative."}},
		}}}
	rt.Properties = []*domain.ResolvedMember{{Kind: domain.Property, Property: count, Type: rt,
		Doc: &domain.DocEntry{Summary: "Current count.", Value: "Never negative."}}}
	return rt
}

func TestPaths(t *testing.T) {
	rt := fixture()
	assert.Equal(t, "Acme/Widgets/Gauge.md", TypePagePath(rt.Def))
	assert.Equal(t, "Acme/Widgets/Gauge/Constructors/Gauge_Int32.md", MemberPagePath(rt.Constructors[0]))
	assert.Equal(t, "Acme/Widgets/Gauge/Methods/Set_Int32_ListOfString.md", MemberPagePath(rt.Methods[0]))
	assert.Equal(t, "Acme/Widgets/Gauge/Properties/Count.md", MemberPagePath(rt.Properties[0]))

	global := &domain.TypeDef{Name: "Program"}
	assert.Equal(t, "Program.md", TypePagePath(global))
}

func TestOverloadPagePaths(t *testing.T) {
	rt := fixture()
	method := func(types ...string) *domain.ResolvedMember {
		md := &domain.MethodDef{Name: "Write", Access: domain.AccessPublic}
		for i, tn := range types {
			md.Params = append(md.Params, domain.Parameter{Name: string(rune('a' + i)), TypeName: tn})
		}
		return &domain.ResolvedMember{Kind: domain.Method, Method: md, Type: rt}
	}

	tests := []struct {
		types []string
		want  string
	}{
		{[]string{"System.Int32"}, "Write_Int32"},
		{[]string{"System.Int32[]"}, "Write_Int32Array"},
		{[]string{"System.Int32[0:,0:]"}, "Write_Int32Array2"},
		{[]string{"System.Int32&"}, "Write_Int32Ref"},
		{[]string{"System.Int32*"}, "Write_Int32Ptr"},
		{[]string{"System.Collections.Generic.Dictionary`2<System.String,System.Int32>"}, "Write_DictionaryOfStringAndInt32"},
		{[]string{"System.String", "System.Int32"}, "Write_String_Int32"},
	}
	seen := map[string]bool{}
	for _, tt := range tests {
		got := MemberPagePath(method(tt.types...))
		assert.Equal(t, "Acme/Widgets/Gauge/Methods/"+tt.want+".md", got, tt.types)
		assert.False(t, seen[got], "duplicate page %s", got)
		seen[got] = true
	}
}

func TestDisplayName(t *testing.T) {
	rt := fixture()
	assert.Equal(t, "Gauge(Int32)", DisplayName(rt.Constructors[0]))
	assert.Equal(t, "Set(Int32, List{String})", DisplayName(rt.Methods[0]))
	assert.Equal(t, "Count", DisplayName(rt.Properties[0]))
}

func TestShortTypeName(t *testing.T) {
	tests := map[string]string{
		"System.Int32":  "Int32",
		"System.Int32&": "Int32@",
		"System.Collections.Generic.Dictionary`2<System.String,System.Int32>": "Dictionary{String,Int32}",
		"Outer/Inner": "Inner",
	}
	for in, want := range tests {
		assert.Equal(t, want, ShortTypeName(in), in)
	}
}

func TestTypePage(t *testing.T) {
	page, err := NewRenderer().TypePage(fixture())
	require.NoError(t, err)
	assert.Equal(t, "Acme/Widgets/Gauge.md", page.Path)

	text := string(page.Content)
	assert.Contains(t, text, "# Gauge Class")
	assert.Contains(t, text, "Namespace: Acme.Widgets")
	assert.Contains(t, text, "- System.Object\n  - **Acme.Widgets.Gauge**")
	assert.Contains(t, text, "```csharp\npublic class Gauge\n```")
	assert.Contains(t, text, "## Remarks\n\nThread safe.")
	assert.Contains(t, text, "| [Gauge(Int32)](Gauge/Constructors/Gauge_Int32.md) | Creates a gauge. |")
	assert.Contains(t, text, `| [Set(Int32, List{String})](Gauge/Methods/Set_Int32_ListOfString.md) | Sets a \| value. |`)
	assert.NotContains(t, text, "## Fields")
	assert.NotContains(t, text, "Second paragraph. |")

	// sections follow constructor, property, method order
	assert.Less(t, strings.Index(text, "## Constructors"), strings.Index(text, "## Properties"))
	assert.Less(t, strings.Index(text, "## Properties"), strings.Index(text, "## Methods"))
}

func TestMemberPage(t *testing.T) {
	r := NewRenderer()
	rt := fixture()

	page, err := r.MemberPage(rt.Methods[0], "public int Set(int value, List<string> tags)")
	require.NoError(t, err)
	assert.Equal(t, "Acme/Widgets/Gauge/Methods/Set_Int32_ListOfString.md", page.Path)
	text := string(page.Content)
	assert.Contains(t, text, "# Gauge.Set(Int32, List{String}) Method")
	assert.Contains(t, text, "public int Set(int value, List<string> tags)")
	assert.Contains(t, text, "- `value` (Int32) - The new value.")
	assert.Contains(t, text, "### Returns\n\n`Int32`: The previous value.")
	assert.Contains(t, text, "| ArgumentException | When negative. |")

	page, err = r.MemberPage(rt.Properties[0], "public int Count { get; }")
	require.NoError(t, err)
	text = string(page.Content)
	assert.Contains(t, text, "### Value\n\n`Int32`: Never negative.")

	page, err = r.MemberPage(rt.Constructors[0], "public Gauge(int max)")
	require.NoError(t, err)
	assert.NotContains(t, string(page.Content), "### Returns")
}
