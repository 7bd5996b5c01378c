package xmldoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mddocs/internal/domain"
)

const sample = `<?xml version="1.0"?>
<doc>
    <assembly>
        <name>Acme.Widgets</name>
    </assembly>
    <members>
        <member name="T:Acme.Widgets.Gauge">
            <summary>
            A dial that shows a <see cref="T:System.Int32"/> reading.
            </summary>
            <remarks>
            <para>First paragraph.</para>
            <para>Use <c>Reset</c> to start over.</para>
            </remarks>
            <typeparam name="T">Ignored here.</typeparam>
        </member>
        <member name="M:Acme.Widgets.Gauge.Set(System.Int32,System.String)">
            <summary>Sets the <paramref name="value"/>.</summary>
            <param name="value">The new value.</param>
            <param name="label">A label, or <see langword="null"/>.</param>
            <returns>The previous value.</returns>
            <exception cref="T:System.ArgumentException">When negative.</exception>
            <example>
            <code>
                gauge.Set(1, "a");
                gauge.Set(2, "b");
            </code>
            </example>
        </member>
        <member name="P:Acme.Widgets.Gauge.Label">
            <value>The label.</value>
        </member>
        <member name="Q:Nonsense" />
    </members>
</doc>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "Acme.Widgets", doc.Assembly)
	require.Len(t, doc.Entries, 4)

	typ := doc.Entries[0]
	assert.Equal(t, "T:Acme.Widgets.Gauge", typ.Raw)
	assert.Equal(t, domain.KindType, typ.ID.Kind)
	assert.Equal(t, "A dial that shows a `Int32` reading.", typ.Summary)
	assert.Equal(t, "First paragraph.\n\nUse `Reset` to start over.", typ.Remarks)
	require.Len(t, typ.TypeParams, 1)
	assert.Equal(t, "T", typ.TypeParams[0].Name)

	set := doc.Entries[1]
	assert.Equal(t, domain.KindMethod, set.ID.Kind)
	assert.Equal(t, "Acme.Widgets.Gauge.Set", set.ID.Name)
	assert.Equal(t, "Sets the `value`.", set.Summary)
	assert.Equal(t, []domain.ParamDoc{
		{Name: "value", Text: "The new value."},
		{Name: "label", Text: "A label, or `null`."},
	}, set.Params)
	assert.Equal(t, "The previous value.", set.Returns)
	assert.Equal(t, []domain.ExceptionDoc{{Cref: "T:System.ArgumentException", Text: "When negative."}}, set.Exceptions)
	assert.Equal(t, "```\ngauge.Set(1, \"a\");\ngauge.Set(2, \"b\");\n```", set.Example)

	assert.Equal(t, "The label.", doc.Entries[2].Value)

	// unknown kinds stay in the forest but carry no kind
	assert.Equal(t, domain.Kind(""), doc.Entries[3].ID.Kind)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(`<notdoc/>`))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(``))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(`<doc><members>`))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Acme.Widgets.xml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Entries, 4)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "Int32", ShortName("T:System.Int32"))
	assert.Equal(t, "Set", ShortName("M:Acme.Gauge.Set(System.Int32)"))
	assert.Equal(t, "Plain", ShortName("Plain"))
}
