// Package xmldoc reads the XML documentation file a compiler emits next to a
// module and turns each <member> element into a domain.DocEntry.
package xmldoc

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"mddocs/internal/cref"
	"mddocs/internal/domain"
	"mddocs/internal/logger"
)

// Document is a parsed documentation export.
type Document struct {
	Assembly string
	Entries  []*domain.DocEntry
}

type node struct {
	name     string
	attrs    map[string]string
	children []*node
	text     string // set for character data, name is empty
}

func (n *node) attr(key string) string {
	return n.attrs[key]
}

func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *node) descendants(name string, out []*node) []*node {
	for _, c := range n.children {
		if c.name == "" {
			continue
		}
		if c.name == name {
			out = append(out, c)
		}
		out = c.descendants(name, out)
	}
	return out
}

// ParseFile parses the documentation export at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open documentation export")
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return doc, nil
}

// Parse reads a documentation export. Entries keep their document order.
func Parse(r io.Reader) (*Document, error) {
	root, err := readTree(r)
	if err != nil {
		return nil, err
	}
	if root.name != "doc" {
		return nil, errors.Newf("unexpected root element <%s>, want <doc>", root.name)
	}

	doc := &Document{}
	if asm := root.child("assembly"); asm != nil {
		if name := asm.child("name"); name != nil {
			doc.Assembly = strings.TrimSpace(innerText(name))
		}
	}

	for _, m := range root.descendants("member", nil) {
		raw := m.attr("name")
		if raw == "" {
			continue
		}
		doc.Entries = append(doc.Entries, newEntry(raw, m))
	}
	return doc, nil
}

func newEntry(raw string, m *node) *domain.DocEntry {
	id, err := cref.Parse(raw)
	if err != nil {
		// kept so the export stays complete; a zero Kind never matches a lookup
		logger.Logger.Debugw("unrecognised documentation identifier", "id", raw, "error", err)
		id = domain.CanonicalID{Name: raw}
	}

	e := &domain.DocEntry{Raw: raw, ID: id}
	for _, c := range m.children {
		switch c.name {
		case "summary":
			e.Summary = render(c)
		case "remarks":
			e.Remarks = render(c)
		case "returns":
			e.Returns = render(c)
		case "value":
			e.Value = render(c)
		case "example":
			e.Example = render(c)
		case "typeparam":
			e.TypeParams = append(e.TypeParams, domain.ParamDoc{Name: c.attr("name"), Text: render(c)})
		case "exception":
			e.Exceptions = append(e.Exceptions, domain.ExceptionDoc{Cref: c.attr("cref"), Text: render(c)})
		}
	}
	for _, p := range m.descendants("param", nil) {
		e.Params = append(e.Params, domain.ParamDoc{Name: p.attr("name"), Text: render(p)})
	}
	return e
}

func readTree(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	var stack []*node
	var root *node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, &node{text: string(t)})
			}
		}
	}

	if root == nil {
		return nil, errors.New("empty document")
	}
	return root, nil
}

func innerText(n *node) string {
	var sb strings.Builder
	for _, c := range n.children {
		if c.name == "" {
			sb.WriteString(c.text)
		} else {
			sb.WriteString(innerText(c))
		}
	}
	return sb.String()
}
