package xmldoc

import (
	"strings"
)

const fence = "```"

// render flattens a documentation element to Markdown-flavoured text.
func render(n *node) string {
	var sb strings.Builder
	renderChildren(&sb, n)
	return tidy(sb.String())
}

func renderChildren(sb *strings.Builder, n *node) {
	for _, c := range n.children {
		renderNode(sb, c)
	}
}

func renderNode(sb *strings.Builder, n *node) {
	switch n.name {
	case "":
		sb.WriteString(collapse(n.text))
	case "see", "seealso":
		switch {
		case n.attr("langword") != "":
			sb.WriteString("`" + n.attr("langword") + "`")
		case n.attr("href") != "":
			label := strings.TrimSpace(collapse(innerText(n)))
			if label == "" {
				label = n.attr("href")
			}
			sb.WriteString("[" + label + "](" + n.attr("href") + ")")
		default:
			label := strings.TrimSpace(collapse(innerText(n)))
			if label == "" {
				label = ShortName(n.attr("cref"))
			}
			sb.WriteString("`" + label + "`")
		}
	case "paramref", "typeparamref":
		sb.WriteString("`" + n.attr("name") + "`")
	case "c":
		sb.WriteString("`" + strings.TrimSpace(collapse(innerText(n))) + "`")
	case "code":
		sb.WriteString("\n\n" + fence + "\n" + dedent(innerText(n)) + "\n" + fence + "\n\n")
	case "para":
		sb.WriteString("\n\n")
		renderChildren(sb, n)
		sb.WriteString("\n\n")
	case "list":
		sb.WriteString("\n\n")
		for _, item := range n.children {
			if item.name != "item" && item.name != "listheader" {
				continue
			}
			var line strings.Builder
			if term := item.child("term"); term != nil {
				renderChildren(&line, term)
				if item.child("description") != nil {
					line.WriteString(": ")
				}
			}
			if desc := item.child("description"); desc != nil {
				renderChildren(&line, desc)
			}
			if item.child("term") == nil && item.child("description") == nil {
				renderChildren(&line, item)
			}
			sb.WriteString("- " + strings.TrimSpace(line.String()) + "\n")
		}
		sb.WriteString("\n")
	default:
		renderChildren(sb, n)
	}
}

// ShortName reduces an identifier such as "M:Ns.Type.Foo(System.Int32)" to
// "Foo".
func ShortName(id string) string {
	if len(id) > 2 && id[1] == ':' {
		id = id[2:]
	}
	if i := strings.IndexByte(id, '('); i >= 0 {
		id = id[:i]
	}
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		id = id[i+1:]
	}
	return id
}

// collapse folds whitespace runs to single spaces, keeping one space at either
// edge so adjacent inline elements do not run together.
func collapse(s string) string {
	if s == "" {
		return ""
	}
	body := strings.Join(strings.Fields(s), " ")
	if body == "" {
		return " "
	}
	if isSpace(s[0]) {
		body = " " + body
	}
	if isSpace(s[len(s)-1]) {
		body += " "
	}
	return body
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

func dedent(code string) string {
	lines := strings.Split(strings.Trim(code, "\n"), "\n")
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, l := range lines {
		if len(l) >= indent && indent > 0 {
			lines[i] = l[indent:]
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \t\n")
}

// tidy trims prose lines and collapses blank runs, leaving fenced code alone.
func tidy(s string) string {
	var out []string
	inCode := false
	blank := false
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) == fence {
			inCode = !inCode
			out = append(out, fence)
			blank = false
			continue
		}
		if !inCode {
			l = strings.TrimSpace(l)
			if l == "" {
				if blank || len(out) == 0 {
					continue
				}
				blank = true
				out = append(out, "")
				continue
			}
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
