package memdom

import (
	"sort"
	"strings"

	"github.com/axon-ui/axon/pkg/host"
)

// voidElements are HTML elements that never carry children and render
// without a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// RenderHTML serializes a node and its subtree to HTML. Attributes are
// written in sorted order so output is deterministic, which keeps golden
// files stable.
func RenderHTML(n host.Node) string {
	target, ok := n.(*node)
	if !ok {
		return ""
	}
	var buf strings.Builder
	renderNode(&buf, target)
	return buf.String()
}

func renderNode(buf *strings.Builder, n *node) {
	if n.isText {
		buf.WriteString(escapeHTML(n.text))
		return
	}

	buf.WriteByte('<')
	buf.WriteString(n.tag)

	keys := make([]string, 0, len(n.attrs))
	for key := range n.attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		buf.WriteByte(' ')
		buf.WriteString(key)
		buf.WriteString(`="`)
		buf.WriteString(escapeAttr(n.attrs[key]))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')

	if voidElements[n.tag] {
		return
	}

	for _, child := range n.children {
		renderNode(buf, child)
	}

	buf.WriteString("</")
	buf.WriteString(n.tag)
	buf.WriteByte('>')
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes text for safe inclusion in attribute values. Beyond the
// content entities it also escapes whitespace that could break attribute
// parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
