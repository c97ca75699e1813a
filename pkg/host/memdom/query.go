package memdom

import (
	"strings"

	"github.com/axon-ui/axon/pkg/host"
)

// Find returns the first element under root (depth-first, root included)
// whose tag matches, or nil.
func Find(root host.Node, tag string) host.Node {
	n, ok := root.(*node)
	if !ok {
		return nil
	}
	return findFirst(n, func(c *node) bool { return !c.isText && c.tag == tag })
}

// FindAll returns every element under root (depth-first, root included)
// whose tag matches.
func FindAll(root host.Node, tag string) []host.Node {
	n, ok := root.(*node)
	if !ok {
		return nil
	}
	var out []host.Node
	walk(n, func(c *node) {
		if !c.isText && c.tag == tag {
			out = append(out, c)
		}
	})
	return out
}

// FindByAttr returns the first element under root carrying the given
// attribute value, or nil.
func FindByAttr(root host.Node, name, value string) host.Node {
	n, ok := root.(*node)
	if !ok {
		return nil
	}
	return findFirst(n, func(c *node) bool {
		v, ok := c.attrs[name]
		return ok && v == value
	})
}

// TextContent returns the concatenated text of every text node under root,
// in document order.
func TextContent(root host.Node) string {
	n, ok := root.(*node)
	if !ok {
		return ""
	}
	var buf strings.Builder
	walk(n, func(c *node) {
		if c.isText {
			buf.WriteString(c.text)
		}
	})
	return buf.String()
}

func findFirst(n *node, match func(*node) bool) host.Node {
	if match(n) {
		return n
	}
	for _, child := range n.children {
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

func walk(n *node, visit func(*node)) {
	visit(n)
	for _, child := range n.children {
		walk(child, visit)
	}
}
