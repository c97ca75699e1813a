package vdom

import (
	"strconv"

	"github.com/axon-ui/axon/pkg/host"
	"github.com/axon-ui/axon/pkg/track"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComponent              // Component function invocation
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Props holds attributes and event handlers for an element, or the inputs
// of a component invocation.
type Props map[string]any

// ComponentFunc produces a subtree from props. The reconciler re-invokes it
// on every update and diffs its output.
type ComponentFunc func(Props) *VNode

// VNode is one node of the virtual tree.
//
// Kind, Tag, Fn, Props, Children, Key and Text describe what the render
// produced. El, Rendered and Instance are reconciler state carried on the
// retained previous tree; they are unset on a freshly built node.
type VNode struct {
	Kind     VKind
	Tag      string        // Element tag name (KindElement)
	Fn       ComponentFunc // Component function (KindComponent)
	Props    Props
	Children []*VNode
	Key      string // Reconciliation key, lifted from props
	Text     string // Content (KindText)

	// El is the live node this VNode is bound to. For components it is nil;
	// the component's live node lives on its Rendered subtree.
	El host.Node

	// Rendered is the subtree the component function returned on the last
	// render (KindComponent).
	Rendered *VNode

	// Instance holds the lifecycle hooks registered during the component
	// invocation (KindComponent).
	Instance *track.Instance

	// bound maps event names to the listeners registered on El. Carried
	// forward across renders so listener identity on the live node is
	// stable; only the dispatch target inside each binding is swapped.
	bound map[string]*boundHandler
}

// key returns the reconciliation key for a child: the explicit key when one
// was given, otherwise a positional fallback for its index. The "~" prefix
// keeps an explicit key like "0" distinct from the fallback for index 0.
func (v *VNode) key(index int) string {
	if v != nil && v.Key != "" {
		return v.Key
	}
	return "~" + strconv.Itoa(index)
}

// hasExplicitKeys reports whether any child in the list carries a key. One
// keyed child switches the whole list to keyed reconciliation.
func hasExplicitKeys(children []*VNode) bool {
	for _, child := range children {
		if child != nil && child.Key != "" {
			return true
		}
	}
	return false
}
