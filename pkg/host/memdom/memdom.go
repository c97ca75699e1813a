package memdom

import (
	"reflect"

	"github.com/axon-ui/axon/pkg/host"
)

// Document is an in-memory host document with a single root element.
type Document struct {
	root *node
}

// New creates an empty document whose root is a detached "body" element.
func New() *Document {
	return &Document{root: newElement("body")}
}

// Root returns the document's root element, the usual mount target.
func (d *Document) Root() host.Node {
	return d.root
}

// CreateElement creates a detached element node.
func (d *Document) CreateElement(tag string) host.Node {
	return newElement(tag)
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) host.Node {
	return &node{isText: true, text: text}
}

// node is either an element or a text leaf.
type node struct {
	tag    string
	isText bool
	text   string

	parent   *node
	children []*node

	attrs     map[string]string
	props     map[string]any
	listeners map[string][]host.EventHandler
}

func newElement(tag string) *node {
	return &node{tag: tag}
}

func (n *node) Tag() string {
	return n.tag
}

func (n *node) IsText() bool {
	return n.isText
}

func (n *node) Text() string {
	return n.text
}

func (n *node) SetText(text string) {
	if !n.isText {
		return
	}
	n.text = text
}

func (n *node) Parent() host.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) ChildCount() int {
	return len(n.children)
}

func (n *node) ChildAt(i int) host.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// detach removes c from its current parent, if any.
func detach(c *node) {
	p := c.parent
	if p == nil {
		return
	}
	for i, child := range p.children {
		if child == c {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}

func (n *node) AppendChild(child host.Node) {
	c, ok := child.(*node)
	if !ok || n.isText {
		return
	}
	detach(c)
	c.parent = n
	n.children = append(n.children, c)
}

func (n *node) InsertBefore(child, ref host.Node) {
	c, ok := child.(*node)
	if !ok || n.isText {
		return
	}
	r, _ := ref.(*node)
	if r == nil {
		n.AppendChild(c)
		return
	}
	detach(c)
	for i, existing := range n.children {
		if existing == r {
			c.parent = n
			n.children = append(n.children[:i], append([]*node{c}, n.children[i:]...)...)
			return
		}
	}
	// Reference not found: append, matching browser leniency.
	c.parent = n
	n.children = append(n.children, c)
}

func (n *node) ReplaceChild(newChild, oldChild host.Node) {
	nc, ok1 := newChild.(*node)
	oc, ok2 := oldChild.(*node)
	if !ok1 || !ok2 || n.isText {
		return
	}
	for i, existing := range n.children {
		if existing == oc {
			detach(nc)
			nc.parent = n
			n.children[i] = nc
			oc.parent = nil
			return
		}
	}
}

func (n *node) RemoveChild(child host.Node) {
	c, ok := child.(*node)
	if !ok || c.parent != n {
		return
	}
	detach(c)
}

func (n *node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *node) SetAttribute(name, value string) {
	if n.isText {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

func (n *node) RemoveAttribute(name string) {
	delete(n.attrs, name)
}

func (n *node) AddEventListener(event string, handler host.EventHandler) {
	if n.isText || handler == nil {
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]host.EventHandler)
	}
	n.listeners[event] = append(n.listeners[event], handler)
}

func (n *node) RemoveEventListener(event string, handler host.EventHandler) {
	handlers := n.listeners[event]
	if len(handlers) == 0 || handler == nil {
		return
	}
	want := reflect.ValueOf(handler).Pointer()
	for i, h := range handlers {
		if reflect.ValueOf(h).Pointer() == want {
			n.listeners[event] = append(handlers[:i], handlers[i+1:]...)
			return
		}
	}
}

func (n *node) Property(name string) any {
	return n.props[name]
}

func (n *node) SetProperty(name string, value any) {
	if n.isText {
		return
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
}

// Dispatch delivers an event to target and reports whether any handler ran.
// For input-style events the target's live value/checked properties are
// updated first, the way a browser mutates the element before firing. The
// event's Target is filled in when unset; a caller delivering through a
// decorated node passes its own wrapper as Target.
func Dispatch(target host.Node, e host.Event) bool {
	t, ok := target.(*node)
	if !ok || t.isText {
		return false
	}
	if e.Target == nil {
		e.Target = t
	}

	switch e.Type {
	case "input", "change":
		t.SetProperty("value", e.Value)
		t.SetProperty("checked", e.Checked)
	}

	handlers := t.listeners[e.Type]
	if len(handlers) == 0 {
		return false
	}
	// Copy so handlers that rebind listeners don't affect this delivery.
	snapshot := make([]host.EventHandler, len(handlers))
	copy(snapshot, handlers)
	for _, h := range snapshot {
		h(e)
	}
	return true
}

// ListenerCount returns how many handlers are registered on target for the
// given event type. Intended for tests.
func ListenerCount(target host.Node, event string) int {
	t, ok := target.(*node)
	if !ok {
		return 0
	}
	return len(t.listeners[event])
}
