package uitest

import (
	"errors"
	"strings"
	"testing"

	"github.com/axon-ui/axon"
	"github.com/axon-ui/axon/pkg/cortex"
	"github.com/axon-ui/axon/pkg/host"
	"github.com/axon-ui/axon/pkg/host/memdom"
	"github.com/axon-ui/axon/pkg/vdom"
)

// ErrNoCortex is returned by Call when the harness was built without one.
var ErrNoCortex = errors.New("uitest: harness has no cortex")

// Builder allows fluent construction of test harnesses.
type Builder struct {
	cortex *cortex.Cortex
	props  vdom.Props
}

// New creates a new harness builder for testing.
//
// Example:
//
//	h := uitest.New().
//	    WithCortex(c).
//	    Mount(Counter)
func New() *Builder {
	return &Builder{}
}

// WithCortex attaches the state container the component under test reads
// from, enabling Call and Cortex on the harness.
func (b *Builder) WithCortex(c *cortex.Cortex) *Builder {
	b.cortex = c
	return b
}

// WithProps sets the props passed to the root component.
func (b *Builder) WithProps(props vdom.Props) *Builder {
	b.props = props
	return b
}

// Mount renders the component into a fresh in-memory document and returns
// the live harness.
func (b *Builder) Mount(component vdom.ComponentFunc) *Harness {
	doc := memdom.New()
	var opts []axon.MountOption
	if b.props != nil {
		opts = append(opts, axon.WithProps(b.props))
	}
	root := axon.Mount(doc, doc.Root(), component, opts...)
	return &Harness{doc: doc, root: root, cortex: b.cortex}
}

// Mount is a shorthand for New().Mount(component), for components that
// carry their own state.
func Mount(component vdom.ComponentFunc) *Harness {
	return New().Mount(component)
}

// Harness is one mounted component under test. All event drivers run the
// full handler, state and re-render pipeline synchronously, so the tree is
// settled by the time they return.
type Harness struct {
	doc    *memdom.Document
	root   *axon.Root
	cortex *cortex.Cortex
}

// Doc returns the underlying document for advanced testing.
func (h *Harness) Doc() *memdom.Document {
	return h.doc
}

// Root returns the mounted root driver.
func (h *Harness) Root() *axon.Root {
	return h.root
}

// Cortex returns the attached state container, or nil.
func (h *Harness) Cortex() *cortex.Cortex {
	return h.cortex
}

// HTML returns the current inner HTML of the mount target.
func (h *Harness) HTML() string {
	return innerHTML(h.doc.Root())
}

// Text returns the concatenated text content of the mounted tree.
func (h *Harness) Text() string {
	return memdom.TextContent(h.doc.Root())
}

// Find returns the first mounted element with the given tag, or nil.
func (h *Harness) Find(tag string) host.Node {
	return memdom.Find(h.doc.Root(), tag)
}

// FindAll returns every mounted element with the given tag, in document
// order.
func (h *Harness) FindAll(tag string) []host.Node {
	return memdom.FindAll(h.doc.Root(), tag)
}

// FindByAttr returns the first mounted element carrying the attribute
// value, or nil.
func (h *Harness) FindByAttr(name, value string) host.Node {
	return memdom.FindByAttr(h.doc.Root(), name, value)
}

// Renders reports how many times the root has rendered, including the
// initial mount.
func (h *Harness) Renders() uint64 {
	return h.root.Renders()
}

// Unmount tears the component down, running its cleanups.
func (h *Harness) Unmount() {
	h.root.Unmount()
}

// Click dispatches a click event to target. It reports whether any
// handler ran; a nil target reports false.
func (h *Harness) Click(target host.Node) bool {
	if target == nil {
		return false
	}
	return memdom.Dispatch(target, host.Event{Type: "click"})
}

// ClickFirst clicks the first element with the given tag.
func (h *Harness) ClickFirst(tag string) bool {
	return h.Click(h.Find(tag))
}

// Type dispatches an input event carrying text to target, updating the
// target's live value first the way a browser would.
func (h *Harness) Type(target host.Node, text string) bool {
	if target == nil {
		return false
	}
	return memdom.Dispatch(target, host.Event{Type: "input", Value: text})
}

// Toggle dispatches a change event carrying a checked state to target.
func (h *Harness) Toggle(target host.Node, checked bool) bool {
	if target == nil {
		return false
	}
	return memdom.Dispatch(target, host.Event{Type: "change", Checked: checked})
}

// Keydown dispatches a keydown event for the named key to target. The key
// travels in the event's Data under "key".
func (h *Harness) Keydown(target host.Node, key string) bool {
	if target == nil {
		return false
	}
	return memdom.Dispatch(target, host.Event{Type: "keydown", Data: map[string]any{"key": key}})
}

// Submit dispatches a submit event to target, usually a form.
func (h *Harness) Submit(target host.Node) bool {
	if target == nil {
		return false
	}
	return memdom.Dispatch(target, host.Event{Type: "submit"})
}

// Call invokes a synapse on the attached cortex.
func (h *Harness) Call(name string, payload any) error {
	if h.cortex == nil {
		return ErrNoCortex
	}
	return h.cortex.Call(name, payload)
}

// RenderToString renders a VNode once and returns the HTML string. This is
// useful for asserting on static output without mounting a harness.
//
// Example:
//
//	html := uitest.RenderToString(Badge(vdom.Props{"label": "new"}))
//	if !strings.Contains(html, "new") {
//	    t.Error("missing label")
//	}
func RenderToString(node *vdom.VNode) string {
	doc := memdom.New()
	rec := vdom.NewReconciler(doc)
	rec.Patch(doc.Root(), node, nil, 0)
	return innerHTML(doc.Root())
}

// ExpectContains asserts that the mounted output contains expected.
//
// Example:
//
//	uitest.ExpectContains(t, h, "Welcome Admin")
func ExpectContains(t *testing.T, h *Harness, expected string) {
	t.Helper()
	html := h.HTML()
	if !strings.Contains(html, expected) {
		t.Errorf("expected mounted output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the mounted output does not contain
// unexpected.
//
// Example:
//
//	uitest.ExpectNotContains(t, h, "Error")
func ExpectNotContains(t *testing.T, h *Harness, unexpected string) {
	t.Helper()
	html := h.HTML()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected mounted output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that the mounted output contains a specific tag.
//
// Example:
//
//	uitest.ExpectElement(t, h, "button")
func ExpectElement(t *testing.T, h *Harness, tag string) {
	t.Helper()
	html := h.HTML()
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected mounted output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that the mounted output contains an attribute
// value.
//
// Example:
//
//	uitest.ExpectAttribute(t, h, "class", "btn-primary")
func ExpectAttribute(t *testing.T, h *Harness, attr, value string) {
	t.Helper()
	html := h.HTML()
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// innerHTML serializes the children of n, skipping the wrapper itself.
func innerHTML(n host.Node) string {
	var buf strings.Builder
	for i := 0; i < n.ChildCount(); i++ {
		buf.WriteString(memdom.RenderHTML(n.ChildAt(i)))
	}
	return buf.String()
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
