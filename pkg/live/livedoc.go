package live

import (
	"github.com/axon-ui/axon/pkg/host"
	"github.com/axon-ui/axon/pkg/host/memdom"
)

// Document is a host.Document that mirrors every mutation into wire ops
// while keeping a full server-side copy of the tree in memory. The runtime
// mounts onto it like any other host; a session drains the queued ops and
// ships them to the browser after each render.
//
// A Document is not safe for concurrent use. All access, including the
// renders triggered by state changes, must happen on the owning session's
// event loop.
type Document struct {
	inner  *memdom.Document
	nextID uint64
	byNode map[host.Node]*node
	byID   map[uint64]*node
	ops    []Op
}

// NewDocument creates an empty live document. The mount root has node id 1
// on the wire; the client binds it to its container element.
func NewDocument() *Document {
	d := &Document{
		inner:  memdom.New(),
		byNode: make(map[host.Node]*node),
		byID:   make(map[uint64]*node),
	}
	d.register(d.inner.Root())
	return d
}

// Root returns the mount target.
func (d *Document) Root() host.Node {
	return d.byNode[d.inner.Root()]
}

// CreateElement creates a detached element and queues its creation op.
func (d *Document) CreateElement(tag string) host.Node {
	n := d.register(d.inner.CreateElement(tag))
	d.push(Op{T: OpCreateElement, ID: n.id, Tag: tag})
	return n
}

// CreateText creates a detached text node and queues its creation op.
func (d *Document) CreateText(text string) host.Node {
	n := d.register(d.inner.CreateText(text))
	d.push(Op{T: OpCreateText, ID: n.id, Text: text})
	return n
}

// TakeOps drains the queued operations accumulated since the last call.
func (d *Document) TakeOps() []Op {
	ops := d.ops
	d.ops = nil
	return ops
}

// DispatchEvent delivers a client event to the node with the given wire id
// and reports whether any handler ran. Unknown ids report false; the client
// may race an update that removed the node. Handlers see the wrapped node
// as the event target, so writes through it stay mirrored.
func (d *Document) DispatchEvent(id uint64, e host.Event) bool {
	n := d.byID[id]
	if n == nil {
		return false
	}
	e.Target = n
	return memdom.Dispatch(n.inner, e)
}

// HTML returns the server-side copy of the tree, for tests and debugging.
func (d *Document) HTML() string {
	return memdom.RenderHTML(d.inner.Root())
}

func (d *Document) register(inner host.Node) *node {
	d.nextID++
	n := &node{doc: d, inner: inner, id: d.nextID}
	d.byNode[inner] = n
	d.byID[n.id] = n
	return n
}

func (d *Document) push(op Op) {
	d.ops = append(d.ops, op)
}

// release drops the id mapping for a detached subtree. Events still in
// flight for those ids then dispatch to nothing, which is the correct
// outcome for a node the client no longer shows.
func (d *Document) release(inner host.Node) {
	n, ok := d.byNode[inner]
	if !ok {
		return
	}
	delete(d.byNode, inner)
	delete(d.byID, n.id)
	for i := 0; i < inner.ChildCount(); i++ {
		d.release(inner.ChildAt(i))
	}
}

// wrap resolves the wrapper for an inner node, as a plain interface so a
// missing entry comes back as an untyped nil.
func (d *Document) wrap(inner host.Node) host.Node {
	if inner == nil {
		return nil
	}
	if n, ok := d.byNode[inner]; ok {
		return n
	}
	return nil
}

// node wraps one memdom node with a wire id. Reads delegate to the inner
// node; writes delegate and queue the matching op.
type node struct {
	doc   *Document
	inner host.Node
	id    uint64
}

// unwrap returns the inner node and wire id of a child handed back to us.
// Nodes from a different document are ignored by the callers.
func unwrap(n host.Node) (host.Node, uint64, bool) {
	if w, ok := n.(*node); ok && w != nil {
		return w.inner, w.id, true
	}
	return nil, 0, false
}

func (n *node) Tag() string  { return n.inner.Tag() }
func (n *node) IsText() bool { return n.inner.IsText() }
func (n *node) Text() string { return n.inner.Text() }

func (n *node) SetText(text string) {
	n.inner.SetText(text)
	n.doc.push(Op{T: OpSetText, ID: n.id, Text: text})
}

func (n *node) Parent() host.Node {
	return n.doc.wrap(n.inner.Parent())
}

func (n *node) ChildCount() int {
	return n.inner.ChildCount()
}

func (n *node) ChildAt(i int) host.Node {
	return n.doc.wrap(n.inner.ChildAt(i))
}

func (n *node) AppendChild(child host.Node) {
	inner, id, ok := unwrap(child)
	if !ok {
		return
	}
	n.inner.AppendChild(inner)
	n.doc.push(Op{T: OpInsert, Parent: n.id, ID: id})
}

func (n *node) InsertBefore(child, ref host.Node) {
	inner, id, ok := unwrap(child)
	if !ok {
		return
	}
	refInner, refID, haveRef := unwrap(ref)
	if !haveRef {
		refInner = nil
	}
	n.inner.InsertBefore(inner, refInner)
	n.doc.push(Op{T: OpInsert, Parent: n.id, ID: id, Ref: refID})
}

func (n *node) ReplaceChild(newChild, oldChild host.Node) {
	newInner, newID, ok := unwrap(newChild)
	if !ok {
		return
	}
	oldInner, oldID, ok := unwrap(oldChild)
	if !ok {
		return
	}
	n.inner.ReplaceChild(newInner, oldInner)
	n.doc.push(Op{T: OpReplace, Parent: n.id, ID: newID, Ref: oldID})
	n.doc.release(oldInner)
}

func (n *node) RemoveChild(child host.Node) {
	inner, id, ok := unwrap(child)
	if !ok {
		return
	}
	n.inner.RemoveChild(inner)
	n.doc.push(Op{T: OpRemove, Parent: n.id, ID: id})
	n.doc.release(inner)
}

func (n *node) Attribute(name string) (string, bool) {
	return n.inner.Attribute(name)
}

func (n *node) SetAttribute(name, value string) {
	n.inner.SetAttribute(name, value)
	n.doc.push(Op{T: OpSetAttr, ID: n.id, Name: name, Value: value})
}

func (n *node) RemoveAttribute(name string) {
	n.inner.RemoveAttribute(name)
	n.doc.push(Op{T: OpRemoveAttr, ID: n.id, Name: name})
}

// AddEventListener registers the handler on the server-side copy and asks
// the client to forward this event type once per node, no matter how many
// handlers are bound.
func (n *node) AddEventListener(event string, handler host.EventHandler) {
	if handler == nil || n.inner.IsText() {
		return
	}
	if memdom.ListenerCount(n.inner, event) == 0 {
		n.doc.push(Op{T: OpListen, ID: n.id, Name: event})
	}
	n.inner.AddEventListener(event, handler)
}

func (n *node) RemoveEventListener(event string, handler host.EventHandler) {
	before := memdom.ListenerCount(n.inner, event)
	n.inner.RemoveEventListener(event, handler)
	if before > 0 && memdom.ListenerCount(n.inner, event) == 0 {
		n.doc.push(Op{T: OpUnlisten, ID: n.id, Name: event})
	}
}

func (n *node) Property(name string) any {
	return n.inner.Property(name)
}

func (n *node) SetProperty(name string, value any) {
	n.inner.SetProperty(name, value)
	n.doc.push(Op{T: OpSetProp, ID: n.id, Name: name, Value: value})
}
