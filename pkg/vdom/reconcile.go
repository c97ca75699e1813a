package vdom

import (
	"reflect"

	"github.com/axon-ui/axon/pkg/host"
	"github.com/axon-ui/axon/pkg/track"
)

// Reconciler patches a live host tree to match virtual trees. One
// reconciler serves one document; it is not safe for concurrent use.
type Reconciler struct {
	doc           host.Document
	pendingMounts []func()
}

// NewReconciler creates a reconciler that builds nodes with doc.
func NewReconciler(doc host.Document) *Reconciler {
	return &Reconciler{doc: doc}
}

// Patch reconciles next against prev at the given child position of parent.
// next nil unmounts prev's subtree; prev nil mounts next's from scratch.
// Live nodes, component outputs and listener bindings are carried forward
// from prev onto next as nodes match, so next becomes the retained tree for
// the following render.
func (r *Reconciler) Patch(parent host.Node, next, prev *VNode, index int) {
	if next == nil && prev == nil {
		return
	}

	// Unmount.
	if next == nil {
		r.runCleanups(prev)
		if node := liveNodeOf(prev); node != nil {
			parent.RemoveChild(node)
		}
		return
	}

	// Component: re-invoke and diff its output. A different component
	// function in the same position is a replacement, not an update.
	if next.Kind == KindComponent {
		if prev != nil && prev.Kind == KindComponent && sameFunc(next.Fn, prev.Fn) {
			r.invoke(next)
			r.Patch(parent, next.Rendered, prev.Rendered, index)
			next.El = liveNodeOf(next.Rendered)
			return
		}
		if prev != nil {
			r.replace(parent, next, prev, index)
			return
		}
	}

	// Create.
	if prev == nil {
		if node := r.create(next); node != nil {
			insertAt(parent, node, index)
		}
		return
	}

	// Replace on kind or tag change.
	if next.Kind != prev.Kind || (next.Kind == KindElement && next.Tag != prev.Tag) {
		r.replace(parent, next, prev, index)
		return
	}

	// Text update, in place. A missing live text node is drift, healed by
	// creating the node rather than failing.
	if next.Kind == KindText {
		next.El = prev.El
		if next.El == nil || !next.El.IsText() {
			node := r.doc.CreateText(next.Text)
			next.El = node
			insertAt(parent, node, index)
			return
		}
		if next.Text != prev.Text {
			next.El.SetText(next.Text)
		}
		return
	}

	// Element update: same tag, carry the live node forward.
	next.El = prev.El
	if next.El == nil {
		if node := r.create(next); node != nil {
			insertAt(parent, node, index)
		}
		return
	}
	r.patchProps(next, prev)
	r.patchChildren(next.El, next.Children, prev.Children)
}

// FlushMounts runs the mount callbacks queued during preceding Patch calls,
// in registration order. Callers invoke it after Patch returns so every new
// live node is attached before its mount observers run.
func (r *Reconciler) FlushMounts() {
	for len(r.pendingMounts) > 0 {
		mounts := r.pendingMounts
		r.pendingMounts = nil
		for _, fn := range mounts {
			fn()
		}
	}
}

// invoke runs a component function under a fresh lifecycle instance and
// stores its output on the node.
func (r *Reconciler) invoke(v *VNode) {
	inst := track.NewInstance()
	v.Instance = inst

	props := v.Props
	if len(v.Children) > 0 {
		// Hand children to the component without mutating the caller's map.
		merged := make(Props, len(props)+1)
		for k, val := range props {
			merged[k] = val
		}
		if _, ok := merged["children"]; !ok {
			merged["children"] = v.Children
		}
		props = merged
	}

	track.WithInstance(inst, func() {
		v.Rendered = v.Fn(props)
	})
}

// create builds the live subtree for a fresh VNode and returns its root
// live node. Components are invoked and their mounts queued; a component
// that renders nothing returns nil.
func (r *Reconciler) create(v *VNode) host.Node {
	switch v.Kind {
	case KindText:
		v.El = r.doc.CreateText(v.Text)
		return v.El

	case KindComponent:
		r.invoke(v)
		var node host.Node
		if v.Rendered != nil {
			node = r.create(v.Rendered)
		}
		v.El = node
		r.queueMounts(v.Instance)
		return node

	default:
		el := r.doc.CreateElement(v.Tag)
		v.El = el
		r.applyProps(v)
		for _, child := range v.Children {
			if node := r.create(child); node != nil {
				el.AppendChild(node)
			}
		}
		return el
	}
}

// replace tears down prev (cleanups first) and builds next in its place.
func (r *Reconciler) replace(parent host.Node, next, prev *VNode, index int) {
	r.runCleanups(prev)
	old := liveNodeOf(prev)
	node := r.create(next)

	switch {
	case old != nil && node != nil:
		parent.ReplaceChild(node, old)
	case old != nil:
		parent.RemoveChild(old)
	case node != nil:
		insertAt(parent, node, index)
	}
}

// runCleanups fires every cleanup in v's subtree, depth-first: a
// component's own hooks run before its rendered output, an element's
// children run in order.
func (r *Reconciler) runCleanups(v *VNode) {
	if v == nil {
		return
	}
	switch v.Kind {
	case KindComponent:
		if v.Instance != nil {
			v.Instance.RunCleanups()
		}
		r.runCleanups(v.Rendered)
	case KindElement:
		for _, child := range v.Children {
			r.runCleanups(child)
		}
	}
}

// patchChildren reconciles two child lists. One explicit key anywhere in
// either list switches the whole list to keyed matching; otherwise children
// pair up by position.
func (r *Reconciler) patchChildren(parent host.Node, next, prev []*VNode) {
	if hasExplicitKeys(next) || hasExplicitKeys(prev) {
		r.patchKeyedChildren(parent, next, prev)
		return
	}

	max := len(next)
	if len(prev) > max {
		max = len(prev)
	}
	for i := 0; i < max; i++ {
		var n, p *VNode
		if i < len(next) {
			n = next[i]
		}
		if i < len(prev) {
			p = prev[i]
		}
		r.Patch(parent, n, p, i)
	}
}

// queueMounts moves an instance's registered mount callbacks onto the
// pending queue, to be fired by FlushMounts after the patch completes.
func (r *Reconciler) queueMounts(inst *track.Instance) {
	if inst == nil {
		return
	}
	if mounts := inst.TakeMounts(); len(mounts) > 0 {
		r.pendingMounts = append(r.pendingMounts, mounts...)
	}
}

// insertAt attaches node before the child currently at index, appending
// when the index is past the end.
func insertAt(parent host.Node, node host.Node, index int) {
	parent.InsertBefore(node, parent.ChildAt(index))
}

// liveNodeOf resolves the live node a VNode is bound to, following
// component output chains.
func liveNodeOf(v *VNode) host.Node {
	for v != nil {
		if v.El != nil {
			return v.El
		}
		v = v.Rendered
	}
	return nil
}

// sameFunc reports whether two component functions are the same function.
// Go function values aren't comparable, so identity goes through the code
// pointer.
func sameFunc(a, b ComponentFunc) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
