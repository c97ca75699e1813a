package vdom

import "github.com/axon-ui/axon/pkg/host"

// patchKeyedChildren reconciles two child lists by key. Children without an
// explicit key fall back to a positional key, so mixed lists still resolve
// deterministically.
//
// New children are walked in order: a key match updates the old pair in
// place and, when the live node isn't already at its target position, moves
// it there with insert-before semantics instead of recreating it. That move
// is what preserves node identity (focus, scroll, listener state) across
// reorders. Old children never matched are unmounted afterwards, cleanups
// included.
func (r *Reconciler) patchKeyedChildren(parent host.Node, next, prev []*VNode) {
	type prevEntry struct {
		vnode *VNode
		index int
	}

	prevByKey := make(map[string]prevEntry, len(prev))
	for i, child := range prev {
		prevByKey[child.key(i)] = prevEntry{vnode: child, index: i}
	}

	matched := make(map[string]bool, len(next))
	for i, child := range next {
		key := child.key(i)
		entry, ok := prevByKey[key]
		if !ok || matched[key] {
			r.Patch(parent, child, nil, i)
			continue
		}
		matched[key] = true
		r.Patch(parent, child, entry.vnode, i)

		if node := liveNodeOf(child); node != nil && parent.ChildAt(i) != node {
			parent.InsertBefore(node, parent.ChildAt(i))
		}
	}

	for i, child := range prev {
		if !matched[child.key(i)] {
			r.Patch(parent, nil, child, i)
		}
	}
}
