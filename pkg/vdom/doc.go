// Package vdom provides the virtual tree and the reconciler for the Axon
// runtime.
//
// Component functions return lightweight VNode descriptions built with H or
// the element helpers. The reconciler compares the tree a render produced
// against the tree from the previous render and applies the minimal set of
// mutations to the live host tree: in-place text updates, attribute and
// property writes, handler rebinds, keyed moves, and subtree replacement
// only when the shape actually changed.
//
//	vdom.H("div", vdom.Props{"class": "row"},
//	    vdom.H("span", nil, "count: ", count),
//	    items,      // nested slices flatten in order
//	    nil, false, // dropped
//	)
//
// A component is just a tag position holding a function:
//
//	func Counter(p vdom.Props) *vdom.VNode { ... }
//	vdom.H(Counter, vdom.Props{"label": "hits"})
//
// The reconciler re-invokes the function on every update and diffs its
// output. Lifecycle hooks registered during the invocation (track.OnMount,
// track.OnCleanup) fire when the subtree attaches and detaches.
package vdom
