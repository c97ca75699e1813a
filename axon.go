// Package axon provides the public API for the Axon UI runtime.
//
// This is the recommended import for most applications:
//
//	import "github.com/axon-ui/axon"
//
// Usage:
//
//	doc := memdom.New()
//	state := axon.NewCortex(initial, factory)
//	root := axon.Mount(doc, doc.Root(), App)
//	defer root.Unmount()
//
// Mount wires the three subsystems together: it installs itself as the
// current reader (package track), invokes the component tree (package vdom),
// and re-runs the whole derivation whenever a state container (package
// cortex) reports that a path the last render read has changed. Rendering is
// coarse: any tracked change re-derives the entire tree from the root, and
// the reconciler keeps the live-tree work proportional to what actually
// differs.
package axon

import (
	"log/slog"
	"sync/atomic"

	"github.com/axon-ui/axon/pkg/host"
	"github.com/axon-ui/axon/pkg/track"
	"github.com/axon-ui/axon/pkg/vdom"
)

// Root drives one mounted component tree. It is the subscriber every state
// read during a render registers against; each notification re-renders and
// re-diffs the tree synchronously.
type Root struct {
	id        uint64
	target    host.Node
	component vdom.ComponentFunc
	props     vdom.Props
	rec       *vdom.Reconciler
	prev      *vdom.VNode
	log       *slog.Logger

	closed  atomic.Bool
	renders atomic.Uint64
}

// MountOption configures a Root.
type MountOption func(*Root)

// WithProps sets the props passed to the root component on every render.
func WithProps(props vdom.Props) MountOption {
	return func(r *Root) {
		r.props = props
	}
}

// WithLogger sets the logger for mount lifecycle events.
// Defaults to slog.Default() tagged with the component name.
func WithLogger(l *slog.Logger) MountOption {
	return func(r *Root) {
		r.log = l
	}
}

// Mount renders component into target and returns the live Root. The first
// render happens synchronously before Mount returns; afterwards the tree
// re-renders on every tracked state change until Unmount is called.
//
// target should be an empty element dedicated to this tree; the component's
// output becomes its first child.
func Mount(doc host.Document, target host.Node, component vdom.ComponentFunc, opts ...MountOption) *Root {
	r := &Root{
		id:        track.NextID(),
		target:    target,
		component: component,
		rec:       vdom.NewReconciler(doc),
		log:       slog.Default().With("component", "axon"),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.render()
	r.log.Debug("root mounted", "root_id", r.id)
	return r
}

// render performs one full derivation: build the synthetic root VNode,
// patch against the previous tree with this Root installed as the current
// reader, then run any newly queued mount hooks with the reader cleared.
func (r *Root) render() {
	next := &vdom.VNode{Kind: vdom.KindComponent, Fn: r.component, Props: r.props}

	track.WithReader(r, func() {
		r.rec.Patch(r.target, next, r.prev, 0)
	})
	r.prev = next

	// Mount hooks run after the patch so the live node is guaranteed
	// present, and outside the reader so their reads stay untracked.
	r.rec.FlushMounts()
	r.renders.Add(1)
}

// React re-renders the tree. It is invoked by state containers when a path
// the previous render read has changed. No-op once the root is unmounted.
func (r *Root) React() {
	if r.closed.Load() {
		return
	}
	r.render()
}

// ID implements track.Reader.
func (r *Root) ID() uint64 {
	return r.id
}

// Renders returns how many derivations this root has performed, counting
// the initial mount.
func (r *Root) Renders() uint64 {
	return r.renders.Load()
}

// Unmount tears the tree down: cleanups fire depth-first and the rendered
// subtree is removed from the live tree. Later notifications are ignored;
// call cortex.Forget to drop the dead subscription eagerly if the container
// outlives the root by much.
func (r *Root) Unmount() {
	if r.closed.Swap(true) {
		return
	}
	r.rec.Patch(r.target, nil, r.prev, 0)
	r.prev = nil
	r.log.Debug("root unmounted", "root_id", r.id, "renders", r.renders.Load())
}
