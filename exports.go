package axon

import (
	"github.com/axon-ui/axon/pkg/cortex"
	"github.com/axon-ui/axon/pkg/track"
	"github.com/axon-ui/axon/pkg/vdom"
)

// =============================================================================
// Virtual tree (re-export from pkg/vdom)
// =============================================================================

// VNode is one node of a virtual tree.
type VNode = vdom.VNode

// Props carries the attributes, event handlers, and component inputs of a
// virtual node.
type Props = vdom.Props

// ComponentFunc is a function component: props in, virtual subtree out.
type ComponentFunc = vdom.ComponentFunc

// H constructs a virtual node. See vdom.H for children normalization rules.
//
// Example:
//
//	axon.H("div", axon.Props{"class": "row"},
//	    axon.H("span", nil, "hello"),
//	    axon.If(count > 0, axon.Textf("%d items", count)),
//	)
func H(tag any, props Props, children ...any) *VNode {
	return vdom.H(tag, props, children...)
}

// Text creates a text node.
func Text(content string) *VNode { return vdom.Text(content) }

// Textf creates a text node from a format string.
func Textf(format string, args ...any) *VNode { return vdom.Textf(format, args...) }

// If returns node when condition holds, nil otherwise (and nil children are
// dropped during normalization).
func If(condition bool, node *VNode) *VNode { return vdom.If(condition, node) }

// When lazily builds a subtree only when condition holds.
func When(condition bool, fn func() *VNode) *VNode { return vdom.When(condition, fn) }

// Map renders a slice of items through fn, skipping nil results.
func Map[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	return vdom.Map(items, fn)
}

// =============================================================================
// Lifecycle hooks (re-export from pkg/track)
// =============================================================================

// OnMount registers fn to run once after the current component's subtree is
// first attached to the live tree. No-op outside a component invocation.
func OnMount(fn func()) { track.OnMount(fn) }

// OnCleanup registers fn to run when the current component's subtree is
// unmounted. No-op outside a component invocation.
func OnCleanup(fn func()) { track.OnCleanup(fn) }

// =============================================================================
// State (re-export from pkg/cortex)
// =============================================================================

// Cortex is a dependency-tracking state container.
type Cortex = cortex.Cortex

// Actions maps synapse names to their implementations.
type Actions = cortex.Actions

// API is the mutation surface handed to a synapse factory.
type API = cortex.API

// Draft is the write-tracking wrapper used by functional mutations.
type Draft = cortex.Draft

// View reads a container's memory with dependency tracking.
type View = cortex.View

// NewCortex creates a state container. See cortex.New.
//
// Example:
//
//	state := axon.NewCortex(map[string]any{
//	    "todos": axon.Persisted([]any{}),
//	}, buildActions, cortex.WithStore(store))
func NewCortex(initial map[string]any, factory cortex.Factory, opts ...cortex.Option) *Cortex {
	return cortex.New(initial, factory, opts...)
}

// Persisted marks a field of the initial memory shape for durable storage.
var Persisted = cortex.Persisted

// WithKey sets an explicit storage key on a persisted field.
var WithKey = cortex.WithKey

// WithStore attaches a durable store to a container.
var WithStore = cortex.WithStore
