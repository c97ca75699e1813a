package host

// Document creates nodes for one live tree. Nodes from different documents
// must never be mixed.
type Document interface {
	// CreateElement creates a detached element node with the given tag.
	CreateElement(tag string) Node

	// CreateText creates a detached text node with the given content.
	CreateText(text string) Node
}

// EventHandler consumes an event delivered to a node.
type EventHandler func(Event)

// Node is one node in the live tree. Element nodes carry a tag, attributes,
// children and listeners; text nodes carry only content. Calling an
// element-only method on a text node (or vice versa) is a no-op rather than
// a panic: the reconciler self-heals structural drift instead of validating.
type Node interface {
	// Tag returns the element tag, or "" for text nodes.
	Tag() string

	// IsText reports whether this is a text node.
	IsText() bool

	// Text returns the content of a text node.
	Text() string

	// SetText replaces the content of a text node.
	SetText(text string)

	// Parent returns the parent node, or nil for detached and root nodes.
	Parent() Node

	// ChildCount returns the number of children.
	ChildCount() int

	// ChildAt returns the child at index i, or nil when out of range.
	ChildAt(i int) Node

	// AppendChild attaches child as the last child, detaching it from any
	// previous parent first.
	AppendChild(child Node)

	// InsertBefore attaches child immediately before ref. A nil ref appends.
	InsertBefore(child, ref Node)

	// ReplaceChild swaps newChild into oldChild's position and detaches
	// oldChild.
	ReplaceChild(newChild, oldChild Node)

	// RemoveChild detaches child. Unknown children are ignored.
	RemoveChild(child Node)

	// Attribute returns the attribute value and whether it is set.
	Attribute(name string) (string, bool)

	// SetAttribute sets an attribute.
	SetAttribute(name, value string)

	// RemoveAttribute clears an attribute.
	RemoveAttribute(name string)

	// AddEventListener registers a handler for the given event type.
	AddEventListener(event string, handler EventHandler)

	// RemoveEventListener removes a previously registered handler, matched
	// by function identity.
	RemoveEventListener(event string, handler EventHandler)

	// Property returns live state the surface keeps outside attributes,
	// such as "value" or "checked". nil when unset.
	Property(name string) any

	// SetProperty writes live state, such as forcing an input's value.
	SetProperty(name string, value any)
}

// Event is one user interaction delivered to a node.
type Event struct {
	// Type is the event name without the "on" prefix: "click", "input", ...
	Type string

	// Target is the node the event was delivered to.
	Target Node

	// Value carries the current text of the target for input-style events.
	Value string

	// Checked carries the toggle state of the target for checkbox-style
	// events.
	Checked bool

	// Data carries any additional payload: key names, coordinates, form
	// fields. May be nil.
	Data map[string]any
}
