package live

// OpType identifies one host mutation in a wire frame.
type OpType string

// Wire operations, mirroring the host.Node surface. The thin client applies
// them in order against its node table.
const (
	OpCreateElement OpType = "createElement" // id, tag
	OpCreateText    OpType = "createText"    // id, text
	OpSetText       OpType = "setText"       // id, text
	OpInsert        OpType = "insert"        // parent, id, ref (0 appends)
	OpRemove        OpType = "remove"        // parent, id
	OpReplace       OpType = "replace"       // parent, id (new), ref (old)
	OpSetAttr       OpType = "setAttr"       // id, name, value
	OpRemoveAttr    OpType = "removeAttr"    // id, name
	OpSetProp       OpType = "setProp"       // id, name, value
	OpListen        OpType = "listen"        // id, name (event type)
	OpUnlisten      OpType = "unlisten"      // id, name
)

// Op is one mutation applied to the client's tree. Which fields are set
// depends on T; zero-valued fields are omitted from the wire.
//
// Node ids are assigned by the server-side document, starting at 1 for the
// mount root. Id 0 never names a node, which is what lets Ref 0 mean
// "append".
type Op struct {
	T      OpType `json:"t"`
	ID     uint64 `json:"id,omitempty"`
	Parent uint64 `json:"parent,omitempty"`
	Ref    uint64 `json:"ref,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Name   string `json:"name,omitempty"`
	Text   string `json:"text,omitempty"`
	Value  any    `json:"value,omitempty"`
}

// Frame is one server-to-client batch of operations. Seq increases by one
// per frame on a session, so the client can detect gaps.
type Frame struct {
	Seq uint64 `json:"seq"`
	Ops []Op   `json:"ops"`
}

// ClientEvent is one client-to-server message: a user interaction on a
// node the server asked to listen on.
type ClientEvent struct {
	Node    uint64         `json:"node"`
	Type    string         `json:"type"`
	Value   string         `json:"value,omitempty"`
	Checked bool           `json:"checked,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}
