// Package host defines the boundary between the Axon runtime and the live
// tree it patches.
//
// The reconciler mutates real display surfaces only through the Document and
// Node interfaces, so the same runtime drives an in-memory tree in tests
// (memdom), a websocket-mirrored browser DOM in production (live), or any
// other surface that can satisfy the capability set.
//
// Nodes are either elements (a tag, attributes, children, listeners) or text
// leaves. Properties are the live form state a browser keeps outside the
// attribute set: "value" and "checked" drift as the user types and are read
// back by the reconciler to decide whether a write is needed.
package host
