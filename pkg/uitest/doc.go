// Package uitest provides testing helpers for Axon components.
//
// The uitest package reduces boilerplate when testing components by
// providing a fluent mount harness, event drivers and render assertions,
// all backed by the in-memory host document.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := uitest.New().WithCortex(c).Mount(Counter)
//	    h.ClickFirst("button")
//	    uitest.ExpectContains(t, h, "count: 1")
//	}
//
// # Fluent Harness Builder
//
// The builder allows chaining setup before mounting:
//
//	h := uitest.New().
//	    WithCortex(c).
//	    WithProps(axon.Props{"title": "Inbox"}).
//	    Mount(Inbox)
//
// # Driving Events
//
// Events dispatch through the live document exactly as the runtime
// delivers them, so handlers, state writes and re-renders all run
// synchronously before the call returns:
//
//	h.ClickFirst("button")
//	h.Type(h.Find("input"), "hello")
//	h.Call("todo.add", "buy milk")
//
// # Render Assertions
//
// Assert on the mounted HTML output:
//
//	uitest.ExpectContains(t, h, "Welcome")
//	uitest.ExpectNotContains(t, h, "Error")
//	uitest.ExpectAttribute(t, h, "class", "active")
//
// # Golden Files
//
// Snapshot the mounted tree against testdata/golden:
//
//	uitest.Golden(t, h, "dashboard")
//
// Regenerate golden files with go test -update.
package uitest
