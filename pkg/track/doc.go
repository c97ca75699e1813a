// Package track provides the ambient dependency-tracking slots for the Axon
// runtime.
//
// While a subscriber re-derives its output, the state layer needs to know who
// is reading so that every read can be recorded against that subscriber. The
// slots are ambient: they are installed around a function call rather than
// threaded through every call site, which keeps component code free of
// bookkeeping parameters.
//
// # Readers
//
// A Reader is anything that re-derives output from state and wants to be
// re-invoked when that state changes:
//
//	track.WithReader(root, func() {
//	    tree = render()  // reads inside here are attributed to root
//	})
//
// Installing a reader also advances a global render generation. State
// containers compare the generation recorded with a subscription against the
// current one to decide whether a subscriber's dependency set should be
// rebuilt from scratch rather than merged.
//
// # Instances
//
// An Instance collects the lifecycle callbacks (mount, cleanup) registered
// while one component invocation runs. The reconciler installs a fresh
// Instance around each component call; component code registers hooks through
// OnMount and OnCleanup without ever seeing the Instance itself.
//
// # Thread Safety
//
// Slots are per-goroutine. Reads from goroutines with no installed reader are
// untracked, which is the correct behavior for background work. Callers must
// not park a goroutine while a slot is installed.
package track
