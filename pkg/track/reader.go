package track

// Reader is anything that re-derives its output from state and can be asked
// to do so again. The root render driver is the canonical implementation.
type Reader interface {
	// React tells the reader that state it read has changed and it should
	// re-derive its output. Called synchronously by the state layer.
	React()

	// ID returns a stable unique identifier for this reader.
	// Used by state containers to deduplicate and order subscriptions.
	ID() uint64
}
