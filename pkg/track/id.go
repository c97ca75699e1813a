package track

import "sync/atomic"

// globalIDCounter is the source of unique IDs for readers and instances.
// Atomic operations keep ID generation thread-safe without locks.
var globalIDCounter uint64

// NextID returns the next unique ID. IDs are monotonically increasing and
// never reused. Reader implementations should grab one at construction.
func NextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
