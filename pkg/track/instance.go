package track

import (
	"sync"
	"sync/atomic"
)

// Instance holds the lifecycle callbacks registered during one component
// invocation. The reconciler creates a fresh Instance for every invocation,
// installs it with WithInstance while the component function runs, and later
// drives the mount and cleanup phases.
type Instance struct {
	id uint64

	mu       sync.Mutex
	mounts   []func()
	cleanups []func()

	// done flips once cleanups have run. Further cleanup registrations run
	// immediately and RunCleanups becomes a no-op.
	done atomic.Bool
}

// NewInstance creates an empty lifecycle instance.
func NewInstance() *Instance {
	return &Instance{id: NextID()}
}

// ID returns the unique identifier for this instance.
func (in *Instance) ID() uint64 {
	return in.id
}

// AddMount registers a callback to run after the invocation's subtree is
// attached to the live tree.
func (in *Instance) AddMount(fn func()) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.mounts = append(in.mounts, fn)
}

// AddCleanup registers a callback to run when the invocation's subtree is
// removed. If the instance was already cleaned up, fn runs immediately.
func (in *Instance) AddCleanup(fn func()) {
	if in.done.Load() {
		fn()
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	in.cleanups = append(in.cleanups, fn)
}

// TakeMounts returns the registered mount callbacks and clears them, so each
// callback is handed out exactly once.
func (in *Instance) TakeMounts() []func() {
	in.mu.Lock()
	defer in.mu.Unlock()
	mounts := in.mounts
	in.mounts = nil
	return mounts
}

// RunCleanups runs the registered cleanup callbacks in reverse registration
// order (last registered first). Safe to call more than once; callbacks run
// exactly once.
func (in *Instance) RunCleanups() {
	if in.done.Swap(true) {
		return
	}

	in.mu.Lock()
	cleanups := in.cleanups
	in.cleanups = nil
	in.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// OnMount registers fn to run after the current component invocation's
// subtree is attached to the live tree. Outside a component invocation this
// is a no-op.
func OnMount(fn func()) {
	if inst := CurrentInstance(); inst != nil {
		inst.AddMount(fn)
	}
}

// OnCleanup registers fn to run when the current component invocation's
// subtree is removed. Outside a component invocation this is a no-op.
func OnCleanup(fn func()) {
	if inst := CurrentInstance(); inst != nil {
		inst.AddCleanup(fn)
	}
}
