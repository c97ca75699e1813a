package track

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// frame holds the ambient tracking state for one goroutine.
type frame struct {
	// reader is the subscriber currently re-deriving its output.
	// nil means no tracking (reads don't create subscriptions).
	reader Reader

	// generation is the render generation the reader was installed under.
	// Meaningless when reader is nil.
	generation uint64

	// instance collects lifecycle hooks for the component invocation
	// currently running, if any.
	instance *Instance
}

// frames stores per-goroutine tracking frames. sync.Map because frames are
// created and read from many goroutines (one per live session).
var frames sync.Map

// renderGeneration is advanced every time a reader is installed. State
// containers use it to detect that a subscriber has started a fresh
// derivation and its recorded dependency set must be rebuilt, not merged.
var renderGeneration uint64

// getGoroutineID returns a unique identifier for the current goroutine by
// parsing the header of its stack trace ("goroutine <id> ..."). This is an
// implementation detail and must not be relied upon externally.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getFrame returns the tracking frame for the current goroutine, creating an
// empty one if none exists yet.
func getFrame() *frame {
	gid := getGoroutineID()
	if f, ok := frames.Load(gid); ok {
		return f.(*frame)
	}
	f := &frame{}
	frames.Store(gid, f)
	return f
}

// maybeReleaseFrame drops the goroutine's frame once every slot is empty,
// so short-lived goroutines don't leave entries behind.
func maybeReleaseFrame(f *frame) {
	if f.reader == nil && f.instance == nil {
		frames.Delete(getGoroutineID())
	}
}

// CurrentReader returns the reader currently installed on this goroutine and
// the render generation it was installed under. Returns (nil, 0) when no
// reader is installed, in which case reads are untracked.
func CurrentReader() (Reader, uint64) {
	gid := getGoroutineID()
	f, ok := frames.Load(gid)
	if !ok {
		return nil, 0
	}
	fr := f.(*frame)
	return fr.reader, fr.generation
}

// WithReader installs r as the current reader for the duration of fn and
// advances the render generation. The previous reader (and its generation)
// is restored when fn returns, so derivations may nest.
//
// fn must not park the goroutine: the slot is goroutine-local and would not
// follow the work elsewhere.
func WithReader(r Reader, fn func()) {
	f := getFrame()
	oldReader, oldGen := f.reader, f.generation
	f.reader = r
	f.generation = atomic.AddUint64(&renderGeneration, 1)
	defer func() {
		f.reader = oldReader
		f.generation = oldGen
		maybeReleaseFrame(f)
	}()
	fn()
}

// CurrentInstance returns the lifecycle instance for the component invocation
// currently running on this goroutine, or nil outside any invocation.
func CurrentInstance() *Instance {
	gid := getGoroutineID()
	f, ok := frames.Load(gid)
	if !ok {
		return nil
	}
	return f.(*frame).instance
}

// WithInstance installs inst as the current lifecycle instance for the
// duration of fn, restoring the previous one on return. The reconciler wraps
// every component invocation in this so that OnMount and OnCleanup calls made
// during the invocation land on the right instance.
func WithInstance(inst *Instance, fn func()) {
	f := getFrame()
	old := f.instance
	f.instance = inst
	defer func() {
		f.instance = old
		maybeReleaseFrame(f)
	}()
	fn()
}
