package track

import (
	"sync"
	"testing"
)

type fakeReader struct {
	id      uint64
	reacted int
}

func newFakeReader() *fakeReader { return &fakeReader{id: NextID()} }

func (r *fakeReader) React()     { r.reacted++ }
func (r *fakeReader) ID() uint64 { return r.id }

func TestCurrentReaderDefaultsToNil(t *testing.T) {
	r, gen := CurrentReader()
	if r != nil {
		t.Errorf("expected nil reader outside WithReader, got %v", r)
	}
	if gen != 0 {
		t.Errorf("expected generation 0 outside WithReader, got %d", gen)
	}
}

func TestWithReaderInstallsAndRestores(t *testing.T) {
	outer := newFakeReader()

	WithReader(outer, func() {
		r, gen := CurrentReader()
		if r != Reader(outer) {
			t.Errorf("expected installed reader, got %v", r)
		}
		if gen == 0 {
			t.Error("expected nonzero generation inside WithReader")
		}
	})

	r, _ := CurrentReader()
	if r != nil {
		t.Errorf("expected reader slot restored to nil, got %v", r)
	}
}

func TestWithReaderAdvancesGeneration(t *testing.T) {
	r := newFakeReader()

	var first, second uint64
	WithReader(r, func() {
		_, first = CurrentReader()
	})
	WithReader(r, func() {
		_, second = CurrentReader()
	})

	if second <= first {
		t.Errorf("expected generation to advance, got %d then %d", first, second)
	}
}

func TestWithReaderNests(t *testing.T) {
	outer := newFakeReader()
	inner := newFakeReader()

	WithReader(outer, func() {
		WithReader(inner, func() {
			r, _ := CurrentReader()
			if r != Reader(inner) {
				t.Errorf("expected inner reader, got %v", r)
			}
		})
		r, _ := CurrentReader()
		if r != Reader(outer) {
			t.Errorf("expected outer reader restored, got %v", r)
		}
	})
}

func TestReaderSlotIsPerGoroutine(t *testing.T) {
	r := newFakeReader()

	WithReader(r, func() {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := CurrentReader()
			if got != nil {
				t.Errorf("expected untracked goroutine, got reader %v", got)
			}
		}()
		wg.Wait()
	})
}

func TestWithInstanceInstallsAndRestores(t *testing.T) {
	inst := NewInstance()

	WithInstance(inst, func() {
		if CurrentInstance() != inst {
			t.Error("expected installed instance")
		}
	})

	if CurrentInstance() != nil {
		t.Error("expected instance slot restored to nil")
	}
}

func TestInstanceTakeMountsClearsQueue(t *testing.T) {
	inst := NewInstance()
	ran := 0
	inst.AddMount(func() { ran++ })
	inst.AddMount(func() { ran++ })

	for _, fn := range inst.TakeMounts() {
		fn()
	}
	if ran != 2 {
		t.Errorf("expected 2 mounts to run, got %d", ran)
	}

	if got := inst.TakeMounts(); len(got) != 0 {
		t.Errorf("expected no mounts after take, got %d", len(got))
	}
}

func TestInstanceCleanupsRunInReverseExactlyOnce(t *testing.T) {
	inst := NewInstance()
	var order []string
	inst.AddCleanup(func() { order = append(order, "first") })
	inst.AddCleanup(func() { order = append(order, "second") })

	inst.RunCleanups()
	inst.RunCleanups()

	if len(order) != 2 {
		t.Fatalf("expected cleanups to run exactly once each, got %d runs", len(order))
	}
	if order[0] != "second" || order[1] != "first" {
		t.Errorf("expected reverse registration order, got %v", order)
	}
}

func TestAddCleanupAfterDoneRunsImmediately(t *testing.T) {
	inst := NewInstance()
	inst.RunCleanups()

	ran := false
	inst.AddCleanup(func() { ran = true })
	if !ran {
		t.Error("expected late cleanup to run immediately")
	}
}

func TestOnMountOutsideInvocationIsNoop(t *testing.T) {
	// Must not panic.
	OnMount(func() {})
	OnCleanup(func() {})
}

func TestOnMountRegistersOnCurrentInstance(t *testing.T) {
	inst := NewInstance()
	WithInstance(inst, func() {
		OnMount(func() {})
		OnCleanup(func() {})
	})

	if got := len(inst.TakeMounts()); got != 1 {
		t.Errorf("expected 1 registered mount, got %d", got)
	}
}

func TestNextIDIsUnique(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		id := NextID()
		if seen[id] {
			t.Fatalf("duplicate ID %d", id)
		}
		seen[id] = true
	}
}
