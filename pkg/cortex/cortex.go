package cortex

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/axon-ui/axon/pkg/keyval"
)

// Action is one named mutator ("synapse") exposed by a Cortex. The payload
// is whatever the caller passed to Call; actions decide what shape they
// accept.
type Action func(payload any)

// Actions maps synapse names to their implementations.
type Actions map[string]Action

// Factory builds the synapse table once at construction time. It receives
// the mutation API so every write the actions perform funnels through the
// change-tracking pipeline. The returned table is immutable afterwards.
type Factory func(api API) Actions

// API is the mutation surface handed to the synapse factory.
type API struct {
	// Merge shallow-merges fields into memory. Changed paths are the
	// argument's top-level keys.
	Merge func(fields map[string]any)

	// Update runs a functional mutation against a disposable deep clone.
	Update func(fn func(d *Draft) map[string]any)

	// Snapshot returns an untracked deep copy of current memory.
	Snapshot func() map[string]any
}

// Option configures a Cortex.
type Option func(*Cortex)

// WithStore attaches a durable store for fields marked with Persisted.
// Without a store, persisted markers unwrap to their initial values and
// nothing is written anywhere.
func WithStore(s keyval.Store) Option {
	return func(c *Cortex) {
		c.store = s
	}
}

// WithLogger sets the logger used for persistence warnings and misuse
// reports. Defaults to slog.Default() tagged with the component name.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cortex) {
		c.log = l
	}
}

// Cortex is a dependency-tracking state container. See the package
// documentation for the full model.
type Cortex struct {
	mu      sync.Mutex
	memory  map[string]any
	subs    []*subscriber
	subByID map[uint64]*subscriber

	actions   Actions
	persisted []persistedField
	store     keyval.Store
	log       *slog.Logger
}

// New creates a Cortex from an initial memory shape and a synapse factory.
// Fields in initial may be wrapped with Persisted at any depth; markers are
// loaded from the store (when configured) and unwrapped into plain values.
// Both initial and factory may be nil.
func New(initial map[string]any, factory Factory, opts ...Option) *Cortex {
	c := &Cortex{
		memory:  make(map[string]any, len(initial)),
		subByID: make(map[uint64]*subscriber),
		actions: Actions{},
		log:     slog.Default().With("component", "cortex"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.unwrap(c.memory, initial, "")

	if c.store != nil {
		ctx := context.Background()
		for _, f := range c.persisted {
			c.load(ctx, f)
		}
	} else if len(c.persisted) > 0 {
		c.log.Debug("persisted fields declared but no store configured", "fields", len(c.persisted))
	}

	if DebugMode {
		checkValue("", c.memory)
	}

	if factory != nil {
		c.actions = factory(API{
			Merge:    c.Merge,
			Update:   c.Update,
			Snapshot: c.Snapshot,
		})
	}
	return c
}

// unwrap deep-copies src into dst, replacing Persist markers with their
// initial values and collecting their paths. Keys are walked in sorted order
// so the persisted field list is deterministic.
func (c *Cortex) unwrap(dst, src map[string]any, prefix string) {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := joinPath(prefix, k)
		switch t := src[k].(type) {
		case *Persist:
			key := t.Key
			if key == "" {
				key = path
			}
			c.persisted = append(c.persisted, persistedField{path: path, key: key})
			dst[k] = cloneValue(t.Initial)
		case map[string]any:
			sub := make(map[string]any, len(t))
			c.unwrap(sub, t, path)
			dst[k] = sub
		default:
			dst[k] = cloneValue(t)
		}
	}
}

// Merge shallow-merges fields into memory: every top-level key of the
// argument becomes a changed path, unconditionally, and its value replaces
// the previous one. Untouched sibling fields keep their identity. Passing
// an empty map is a no-op.
func (c *Cortex) Merge(fields map[string]any) {
	if len(fields) == 0 {
		return
	}
	if DebugMode {
		for k, v := range fields {
			checkValue(k, v)
		}
	}

	changed := make([]string, 0, len(fields))
	for k := range fields {
		changed = append(changed, k)
	}
	sort.Strings(changed)

	c.mu.Lock()
	next := make(map[string]any, len(c.memory)+len(fields))
	for k, v := range c.memory {
		next[k] = v
	}
	for k, v := range fields {
		next[k] = v
	}
	c.memory = next
	writes := c.persistTargets(changed)
	readers := c.collect(changed)
	c.mu.Unlock()

	c.flush(writes)
	c.notify(readers)
}

// Update runs fn against a Draft wrapping a deep clone of current memory.
// Writes through the draft are recorded as changed paths; when fn returns a
// non-nil map its keys are applied as an additional merge on top of the
// clone. The clone then replaces memory wholesale.
//
// fn runs outside the container lock, so it may call Snapshot or read
// through an untracked View freely. It must not retain the Draft.
func (c *Cortex) Update(fn func(d *Draft) map[string]any) {
	if fn == nil {
		return
	}

	c.mu.Lock()
	clone := cloneMap(c.memory)
	c.mu.Unlock()

	d := newDraft(clone)
	extra := fn(d)

	changed := d.changed
	if len(extra) > 0 {
		keys := make([]string, 0, len(extra))
		for k := range extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			clone[k] = extra[k]
			if _, dup := d.seen[k]; !dup {
				changed = append(changed, k)
			}
		}
	}

	if DebugMode {
		checkValue("", clone)
	}

	c.mu.Lock()
	c.memory = clone
	writes := c.persistTargets(changed)
	readers := c.collect(changed)
	c.mu.Unlock()

	c.flush(writes)
	c.notify(readers)
}

// Set is the loosely-typed dispatcher over the two mutation conventions,
// for wire-driven callers that receive "a map or a function" from decoded
// input. Application code should prefer Merge and Update directly.
func (c *Cortex) Set(arg any) {
	switch v := arg.(type) {
	case nil:
	case map[string]any:
		c.Merge(v)
	case func(d *Draft) map[string]any:
		c.Update(v)
	case func(d *Draft):
		c.Update(func(d *Draft) map[string]any {
			v(d)
			return nil
		})
	default:
		c.log.Warn("set called with unsupported argument", "type", fmt.Sprintf("%T", arg))
	}
}

// Snapshot returns an untracked deep copy of current memory. Safe to retain
// and mutate; changes to it never reach the container.
func (c *Cortex) Snapshot() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMap(c.memory)
}

// Synapse looks up a registered action by name.
func (c *Cortex) Synapse(name string) (Action, bool) {
	a, ok := c.actions[name]
	return a, ok
}

// Synapses returns the registered action names, sorted.
func (c *Cortex) Synapses() []string {
	names := make([]string, 0, len(c.actions))
	for name := range c.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the named synapse with payload. Unknown names return
// ErrUnknownSynapse, with a "did you mean" hint when a registered name is
// within edit distance 3 of the requested one.
func (c *Cortex) Call(name string, payload any) error {
	a, ok := c.actions[name]
	if !ok {
		if sugg := c.nearestSynapse(name); sugg != "" {
			return fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownSynapse, name, sugg)
		}
		return fmt.Errorf("%w: %q", ErrUnknownSynapse, name)
	}
	a(payload)
	return nil
}

// nearestSynapse returns the closest registered name to a misspelled one,
// or "" when nothing is close enough to be a plausible typo.
func (c *Cortex) nearestSynapse(name string) string {
	best := ""
	bestDist := 4
	for _, candidate := range c.Synapses() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
