package cortex

import (
	"context"
	"encoding/json"
)

// Persist marks a field in the initial memory shape for durable storage.
// Construct with Persisted; the marker is unwrapped into a plain value in
// live memory and never visible to readers.
type Persist struct {
	// Initial is the value the field starts with when the store holds
	// nothing usable for it.
	Initial any

	// Key is the storage key. Empty means the field's dot path.
	Key string
}

// PersistOption configures a persisted field.
type PersistOption func(*Persist)

// WithKey sets an explicit storage key for a persisted field.
// By default the field's dot path in memory is used. Use WithKey when you
// need a stable, predictable key for migrations between code versions or
// for sharing stored state between containers.
func WithKey(key string) PersistOption {
	return func(p *Persist) {
		p.Key = key
	}
}

// Persisted wraps an initial value so the field is loaded from and written
// back to the configured store.
//
// Example:
//
//	cortex.New(map[string]any{
//	    "todos":  cortex.Persisted([]any{}),
//	    "filter": "all",                      // not persisted
//	}, factory, cortex.WithStore(store))
func Persisted(initial any, opts ...PersistOption) *Persist {
	p := &Persist{Initial: initial}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// persistedField is the unwrapped bookkeeping for one marker.
type persistedField struct {
	path string
	key  string
}

// coveredBy reports whether a change at any of the given paths requires this
// field to be written back: the field's path must equal a changed path or be
// a dot-prefix ancestor of one.
func (f persistedField) coveredBy(changed []string) bool {
	for _, q := range changed {
		if f.path == q || isAncestor(f.path, q) {
			return true
		}
	}
	return false
}

// load fetches and decodes one persisted field into memory, falling back to
// the initial value (already in place) on absence or failure.
func (c *Cortex) load(ctx context.Context, f persistedField) {
	data, err := c.store.Get(ctx, f.key)
	if err != nil {
		c.log.Warn("persisted field load failed", "path", f.path, "key", f.key, "error", err)
		return
	}
	if data == nil {
		c.log.Debug("no stored value for persisted field", "path", f.path, "key", f.key)
		return
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		c.log.Warn("persisted field decode failed", "path", f.path, "key", f.key, "error", err)
		return
	}
	setPath(c.memory, f.path, v)
}

// pendingWrite is one store operation computed under the lock and flushed
// after it is released. nil data means delete.
type pendingWrite struct {
	path string
	key  string
	data []byte
}

// persistTargets encodes every persisted field covered by the changed paths.
// Called with the mutex held; does no I/O.
func (c *Cortex) persistTargets(changed []string) []pendingWrite {
	if c.store == nil || len(c.persisted) == 0 {
		return nil
	}

	var writes []pendingWrite
	for _, f := range c.persisted {
		if !f.coveredBy(changed) {
			continue
		}
		v, ok := getPath(c.memory, f.path)
		if !ok {
			writes = append(writes, pendingWrite{path: f.path, key: f.key})
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			c.log.Warn("persisted field encode failed", "path", f.path, "key", f.key, "error", err)
			continue
		}
		writes = append(writes, pendingWrite{path: f.path, key: f.key, data: data})
	}
	return writes
}

// flush applies pending writes to the store. Failures are logged and
// swallowed; persistence degrades, the mutation does not.
func (c *Cortex) flush(writes []pendingWrite) {
	if len(writes) == 0 {
		return
	}
	ctx := context.Background()
	for _, w := range writes {
		var err error
		if w.data == nil {
			err = c.store.Delete(ctx, w.key)
		} else {
			err = c.store.Set(ctx, w.key, w.data)
		}
		if err != nil {
			c.log.Warn("persisted field write failed", "path", w.path, "key", w.key, "error", err)
		}
	}
}
