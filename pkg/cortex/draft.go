package cortex

// Draft is the write-tracking wrapper handed to functional mutations. It
// wraps a deep clone of current memory; writes apply to the clone and are
// recorded as changed paths, and the clone replaces memory when the
// callback returns. Drafts are not safe to retain past the callback.
type Draft struct {
	data   map[string]any
	prefix string
	root   *Draft

	// changed preserves first-write order; seen dedups. Only populated on
	// the root draft.
	changed []string
	seen    map[string]struct{}
}

func newDraft(clone map[string]any) *Draft {
	return &Draft{data: clone, seen: make(map[string]struct{})}
}

func (d *Draft) base() *Draft {
	if d.root != nil {
		return d.root
	}
	return d
}

func (d *Draft) recordWrite(path string) {
	b := d.base()
	if _, dup := b.seen[path]; dup {
		return
	}
	b.seen[path] = struct{}{}
	b.changed = append(b.changed, path)
}

// Set writes v at path, creating intermediate maps as needed, and records
// the change. The empty path is a no-op; replacing the whole tree is what
// Merge is for.
func (d *Draft) Set(path string, v any) {
	if path == "" {
		return
	}
	if DebugMode {
		checkValue(joinPath(d.prefix, path), v)
	}
	setPath(d.data, path, v)
	d.recordWrite(joinPath(d.prefix, path))
}

// Delete removes the field at path and records the change. Deleting a
// missing field still records it; over-notifying is safe, missing a
// subscriber is not.
func (d *Draft) Delete(path string) {
	if path == "" {
		return
	}
	deletePath(d.data, path)
	d.recordWrite(joinPath(d.prefix, path))
}

// Get reads from the draft's clone, not from live memory. Draft reads are
// never tracked.
func (d *Draft) Get(path string) any {
	if path == "" {
		return d.data
	}
	v, _ := getPath(d.data, path)
	return v
}

// Sub returns a draft scoped to the map at path, so related writes can use
// short relative paths. The map is materialized (and the change recorded)
// if the path is missing or holds a non-map.
func (d *Draft) Sub(path string) *Draft {
	if path == "" {
		return d
	}
	v, ok := getPath(d.data, path)
	m, isMap := v.(map[string]any)
	if !ok || !isMap {
		m = make(map[string]any)
		setPath(d.data, path, m)
		d.recordWrite(joinPath(d.prefix, path))
	}
	return &Draft{data: m, prefix: joinPath(d.prefix, path), root: d.base()}
}
