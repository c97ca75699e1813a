package cortex

import "github.com/axon-ui/axon/pkg/track"

// View reads the memory tree on behalf of whichever subscriber was current
// when Memory() was called. Every accessor records the full dot path it
// touched against that subscriber, including intermediate paths reached via
// Sub, so deep chains are tracked at full granularity. A View obtained with
// no current reader performs the same reads untracked.
//
// Values come back as live references into memory; treat them as read-only.
type View struct {
	c      *Cortex
	prefix string
	reader track.Reader
	gen    uint64
}

// Memory returns a View bound to the current reader, if any. Bind once per
// derivation; the reader is captured at call time, not at each access.
func (c *Cortex) Memory() *View {
	r, gen := track.CurrentReader()
	return &View{c: c, reader: r, gen: gen}
}

// read records the access and fetches the value in one critical section.
func (c *Cortex) read(r track.Reader, gen uint64, path string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r != nil {
		c.recordLocked(r, gen, path)
	}
	return getPath(c.memory, path)
}

// Get returns the value at path, or nil when absent. The empty path returns
// the whole tree and subscribes the reader to every change.
func (v *View) Get(path string) any {
	val, _ := v.c.read(v.reader, v.gen, joinPath(v.prefix, path))
	return val
}

// Has reports whether a field exists at path.
func (v *View) Has(path string) bool {
	_, ok := v.c.read(v.reader, v.gen, joinPath(v.prefix, path))
	return ok
}

// Sub returns a View rooted at path. The access itself is tracked, so a
// reader that only ever calls Sub("user") still re-derives when "user" is
// wholesale-replaced.
func (v *View) Sub(path string) *View {
	full := joinPath(v.prefix, path)
	v.c.read(v.reader, v.gen, full)
	return &View{c: v.c, prefix: full, reader: v.reader, gen: v.gen}
}

// String returns the string at path, or "" when absent or not a string.
func (v *View) String(path string) string {
	s, _ := v.Get(path).(string)
	return s
}

// Int returns the number at path as an int. JSON decoding stores numbers as
// float64, so both forms coerce.
func (v *View) Int(path string) int {
	switch n := v.Get(path).(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Float returns the number at path as a float64.
func (v *View) Float(path string) float64 {
	switch n := v.Get(path).(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Bool returns the bool at path, or false when absent or not a bool.
func (v *View) Bool(path string) bool {
	b, _ := v.Get(path).(bool)
	return b
}

// Strings returns the list at path as []string. Non-string elements of an
// []any list are skipped.
func (v *View) Strings(path string) []string {
	switch list := v.Get(path).(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Slice returns the list at path as []any, or nil when absent.
func (v *View) Slice(path string) []any {
	switch list := v.Get(path).(type) {
	case []any:
		return list
	case []string:
		out := make([]any, len(list))
		for i, e := range list {
			out[i] = e
		}
		return out
	default:
		return nil
	}
}

// Map returns the nested map at path, or nil when absent.
func (v *View) Map(path string) map[string]any {
	m, _ := v.Get(path).(map[string]any)
	return m
}

// Len returns the length of the list, map, or string at path, or 0.
func (v *View) Len(path string) int {
	switch t := v.Get(path).(type) {
	case []any:
		return len(t)
	case []string:
		return len(t)
	case map[string]any:
		return len(t)
	case string:
		return len(t)
	default:
		return 0
	}
}
