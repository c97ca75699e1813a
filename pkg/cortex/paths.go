package cortex

import "strings"

// Paths address fields in the memory tree as dot-separated map keys:
// "user.profile.name". The empty path addresses the whole tree. Path
// segments never index into slices; a list changes by being replaced.

// relates reports whether two paths overlap for notification purposes:
// equal, or one is a dot-prefix ancestor of the other. The empty path
// relates to everything.
func relates(a, b string) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return true
	}
	return isAncestor(a, b) || isAncestor(b, a)
}

// isAncestor reports whether a is a strict dot-prefix ancestor of b,
// e.g. "user" is an ancestor of "user.name" but not of "username".
func isAncestor(a, b string) bool {
	return len(b) > len(a) && strings.HasPrefix(b, a) && b[len(a)] == '.'
}

// joinPath joins a prefix and a relative path, tolerating either being empty.
func joinPath(prefix, path string) string {
	if prefix == "" {
		return path
	}
	if path == "" {
		return prefix
	}
	return prefix + "." + path
}

// getPath walks the tree along path. The second return is false when any
// segment is missing or a non-map intermediate blocks the walk.
func getPath(m map[string]any, path string) (any, bool) {
	if path == "" {
		return m, true
	}
	segs := strings.Split(path, ".")
	cur := any(m)
	for _, seg := range segs {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = node[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// setPath writes v at path, creating intermediate maps as needed. A non-map
// value sitting where an intermediate is needed is replaced by a fresh map;
// the write wins.
func setPath(m map[string]any, path string, v any) {
	segs := strings.Split(path, ".")
	cur := m
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = v
}

// deletePath removes the field at path. Missing intermediates make it a
// no-op.
func deletePath(m map[string]any, path string) {
	segs := strings.Split(path, ".")
	cur := m
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, segs[len(segs)-1])
}
