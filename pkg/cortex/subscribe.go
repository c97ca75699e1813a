package cortex

import "github.com/axon-ui/axon/pkg/track"

// subscriber pairs a reader with the set of memory paths its most recent
// derivation touched. The generation stamp detects when a reader has begun
// a fresh derivation, at which point its path set is rebuilt from scratch
// rather than accumulated; a reader that stops reading a path stops being
// notified for it.
type subscriber struct {
	reader track.Reader
	gen    uint64
	paths  map[string]struct{}
}

func (s *subscriber) matches(changed []string) bool {
	for p := range s.paths {
		for _, q := range changed {
			if relates(p, q) {
				return true
			}
		}
	}
	return false
}

// recordLocked attributes one read to a reader, subscribing it on first
// contact. Subscription order is first-read order and is preserved for
// notification. Called with the mutex held.
func (c *Cortex) recordLocked(r track.Reader, gen uint64, path string) {
	s := c.subByID[r.ID()]
	if s == nil {
		s = &subscriber{reader: r, gen: gen, paths: make(map[string]struct{})}
		c.subs = append(c.subs, s)
		c.subByID[r.ID()] = s
	} else if s.gen != gen {
		s.gen = gen
		s.paths = make(map[string]struct{})
	}
	s.paths[path] = struct{}{}
}

// collect returns, in subscription order, the readers whose recorded paths
// relate to any changed path. Called with the mutex held; the slice is
// consumed after the lock is released.
func (c *Cortex) collect(changed []string) []track.Reader {
	var out []track.Reader
	for _, s := range c.subs {
		if s.matches(changed) {
			out = append(out, s.reader)
		}
	}
	return out
}

// notify fires readers synchronously, outside the lock, so a triggered
// re-render can read memory (and re-subscribe) freely.
func (c *Cortex) notify(readers []track.Reader) {
	for _, r := range readers {
		r.React()
	}
}

// Forget drops a reader's subscription. Call it when a reader is torn down
// for good; a forgotten reader re-subscribes by simply reading again.
func (c *Cortex) Forget(r track.Reader) {
	if r == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.subByID[r.ID()]
	if s == nil {
		return
	}
	delete(c.subByID, r.ID())
	for i, e := range c.subs {
		if e == s {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
}
