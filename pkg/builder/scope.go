package builder

// handle identifies a builder inside a scope.
type handle int

const noHandle handle = -1

// scope is the construction context shared by a root builder and every
// subquery builder spawned from it. A subquery reaches its parent through a
// handle into the scope instead of holding a pointer to it, and the handle
// is dropped as soon as the subquery callback returns.
//
// Handles are never reused, so a stale handle resolves to nothing.
type scope struct {
	nodes map[handle]*Builder
	next  handle
}

func newScope() *scope {
	return &scope{nodes: make(map[handle]*Builder)}
}

func (s *scope) open(b *Builder) handle {
	h := s.next
	s.next++
	s.nodes[h] = b
	return h
}

func (s *scope) lookup(h handle) *Builder {
	if h == noHandle {
		return nil
	}
	return s.nodes[h]
}

func (s *scope) release(h handle) {
	delete(s.nodes, h)
}
