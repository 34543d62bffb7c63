package host

import "github.com/featherscript/feather/internal/core/hostops"

// store is the host's only form of object ownership: a flat, append-only
// table of values addressed by hostops.Handle. Handle 0 is reserved (the
// Nil sentinel) so objs[0] is never populated.
//
// Objects are never freed: the table holds every allocated object for
// the Host's lifetime, so the Go garbage collector reclaims them only
// once the Host itself is unreachable.
type store struct {
	objs []*object
}

func newStore() *store {
	return &store{objs: make([]*object, 1, 64)}
}

func (s *store) alloc(o *object) hostops.Handle {
	s.objs = append(s.objs, o)
	return hostops.Handle(len(s.objs) - 1)
}

func (s *store) get(h hostops.Handle) *object {
	idx := int(h)
	if idx <= 0 || idx >= len(s.objs) {
		return nil
	}
	return s.objs[idx]
}
