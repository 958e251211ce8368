// Package seenset tracks the identifiers that have already been reported
// during the lifetime of the process.
package seenset

// Set is a grow-only set of identifiers. It is owned by a single polling
// loop and is not safe for concurrent use.
type Set struct {
	ids map[string]struct{}
}

func New() *Set {
	return &Set{ids: map[string]struct{}{}}
}

func (s *Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add inserts id and reports whether it was not already present.
func (s *Set) Add(id string) bool {
	if s.Contains(id) {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Set) Len() int {
	return len(s.ids)
}
