// Package sets provides a minimal generic membership set.
package sets

// Set answers membership questions over comparable keys. The tool uses it
// for fixed vocabularies (known settings keys, recognized distributions),
// so construction and lookup are all it offers.
type Set[T comparable] map[T]struct{}

// New builds a set holding vals.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}
