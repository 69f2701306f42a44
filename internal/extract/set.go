package extract

import "sort"

// Set is a collection of unique names. Collection order is not preserved;
// Sorted returns the members in lexicographic order.
type Set map[string]struct{}

// NewSet returns a Set holding the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name. Duplicates collapse.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is a member.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members sorted lexicographically. A nil or empty Set
// yields an empty, non-nil slice.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
