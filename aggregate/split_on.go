// Package aggregate rebuilds parent/child graphs from flat join rows.
package aggregate

// SplitOn groups joined rows by parent key. The first row seen for a key
// supplies the parent; every row contributes its child. Parents come back in
// the order their key was first seen, and rows for one parent do not need to
// be contiguous.
type SplitOn[P any, C any, K comparable] struct {
	index   map[K]int
	parents []P
	attach  func(*P, C)
}

// NewSplitOn returns a builder that uses attach to append a child to its parent.
func NewSplitOn[P any, C any, K comparable](attach func(parent *P, child C)) *SplitOn[P, C, K] {
	return &SplitOn[P, C, K]{
		index:  make(map[K]int),
		attach: attach,
	}
}

// Add records one joined row.
func (s *SplitOn[P, C, K]) Add(key K, parent P, child C) {
	i, ok := s.index[key]
	if !ok {
		i = len(s.parents)
		s.index[key] = i
		s.parents = append(s.parents, parent)
	}
	s.attach(&s.parents[i], child)
}

// Len reports the number of distinct parents seen so far.
func (s *SplitOn[P, C, K]) Len() int {
	return len(s.parents)
}

// Result returns the parents in first-seen order. It never returns nil.
func (s *SplitOn[P, C, K]) Result() []P {
	if s.parents == nil {
		return []P{}
	}
	return s.parents
}
