package geom

import "gonum.org/v1/gonum/spatial/r3"

// PointSet is a set of offsets deduplicated by exact coordinate equality.
// Iteration follows insertion order so repeated emissions are stable.
// Keys use Go float equality, so +0 and -0 are the same point.
type PointSet struct {
	index  map[r3.Vec]struct{}
	points []r3.Vec
}

// NewPointSet creates an empty set with room for n points.
func NewPointSet(n int) *PointSet {
	return &PointSet{
		index:  make(map[r3.Vec]struct{}, n),
		points: make([]r3.Vec, 0, n),
	}
}

// Add inserts p and reports whether it was not already present.
func (s *PointSet) Add(p r3.Vec) bool {
	if _, ok := s.index[p]; ok {
		return false
	}
	s.index[p] = struct{}{}
	s.points = append(s.points, p)
	return true
}

// Contains reports whether p is in the set.
func (s *PointSet) Contains(p r3.Vec) bool {
	_, ok := s.index[p]
	return ok
}

// Len returns the number of distinct points.
func (s *PointSet) Len() int {
	return len(s.points)
}

// Points returns the points in insertion order.
// The slice is owned by the set and must not be modified.
func (s *PointSet) Points() []r3.Vec {
	return s.points
}

// Clear removes every point, keeping allocated capacity.
func (s *PointSet) Clear() {
	clear(s.index)
	s.points = s.points[:0]
}
