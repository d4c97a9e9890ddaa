package simulation

import "github.com/sarchlab/cachesim/cache"

// Result is the outcome of one run.
type Result struct {
	Geometry Geometry
	Refs     []*cache.Reference
	Cache    *cache.Store
	Stats    Stats
}

// HitPositions returns the positions of the references that hit.
func (r *Result) HitPositions() []int {
	positions := []int{}
	for i, ref := range r.Refs {
		if ref.Status() == cache.StatusHit {
			positions = append(positions, i)
		}
	}

	return positions
}

// Stats counts hits and misses.
type Stats struct {
	Hits   int
	Misses int
}

func (s *Stats) count(status cache.Status) {
	switch status {
	case cache.StatusHit:
		s.Hits++
	case cache.StatusMiss:
		s.Misses++
	default:
		panic("reference was not read into the cache")
	}
}

// Accesses returns the number of references counted.
func (s Stats) Accesses() int {
	return s.Hits + s.Misses
}

// HitRate returns the share of hits, or 0 if nothing was accessed.
func (s Stats) HitRate() float64 {
	if s.Accesses() == 0 {
		return 0
	}

	return float64(s.Hits) / float64(s.Accesses())
}
