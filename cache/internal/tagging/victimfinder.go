package tagging

import "github.com/sarchlab/cachesim/addressing"

// A VictimFinder decides which block of a full set should be replaced. The
// tags are the tags of the blocks in the set, in slot order. It returns the
// slot of the victim, or false if no tracked identity matches a block.
type VictimFinder interface {
	FindVictim(
		recency *RecencyTracker,
		index addressing.Field,
		tags []addressing.Field,
	) (way int, ok bool)
}

// LRUVictimFinder evicts the least recently used block.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed lru evictor
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	return e
}

// FindVictim returns the least recently used block in a set
func (e *LRUVictimFinder) FindVictim(
	recency *RecencyTracker,
	index addressing.Field,
	tags []addressing.Field,
) (int, bool) {
	return firstMatch(recency.Ascending(), index, tags)
}

// MRUVictimFinder evicts the most recently used block.
type MRUVictimFinder struct {
}

// NewMRUVictimFinder returns a newly constructed mru evictor
func NewMRUVictimFinder() *MRUVictimFinder {
	e := new(MRUVictimFinder)
	return e
}

// FindVictim returns the most recently used block in a set
func (e *MRUVictimFinder) FindVictim(
	recency *RecencyTracker,
	index addressing.Field,
	tags []addressing.Field,
) (int, bool) {
	return firstMatch(recency.Descending(), index, tags)
}

func firstMatch(
	ids []Identity,
	index addressing.Field,
	tags []addressing.Field,
) (int, bool) {
	for _, id := range ids {
		if id.Index != index {
			continue
		}

		for way, tag := range tags {
			if tag == id.Tag {
				return way, true
			}
		}
	}

	return 0, false
}
