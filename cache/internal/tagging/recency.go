// Package tagging keeps the recency order of cached blocks and decides which
// block to evict when a set is full.
package tagging

import (
	"github.com/sarchlab/cachesim/addressing"
	"github.com/secnot/orderedmap"
)

// An Identity names a block in the cache. The index and the tag, not the
// offset, uniquely identify the block an address belongs to.
type Identity struct {
	Index addressing.Field
	Tag   addressing.Field
}

// A RecencyTracker orders identities from the least recently seen to the most
// recently seen. Each identity appears at most once.
type RecencyTracker struct {
	order *orderedmap.OrderedMap
}

// NewRecencyTracker returns an empty tracker.
func NewRecencyTracker() *RecencyTracker {
	return &RecencyTracker{
		order: orderedmap.NewOrderedMap(),
	}
}

// Touch marks the identity as the most recently seen one.
func (t *RecencyTracker) Touch(id Identity) {
	if t.order.MoveLast(id) {
		return
	}

	t.order.Set(id, struct{}{})
}

// Contains tells if the identity has been seen.
func (t *RecencyTracker) Contains(id Identity) bool {
	_, ok := t.order.Get(id)
	return ok
}

// Len returns the number of tracked identities.
func (t *RecencyTracker) Len() int {
	return t.order.Len()
}

// Ascending returns the identities from the least to the most recently seen.
func (t *RecencyTracker) Ascending() []Identity {
	return collect(t.order.Iter(), t.Len())
}

// Descending returns the identities from the most to the least recently seen.
func (t *RecencyTracker) Descending() []Identity {
	return collect(t.order.IterReverse(), t.Len())
}

func collect(iter *orderedmap.MapIterator, n int) []Identity {
	ids := make([]Identity, 0, n)
	for key, _, ok := iter.Next(); ok; key, _, ok = iter.Next() {
		ids = append(ids, key.(Identity))
	}

	return ids
}
