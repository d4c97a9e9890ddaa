package cache

import (
	"fmt"
	"slices"
	"sort"

	"github.com/sarchlab/cachesim/addressing"
	"github.com/sarchlab/cachesim/cache/internal/tagging"
)

// FullyAssociativeIndex keys the only set of a cache that has no index bits.
const FullyAssociativeIndex = "0"

// A Store holds the blocks of the cache, grouped into sets by index, and the
// order in which blocks were used.
type Store struct {
	sets          map[string][]Block
	recency       *tagging.RecencyTracker
	victimFinders map[ReplacementPolicy]tagging.VictimFinder
}

// NewStore returns an empty cache with numSets sets. The sets are keyed by
// their number written on numIndexBits bits. A cache without index bits has
// a single set keyed by FullyAssociativeIndex.
func NewStore(numSets, numIndexBits int) *Store {
	s := newStore()

	if numIndexBits == 0 {
		s.sets[FullyAssociativeIndex] = []Block{}
		return s
	}

	for i := 0; i < numSets; i++ {
		index, err := addressing.ToBinary(
			addressing.WordAddress(i), numIndexBits)
		if err != nil {
			panic(err)
		}

		s.sets[string(index)] = []Block{}
	}

	return s
}

// NewStoreFrom returns a cache that holds a copy of the given sets.
func NewStoreFrom(sets map[string][]Block) *Store {
	s := newStore()

	for index, blocks := range sets {
		s.sets[index] = cloneBlocks(blocks)
	}

	return s
}

func newStore() *Store {
	return &Store{
		sets:          make(map[string][]Block),
		recency:       tagging.NewRecencyTracker(),
		victimFinders: defaultVictimFinders(),
	}
}

func setKey(index addressing.Field) string {
	if index.IsAbsent() {
		return FullyAssociativeIndex
	}

	return index.Bits()
}

// IsHit tells if a block with the tag is cached in the set of the index.
func (s *Store) IsHit(index, tag addressing.Field) bool {
	blocks, ok := s.sets[setKey(index)]
	if !ok {
		return false
	}

	for _, block := range blocks {
		if block.Tag == tag {
			return true
		}
	}

	return false
}

// Touch marks the block named by the index and the tag as the most recently
// used one.
func (s *Store) Touch(index, tag addressing.Field) {
	s.recency.Touch(tagging.Identity{Index: index, Tag: tag})
}

// Insert places the entry in the set of the index. If the set already holds
// capacity blocks, the victim chosen by the policy is overwritten in place.
func (s *Store) Insert(
	policy ReplacementPolicy,
	capacity int,
	index addressing.Field,
	entry Block,
) {
	key := setKey(index)

	blocks, ok := s.sets[key]
	if !ok {
		panic(fmt.Sprintf("set %q does not exist", key))
	}

	if len(blocks) < capacity {
		s.sets[key] = append(blocks, entry.clone())
		return
	}

	way := s.findVictim(policy, index, blocks)
	blocks[way] = entry.clone()
}

func (s *Store) findVictim(
	policy ReplacementPolicy,
	index addressing.Field,
	blocks []Block,
) int {
	victimFinder, ok := s.victimFinders[policy]
	if !ok {
		panic("unknown replacement policy: " + string(policy))
	}

	tags := make([]addressing.Field, len(blocks))
	for i, block := range blocks {
		tags[i] = block.Tag
	}

	way, found := victimFinder.FindVictim(s.recency, index, tags)
	if !found {
		panic(fmt.Sprintf(
			"no victim in full set %q: none of its blocks were used",
			setKey(index)))
	}

	return way
}

// Access reads one reference into the cache and records whether it hit. The
// reference counts as used before the hit test, so a miss picks its victim
// with the reference already the most recent one.
func (s *Store) Access(
	ref *Reference,
	capacity int,
	numWordsPerBlock int,
	policy ReplacementPolicy,
) Status {
	s.Touch(ref.Index, ref.Tag)

	if s.IsHit(ref.Index, ref.Tag) {
		ref.markStatus(StatusHit)
		return StatusHit
	}

	ref.markStatus(StatusMiss)
	s.Insert(policy, capacity, ref.Index, ref.CacheEntry(numWordsPerBlock))

	return StatusMiss
}

// Read accesses the references in order.
func (s *Store) Read(
	refs []*Reference,
	capacity int,
	numWordsPerBlock int,
	policy ReplacementPolicy,
) {
	for _, ref := range refs {
		s.Access(ref, capacity, numWordsPerBlock, policy)
	}
}

// NumSets returns the number of sets.
func (s *Store) NumSets() int {
	return len(s.sets)
}

// IsFullyAssociative tells if the cache has a single set.
func (s *Store) IsFullyAssociative() bool {
	return len(s.sets) == 1
}

// Indices returns the keys of all sets in ascending order.
func (s *Store) Indices() []string {
	indices := make([]string, 0, len(s.sets))
	for index := range s.sets {
		indices = append(indices, index)
	}

	sort.Strings(indices)

	return indices
}

// Blocks returns a copy of the blocks of the set, in slot order.
func (s *Store) Blocks(index string) []Block {
	return cloneBlocks(s.sets[index])
}

// Len returns the number of cached blocks.
func (s *Store) Len() int {
	n := 0
	for _, blocks := range s.sets {
		n += len(blocks)
	}

	return n
}

func cloneBlocks(blocks []Block) []Block {
	cloned := make([]Block, len(blocks))
	for i, b := range blocks {
		cloned[i] = b.clone()
	}

	return cloned
}

// Equal tells if the two caches hold the same blocks in the same slots.
func (s *Store) Equal(other *Store) bool {
	if len(s.sets) != len(other.sets) {
		return false
	}

	for index, blocks := range s.sets {
		otherBlocks, ok := other.sets[index]
		if !ok {
			return false
		}

		if !slices.EqualFunc(blocks, otherBlocks, blockEqual) {
			return false
		}
	}

	return true
}

func blockEqual(a, b Block) bool {
	return a.Tag == b.Tag && slices.Equal(a.Data, b.Data)
}
