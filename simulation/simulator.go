package simulation

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/cachesim/addressing"
	"github.com/sarchlab/cachesim/cache"
)

// A Simulator runs streams of word addresses through a freshly built cache.
// Each run owns its cache, so a Simulator can serve concurrent runs.
type Simulator struct {
	*HookableBase

	cacheSize        int
	numBlocksPerSet  int
	numWordsPerBlock int
	numAddrBits      int
	numBlocks        int
	numSets          int
	numOffsetBits    int
	numIndexBits     int
	policy           cache.ReplacementPolicy
	logger           *slog.Logger
}

// Geometry describes the cache and the address layout of one run.
type Geometry struct {
	CacheSize        int
	NumBlocks        int
	NumSets          int
	NumBlocksPerSet  int
	NumWordsPerBlock int
	Policy           cache.ReplacementPolicy
	Layout           addressing.Layout
}

// Geometry returns the geometry used to simulate the given addresses. The
// address width is raised so that every address and the index and offset
// fields fit.
func (s *Simulator) Geometry(wordAddrs []addressing.WordAddress) Geometry {
	numAddrBits := max(
		s.numAddrBits,
		addressing.MaxBitLen(wordAddrs),
		s.numIndexBits+s.numOffsetBits,
	)

	return Geometry{
		CacheSize:        s.cacheSize,
		NumBlocks:        s.numBlocks,
		NumSets:          s.numSets,
		NumBlocksPerSet:  s.numBlocksPerSet,
		NumWordsPerBlock: s.numWordsPerBlock,
		Policy:           s.policy,
		Layout: addressing.Layout{
			NumAddrBits:   numAddrBits,
			NumTagBits:    numAddrBits - s.numIndexBits - s.numOffsetBits,
			NumIndexBits:  s.numIndexBits,
			NumOffsetBits: s.numOffsetBits,
		},
	}
}

// Run reads the addresses into an empty cache in order and reports the
// outcome of every access together with the final cache contents.
func (s *Simulator) Run(wordAddrs []addressing.WordAddress) (*Result, error) {
	if len(wordAddrs) == 0 {
		return nil, configErr("word addresses", "[]", "must not be empty")
	}

	geometry := s.Geometry(wordAddrs)

	err := geometry.Layout.Validate()
	if err != nil {
		return nil, fmt.Errorf("deriving address layout: %w", err)
	}

	s.logger.Info("cache geometry",
		"num_sets", geometry.NumSets,
		"num_blocks_per_set", geometry.NumBlocksPerSet,
		"num_words_per_block", geometry.NumWordsPerBlock,
		"num_addr_bits", geometry.Layout.NumAddrBits,
		"num_tag_bits", geometry.Layout.NumTagBits,
		"num_index_bits", geometry.Layout.NumIndexBits,
		"num_offset_bits", geometry.Layout.NumOffsetBits,
		"policy", string(geometry.Policy),
	)

	refs, err := buildRefs(wordAddrs, geometry.Layout)
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(geometry.NumSets, geometry.Layout.NumIndexBits)
	result := &Result{
		Geometry: geometry,
		Refs:     refs,
		Cache:    store,
	}

	for i, ref := range refs {
		status := store.Access(
			ref, s.numBlocksPerSet, s.numWordsPerBlock, s.policy)
		result.Stats.count(status)

		s.InvokeHook(HookCtx{
			Domain: s,
			Pos:    HookPosAccess,
			Item:   ref,
			Detail: AccessDetail{Position: i, Cache: store},
		})
	}

	s.InvokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosRunEnd,
		Item:   result,
	})

	return result, nil
}

func buildRefs(
	wordAddrs []addressing.WordAddress,
	layout addressing.Layout,
) ([]*cache.Reference, error) {
	refs := make([]*cache.Reference, 0, len(wordAddrs))

	for i, addr := range wordAddrs {
		ref, err := cache.NewReference(addr, layout)
		if err != nil {
			return nil, fmt.Errorf("address %d at position %d: %w", addr, i, err)
		}

		refs = append(refs, ref)
	}

	return refs, nil
}
