// Package simulation derives the cache geometry from its configuration and
// runs address streams through a cache.
package simulation

import (
	"io"
	"log/slog"
	"math/bits"
	"slices"

	"github.com/sarchlab/cachesim/cache"
)

// Builder can build simulators.
type Builder struct {
	cacheSize        int
	numBlocksPerSet  int
	numWordsPerBlock int
	numAddrBits      int
	policy           cache.ReplacementPolicy
	logger           *slog.Logger
	hooks            []Hook
}

// MakeBuilder creates a new builder with the defaults of the command-line
// tool: direct-mapped, one word per block, one address bit, LRU.
func MakeBuilder() Builder {
	return Builder{
		numBlocksPerSet:  1,
		numWordsPerBlock: 1,
		numAddrBits:      1,
		policy:           cache.LRU,
	}
}

// WithCacheSize sets the size of the cache in words.
func (b Builder) WithCacheSize(cacheSize int) Builder {
	b.cacheSize = cacheSize
	return b
}

// WithNumBlocksPerSet sets the associativity.
func (b Builder) WithNumBlocksPerSet(numBlocksPerSet int) Builder {
	b.numBlocksPerSet = numBlocksPerSet
	return b
}

// WithNumWordsPerBlock sets the block size in words.
func (b Builder) WithNumWordsPerBlock(numWordsPerBlock int) Builder {
	b.numWordsPerBlock = numWordsPerBlock
	return b
}

// WithNumAddrBits sets the minimum address width. The simulator widens it if
// an address or the cache geometry needs more bits.
func (b Builder) WithNumAddrBits(numAddrBits int) Builder {
	b.numAddrBits = numAddrBits
	return b
}

// WithReplacementPolicy sets the replacement policy.
func (b Builder) WithReplacementPolicy(policy cache.ReplacementPolicy) Builder {
	b.policy = policy
	return b
}

// WithLogger sets the logger that reports the geometry and each access.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithHook registers a hook on every simulator built.
func (b Builder) WithHook(hook Hook) Builder {
	b.hooks = append(slices.Clone(b.hooks), hook)
	return b
}

// Build validates the configuration and creates a simulator.
func (b Builder) Build() (*Simulator, error) {
	err := b.validate()
	if err != nil {
		return nil, err
	}

	numBlocks := b.cacheSize / b.numWordsPerBlock
	numSets := numBlocks / b.numBlocksPerSet

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Simulator{
		HookableBase:     &HookableBase{},
		cacheSize:        b.cacheSize,
		numBlocksPerSet:  b.numBlocksPerSet,
		numWordsPerBlock: b.numWordsPerBlock,
		numAddrBits:      b.numAddrBits,
		numBlocks:        numBlocks,
		numSets:          numSets,
		numOffsetBits:    log2(b.numWordsPerBlock),
		numIndexBits:     log2(numSets),
		policy:           b.policy,
		logger:           logger,
	}

	if b.logger != nil {
		s.AcceptHook(NewLogHook(b.logger))
	}

	for _, h := range b.hooks {
		s.AcceptHook(h)
	}

	return s, nil
}

func (b Builder) validate() error {
	switch {
	case b.cacheSize <= 0:
		return configErr("cache size", b.cacheSize, "must be positive")
	case b.numBlocksPerSet <= 0:
		return configErr("number of blocks per set", b.numBlocksPerSet,
			"must be positive")
	case b.numWordsPerBlock <= 0:
		return configErr("number of words per block", b.numWordsPerBlock,
			"must be positive")
	case b.numAddrBits < 0:
		return configErr("number of address bits", b.numAddrBits,
			"must not be negative")
	case !b.policy.IsValid():
		return configErr("replacement policy", b.policy,
			"must be lru or mru")
	case !isPowerOfTwo(b.numWordsPerBlock):
		return configErr("number of words per block", b.numWordsPerBlock,
			"must be a power of two")
	case !isPowerOfTwo(b.numBlocksPerSet):
		return configErr("number of blocks per set", b.numBlocksPerSet,
			"must be a power of two")
	}

	return b.mustBeFullSets()
}

func (b Builder) mustBeFullSets() error {
	if b.cacheSize%b.numWordsPerBlock != 0 {
		return configErr("cache size", b.cacheSize,
			"must hold a whole number of blocks")
	}

	numBlocks := b.cacheSize / b.numWordsPerBlock
	if numBlocks%b.numBlocksPerSet != 0 {
		return configErr("cache size", b.cacheSize,
			"must hold a whole number of sets")
	}

	numSets := numBlocks / b.numBlocksPerSet
	if !isPowerOfTwo(numSets) {
		return configErr("number of sets", numSets, "must be a power of two")
	}

	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func log2(n int) int {
	return bits.TrailingZeros(uint(n))
}
