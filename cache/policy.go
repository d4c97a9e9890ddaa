package cache

import (
	"fmt"
	"strings"

	"github.com/sarchlab/cachesim/cache/internal/tagging"
)

// A ReplacementPolicy decides which block leaves a full set.
type ReplacementPolicy string

// Supported replacement policies.
const (
	LRU ReplacementPolicy = "lru"
	MRU ReplacementPolicy = "mru"
)

// ParseReplacementPolicy accepts a policy name in any case.
func ParseReplacementPolicy(name string) (ReplacementPolicy, error) {
	p := ReplacementPolicy(strings.ToLower(strings.TrimSpace(name)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown replacement policy %q", name)
	}

	return p, nil
}

// IsValid tells if the policy is supported.
func (p ReplacementPolicy) IsValid() bool {
	return p == LRU || p == MRU
}

func defaultVictimFinders() map[ReplacementPolicy]tagging.VictimFinder {
	return map[ReplacementPolicy]tagging.VictimFinder{
		LRU: tagging.NewLRUVictimFinder(),
		MRU: tagging.NewMRUVictimFinder(),
	}
}
