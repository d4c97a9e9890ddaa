// Package cache models a set-associative cache that records, for each
// reference fed into it, whether the reference hit or missed.
package cache

import (
	"fmt"

	"github.com/sarchlab/cachesim/addressing"
)

// Status tells if a reference was found in the cache.
type Status int

// Statuses of a reference. A reference is unset until the cache reads it.
const (
	StatusUnset Status = iota
	StatusMiss
	StatusHit
)

func (s Status) String() string {
	switch s {
	case StatusHit:
		return "HIT"
	case StatusMiss:
		return "miss"
	default:
		return "unset"
	}
}

// A Reference is one access to a word address together with the fields the
// cache uses to locate it.
type Reference struct {
	WordAddr addressing.WordAddress
	BinAddr  addressing.BinaryAddress
	Tag      addressing.Field
	Index    addressing.Field
	Offset   addressing.Field

	status Status
}

// NewReference decomposes the address according to the layout.
func NewReference(
	addr addressing.WordAddress,
	layout addressing.Layout,
) (*Reference, error) {
	d, err := layout.Decompose(addr)
	if err != nil {
		return nil, err
	}

	r := &Reference{
		WordAddr: addr,
		BinAddr:  d.Binary,
		Tag:      d.Tag,
		Index:    d.Index,
		Offset:   d.Offset,
	}

	return r, nil
}

// Status returns whether the reference hit or missed. It is StatusUnset until
// the reference is read into a cache.
func (r *Reference) Status() Status {
	return r.status
}

// CacheEntry returns the block that holds the referenced word.
func (r *Reference) CacheEntry(numWordsPerBlock int) Block {
	return Block{
		Tag:  r.Tag,
		Data: r.WordAddr.ConsecutiveWords(numWordsPerBlock),
	}
}

func (r *Reference) markStatus(s Status) {
	if r.status != StatusUnset {
		panic(fmt.Sprintf("status of reference to %d already set to %s",
			r.WordAddr, r.status))
	}

	r.status = s
}
