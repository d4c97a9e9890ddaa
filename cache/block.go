package cache

import (
	"slices"

	"github.com/sarchlab/cachesim/addressing"
)

// A Block is an entry of the cache: a tag and the words of the block.
type Block struct {
	Tag  addressing.Field
	Data []addressing.WordAddress
}

func (b Block) clone() Block {
	return Block{
		Tag:  b.Tag,
		Data: slices.Clone(b.Data),
	}
}
