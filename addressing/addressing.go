// Package addressing splits word addresses into the tag, index, and offset
// fields that a set-associative cache uses to locate a block.
package addressing

import (
	"fmt"
	"math/bits"
)

// A WordAddress identifies one addressable memory word.
type WordAddress uint64

// BitLen returns the number of bits required to represent the address. Zero
// requires no bits.
func (a WordAddress) BitLen() int {
	return bits.Len64(uint64(a))
}

// ConsecutiveWords returns the words of the block that contains the address,
// including the address itself, in ascending order.
func (a WordAddress) ConsecutiveWords(numWordsPerBlock int) []WordAddress {
	if numWordsPerBlock <= 0 {
		panic(fmt.Sprintf("invalid block size %d", numWordsPerBlock))
	}

	n := WordAddress(numWordsPerBlock)
	first := a - a%n

	words := make([]WordAddress, 0, numWordsPerBlock)
	for i := WordAddress(0); i < n; i++ {
		words = append(words, first+i)
	}

	return words
}

// MaxBitLen returns the bit length of the largest address in addrs.
func MaxBitLen(addrs []WordAddress) int {
	maxLen := 0
	for _, a := range addrs {
		maxLen = max(maxLen, a.BitLen())
	}

	return maxLen
}
