package addressing

import (
	"strconv"
	"strings"
)

// MinBitsPerGroup is the smallest group that Prettify produces when used for
// display.
const MinBitsPerGroup = 3

// A BinaryAddress is the base-2 form of a word address, one character per bit,
// most significant bit first.
type BinaryAddress string

// ToBinary returns the binary form of addr zero-padded to numAddrBits bits.
// It fails if addr does not fit in numAddrBits bits.
func ToBinary(addr WordAddress, numAddrBits int) (BinaryAddress, error) {
	if numAddrBits < 0 || addr.BitLen() > numAddrBits {
		return "", &AddressOverflowError{Addr: addr, NumAddrBits: numAddrBits}
	}

	if numAddrBits == 0 {
		return "", nil
	}

	s := strconv.FormatUint(uint64(addr), 2)

	return BinaryAddress(strings.Repeat("0", numAddrBits-len(s)) + s), nil
}

// Unpadded returns the binary form of addr using its natural bit length.
func Unpadded(addr WordAddress) BinaryAddress {
	return BinaryAddress(strconv.FormatUint(uint64(addr), 2))
}

// Len returns the number of bits in the address.
func (b BinaryAddress) Len() int {
	return len(b)
}

// Tag returns the leading numTagBits bits.
func (b BinaryAddress) Tag(numTagBits int) Field {
	if numTagBits <= 0 {
		return Field{}
	}

	end := min(numTagBits, len(b))

	return NewField(string(b[:end]))
}

// Index returns the numIndexBits bits that sit right before the offset.
func (b BinaryAddress) Index(numOffsetBits, numIndexBits int) Field {
	if numIndexBits <= 0 {
		return Field{}
	}

	end := max(len(b)-numOffsetBits, 0)
	start := max(end-numIndexBits, 0)

	return NewField(string(b[start:end]))
}

// Offset returns the trailing numOffsetBits bits.
func (b BinaryAddress) Offset(numOffsetBits int) Field {
	if numOffsetBits <= 0 {
		return Field{}
	}

	start := max(len(b)-numOffsetBits, 0)

	return NewField(string(b[start:]))
}

// Prettify splits a bit string into groups separated by spaces. The string is
// bisected at its midpoint recursively until a half would be shorter than
// minBitsPerGroup.
func Prettify(bits string, minBitsPerGroup int) string {
	mid := len(bits) / 2
	if mid < minBitsPerGroup {
		return bits
	}

	left := Prettify(bits[:mid], minBitsPerGroup)
	right := Prettify(bits[mid:], minBitsPerGroup)

	return left + " " + right
}
