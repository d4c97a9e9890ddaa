package addressing

import "fmt"

// A Layout tells how many bits of an address go to each field.
type Layout struct {
	NumAddrBits   int
	NumTagBits    int
	NumIndexBits  int
	NumOffsetBits int
}

// Validate checks that the fields are non-negative and exactly partition the
// address.
func (l Layout) Validate() error {
	if l.NumTagBits < 0 || l.NumIndexBits < 0 || l.NumOffsetBits < 0 {
		return fmt.Errorf("negative field width in layout %+v", l)
	}

	sum := l.NumTagBits + l.NumIndexBits + l.NumOffsetBits
	if sum != l.NumAddrBits {
		return fmt.Errorf(
			"tag, index, and offset bits add up to %d, want %d",
			sum, l.NumAddrBits)
	}

	return nil
}

// A Decomposition is a binary address together with its fields.
type Decomposition struct {
	Binary BinaryAddress
	Tag    Field
	Index  Field
	Offset Field
}

// Decompose converts addr to binary and extracts its fields.
func (l Layout) Decompose(addr WordAddress) (Decomposition, error) {
	bin, err := ToBinary(addr, l.NumAddrBits)
	if err != nil {
		return Decomposition{}, err
	}

	return Decomposition{
		Binary: bin,
		Tag:    bin.Tag(l.NumTagBits),
		Index:  bin.Index(l.NumOffsetBits, l.NumIndexBits),
		Offset: bin.Offset(l.NumOffsetBits),
	}, nil
}
