package addressing

// A Field is one sub-field of a binary address. A field that the cache
// geometry does not use is absent, which is different from a present field
// that holds no bits. The zero value is absent.
type Field struct {
	bits    string
	present bool
}

// NewField returns a present field holding the given bits.
func NewField(bits string) Field {
	return Field{bits: bits, present: true}
}

// IsAbsent tells if the field is not used by the address layout.
func (f Field) IsAbsent() bool {
	return !f.present
}

// Bits returns the bits of the field. Absent fields return an empty string.
func (f Field) Bits() string {
	return f.bits
}

// Or returns the bits of the field, or fallback if the field is absent.
func (f Field) Or(fallback string) string {
	if !f.present {
		return fallback
	}

	return f.bits
}
