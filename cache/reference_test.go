package cache

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/addressing"
)

var _ = Describe("Reference", func() {
	layout := addressing.Layout{
		NumAddrBits:   8,
		NumTagBits:    4,
		NumIndexBits:  3,
		NumOffsetBits: 1,
	}

	It("should decompose the address", func() {
		ref, err := NewReference(180, layout)

		Expect(err).NotTo(HaveOccurred())
		Expect(ref.WordAddr).To(Equal(addressing.WordAddress(180)))
		Expect(ref.BinAddr).To(Equal(addressing.BinaryAddress("10110100")))
		Expect(ref.Tag).To(Equal(addressing.NewField("1011")))
		Expect(ref.Index).To(Equal(addressing.NewField("010")))
		Expect(ref.Offset).To(Equal(addressing.NewField("0")))
		Expect(ref.Status()).To(Equal(StatusUnset))
	})

	It("should fail on addresses wider than the layout", func() {
		_, err := NewReference(256, layout)

		var overflow *addressing.AddressOverflowError
		Expect(errors.As(err, &overflow)).To(BeTrue())
	})

	It("should build the cache entry from the block-mates", func() {
		ref, _ := NewReference(181, layout)

		Expect(ref.CacheEntry(2)).To(Equal(Block{
			Tag:  addressing.NewField("1011"),
			Data: []addressing.WordAddress{180, 181},
		}))
	})

	It("should accept its status only once", func() {
		ref, _ := NewReference(180, layout)

		ref.markStatus(StatusMiss)

		Expect(ref.Status()).To(Equal(StatusMiss))
		Expect(func() { ref.markStatus(StatusHit) }).To(Panic())
	})

	It("should display statuses", func() {
		Expect(StatusHit.String()).To(Equal("HIT"))
		Expect(StatusMiss.String()).To(Equal("miss"))
		Expect(StatusUnset.String()).To(Equal("unset"))
	})
})

var _ = Describe("ReplacementPolicy", func() {
	It("should parse names in any case", func() {
		p, err := ParseReplacementPolicy("MRU")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(MRU))

		p, err = ParseReplacementPolicy(" lru ")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(LRU))
	})

	It("should reject unknown policies", func() {
		_, err := ParseReplacementPolicy("fifo")

		Expect(err).To(MatchError(ContainSubstring("fifo")))
	})
})
