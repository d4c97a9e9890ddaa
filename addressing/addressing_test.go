package addressing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("WordAddress", func() {
	DescribeTable("consecutive words",
		func(addr WordAddress, blockSize int, expected []WordAddress) {
			Expect(addr.ConsecutiveWords(blockSize)).To(Equal(expected))
		},
		Entry("1-word blocks", WordAddress(23), 1, []WordAddress{23}),
		Entry("2-word blocks", WordAddress(22), 2, []WordAddress{22, 23}),
		Entry("4-word blocks", WordAddress(21), 4,
			[]WordAddress{20, 21, 22, 23}),
	)

	It("should panic on an empty block", func() {
		Expect(func() { WordAddress(3).ConsecutiveWords(0) }).To(Panic())
	})

	It("should find the widest address", func() {
		Expect(MaxBitLen([]WordAddress{3, 180, 43})).To(Equal(8))
		Expect(MaxBitLen([]WordAddress{0, 0})).To(Equal(0))
	})
})

var _ = Describe("Layout", func() {
	It("should accept an exact partition", func() {
		l := Layout{NumAddrBits: 8, NumTagBits: 5, NumIndexBits: 2, NumOffsetBits: 1}

		Expect(l.Validate()).To(Succeed())
	})

	It("should reject a partition that does not add up", func() {
		l := Layout{NumAddrBits: 8, NumTagBits: 4, NumIndexBits: 2, NumOffsetBits: 1}

		Expect(l.Validate()).To(MatchError(ContainSubstring("add up to 7")))
	})

	It("should reject negative widths", func() {
		l := Layout{NumAddrBits: 2, NumTagBits: -1, NumIndexBits: 2, NumOffsetBits: 1}

		Expect(l.Validate()).NotTo(Succeed())
	})

	It("should decompose an address", func() {
		l := Layout{NumAddrBits: 8, NumTagBits: 4, NumIndexBits: 3, NumOffsetBits: 1}

		d, err := l.Decompose(180)

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Binary).To(Equal(BinaryAddress("10110100")))
		Expect(d.Tag).To(Equal(NewField("1011")))
		Expect(d.Index).To(Equal(NewField("010")))
		Expect(d.Offset).To(Equal(NewField("0")))
	})
})
