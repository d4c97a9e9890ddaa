package simulation

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/addressing"
	"github.com/sarchlab/cachesim/cache"
)

var wordAddrs = []addressing.WordAddress{
	3, 180, 43, 2, 191, 88, 190, 14, 181, 44, 186, 253,
}

func block(tag string, data ...addressing.WordAddress) cache.Block {
	return cache.Block{Tag: addressing.NewField(tag), Data: data}
}

var _ = Describe("Simulator", func() {
	It("should simulate a direct-mapped LRU cache", func() {
		sim, err := MakeBuilder().
			WithCacheSize(4).
			WithNumAddrBits(4).
			Build()
		Expect(err).NotTo(HaveOccurred())

		result, err := sim.Run([]addressing.WordAddress{0, 8, 0, 6, 8})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Cache.Indices()).To(Equal([]string{"00", "01", "10", "11"}))
		Expect(result.Cache.Blocks("00")).To(Equal([]cache.Block{block("10", 8)}))
		Expect(result.Cache.Blocks("01")).To(BeEmpty())
		Expect(result.Cache.Blocks("10")).To(Equal([]cache.Block{block("01", 6)}))
		Expect(result.Cache.Blocks("11")).To(BeEmpty())
		Expect(result.HitPositions()).To(BeEmpty())
		Expect(result.Stats).To(Equal(Stats{Hits: 0, Misses: 5}))
	})

	It("should simulate a fully associative MRU cache", func() {
		sim, err := MakeBuilder().
			WithCacheSize(8).
			WithNumBlocksPerSet(4).
			WithNumWordsPerBlock(2).
			WithNumAddrBits(8).
			WithReplacementPolicy(cache.MRU).
			Build()
		Expect(err).NotTo(HaveOccurred())

		result, err := sim.Run(wordAddrs)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Geometry.Layout).To(Equal(addressing.Layout{
			NumAddrBits: 8, NumTagBits: 7, NumIndexBits: 0, NumOffsetBits: 1,
		}))
		Expect(result.HitPositions()).To(Equal([]int{3, 8}))
		Expect(result.Cache.IsFullyAssociative()).To(BeTrue())
		Expect(result.Cache.Blocks(cache.FullyAssociativeIndex)).To(Equal(
			[]cache.Block{
				block("0000001", 2, 3),
				block("1111110", 252, 253),
				block("0010101", 42, 43),
				block("0000111", 14, 15),
			}))
		Expect(result.Stats.HitRate()).To(BeNumerically("~", 2.0/12.0))
	})

	It("should simulate a fully associative LRU cache", func() {
		sim, _ := MakeBuilder().
			WithCacheSize(8).
			WithNumBlocksPerSet(4).
			WithNumWordsPerBlock(2).
			WithNumAddrBits(8).
			Build()

		result, err := sim.Run(wordAddrs)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.HitPositions()).To(Equal([]int{3, 6}))
	})

	It("should keep the input order and duplicates", func() {
		sim, _ := MakeBuilder().WithCacheSize(8).Build()
		addrs := []addressing.WordAddress{5, 5, 1, 5}

		result, err := sim.Run(addrs)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Refs).To(HaveLen(4))
		for i, ref := range result.Refs {
			Expect(ref.WordAddr).To(Equal(addrs[i]))
		}
		Expect(result.HitPositions()).To(Equal([]int{1, 3}))
	})

	It("should widen the address to fit the largest address", func() {
		sim, _ := MakeBuilder().WithCacheSize(4).WithNumAddrBits(4).Build()

		result, err := sim.Run([]addressing.WordAddress{200, 3})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Geometry.Layout.NumAddrBits).To(Equal(8))
		Expect(result.Geometry.Layout.NumTagBits).To(Equal(6))
		Expect(result.Refs[1].BinAddr).
			To(Equal(addressing.BinaryAddress("00000011")))
	})

	It("should widen the address to fit the index and offset", func() {
		sim, _ := MakeBuilder().WithCacheSize(8).WithNumWordsPerBlock(2).Build()

		result, err := sim.Run([]addressing.WordAddress{0, 1})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Geometry.Layout).To(Equal(addressing.Layout{
			NumAddrBits: 3, NumTagBits: 0, NumIndexBits: 2, NumOffsetBits: 1,
		}))
		Expect(result.Refs[0].Tag.IsAbsent()).To(BeTrue())
		Expect(result.HitPositions()).To(Equal([]int{1}))
	})

	It("should simulate a stream of zero addresses", func() {
		sim, _ := MakeBuilder().WithCacheSize(1).WithNumAddrBits(0).Build()

		result, err := sim.Run([]addressing.WordAddress{0, 0})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Geometry.Layout.NumAddrBits).To(Equal(0))
		Expect(result.HitPositions()).To(Equal([]int{1}))
	})

	It("should refuse an empty address list", func() {
		sim, _ := MakeBuilder().WithCacheSize(4).Build()

		result, err := sim.Run(nil)

		Expect(result).To(BeNil())

		var configErr *ConfigurationError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Field).To(Equal("word addresses"))
	})

	It("should log the geometry and each access", func() {
		buf := new(bytes.Buffer)
		logger := slog.New(slog.NewTextHandler(buf,
			&slog.HandlerOptions{Level: slog.LevelDebug}))
		sim, _ := MakeBuilder().
			WithCacheSize(4).
			WithLogger(logger).
			Build()

		_, err := sim.Run([]addressing.WordAddress{1, 1})

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("cache geometry"))
		Expect(buf.String()).To(ContainSubstring("status=HIT"))
		Expect(buf.String()).To(ContainSubstring("tag=-"))
		Expect(buf.String()).To(ContainSubstring("hits=1"))
	})

	It("should run independent simulations concurrently", func() {
		sim, _ := MakeBuilder().
			WithCacheSize(8).
			WithNumBlocksPerSet(4).
			WithNumWordsPerBlock(2).
			WithReplacementPolicy(cache.MRU).
			Build()

		var wg sync.WaitGroup
		hits := make([][]int, 8)

		for i := range hits {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer GinkgoRecover()

				result, err := sim.Run(wordAddrs)
				Expect(err).NotTo(HaveOccurred())
				hits[i] = result.HitPositions()
			}(i)
		}

		wg.Wait()

		for _, h := range hits {
			Expect(h).To(Equal([]int{3, 8}))
		}
	})
})

var _ = Describe("Stats", func() {
	It("should report zero hit rate without accesses", func() {
		Expect(Stats{}.HitRate()).To(BeZero())
	})

	It("should compute the hit rate", func() {
		s := Stats{Hits: 1, Misses: 3}

		Expect(s.Accesses()).To(Equal(4))
		Expect(s.HitRate()).To(Equal(0.25))
	})
})

type recordingHook struct {
	positions []int
	statuses  []cache.Status
	cacheLens []int
	results   []*Result
}

func (h *recordingHook) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosAccess:
		detail := ctx.Detail.(AccessDetail)
		h.positions = append(h.positions, detail.Position)
		h.statuses = append(h.statuses, ctx.Item.(*cache.Reference).Status())
		h.cacheLens = append(h.cacheLens, detail.Cache.Len())
	case HookPosRunEnd:
		h.results = append(h.results, ctx.Item.(*Result))
	}
}

var _ = Describe("Hooks", func() {
	It("should be invoked after each access and at the end", func() {
		hook := &recordingHook{}
		sim, err := MakeBuilder().
			WithCacheSize(4).
			WithNumAddrBits(4).
			WithHook(hook).
			Build()
		Expect(err).NotTo(HaveOccurred())

		result, err := sim.Run([]addressing.WordAddress{0, 8, 0, 6, 8})

		Expect(err).NotTo(HaveOccurred())
		Expect(hook.positions).To(Equal([]int{0, 1, 2, 3, 4}))
		Expect(hook.statuses).To(HaveEach(cache.StatusMiss))
		Expect(hook.cacheLens).To(Equal([]int{1, 1, 1, 2, 2}))
		Expect(hook.results).To(Equal([]*Result{result}))
	})

	It("should not share hooks between builders", func() {
		base := MakeBuilder().WithCacheSize(4)
		hook := &recordingHook{}

		_ = base.WithHook(hook)
		sim, _ := base.Build()

		_, err := sim.Run([]addressing.WordAddress{1})

		Expect(err).NotTo(HaveOccurred())
		Expect(hook.positions).To(BeEmpty())
		Expect(sim.Hooks).To(BeEmpty())
	})
})
