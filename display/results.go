package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/addressing"
	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/simulation"
)

// DefaultWidth is the table width used when none is configured.
const DefaultWidth = 80

// NotApplicable stands in for an address field that the layout does not use.
const NotApplicable = "n/a"

var referenceColumns = []string{
	"WordAddr", "BinAddr", "Tag", "Index", "Offset", "Hit/Miss",
}

// ReferenceTable lists every reference with its address fields and whether
// it hit.
func ReferenceTable(refs []*cache.Reference, width int) *Table {
	t := NewTable(len(referenceColumns), width).WithAlignment(AlignRight)
	t.Header = referenceColumns

	for _, ref := range refs {
		t.AddRow(
			strconv.FormatUint(uint64(ref.WordAddr), 10),
			prettify(addressing.NewField(string(ref.BinAddr))),
			prettify(ref.Tag),
			prettify(ref.Index),
			prettify(ref.Offset),
			ref.Status().String(),
		)
	}

	return t
}

var runColumns = []string{
	"RunID", "Size", "Sets", "Ways", "Words", "Policy", "Hits", "Misses",
}

// RunTable lists recorded runs with their geometry and hit counts.
func RunTable(runs []simulation.RunEntry, width int) *Table {
	t := NewTable(len(runColumns), width).WithAlignment(AlignRight)
	t.Header = runColumns

	for _, r := range runs {
		t.AddRow(
			r.RunID,
			strconv.Itoa(r.CacheSize),
			strconv.Itoa(r.NumSets),
			strconv.Itoa(r.NumBlocksPerSet),
			strconv.Itoa(r.NumWordsPerBlock),
			r.Policy,
			strconv.Itoa(r.Hits),
			strconv.Itoa(r.Misses),
		)
	}

	return t
}

// RecordedReferenceTable is ReferenceTable for references read back from a
// recording, where unused fields are stored empty.
func RecordedReferenceTable(
	refs []simulation.ReferenceEntry,
	width int,
) *Table {
	t := NewTable(len(referenceColumns), width).WithAlignment(AlignRight)
	t.Header = referenceColumns

	for _, ref := range refs {
		t.AddRow(
			strconv.FormatUint(ref.WordAddr, 10),
			prettifyRecorded(ref.BinAddr),
			prettifyRecorded(ref.Tag),
			prettifyRecorded(ref.Index),
			prettifyRecorded(ref.Offset),
			ref.Status,
		)
	}

	return t
}

func prettifyRecorded(bits string) string {
	if bits == "" {
		return NotApplicable
	}

	return addressing.Prettify(bits, addressing.MinBitsPerGroup)
}

func prettify(f addressing.Field) string {
	if f.IsAbsent() {
		return NotApplicable
	}

	return addressing.Prettify(f.Bits(), addressing.MinBitsPerGroup)
}

// CacheTable shows the data held by each set, one column per set. A fully
// associative cache has no header since its only set has no name.
func CacheTable(store *cache.Store, width int) *Table {
	indices := store.Indices()

	t := NewTable(len(indices), width).
		WithAlignment(AlignCenter).
		WithTitle("Cache")

	if !store.IsFullyAssociative() {
		t.Header = indices
	}

	sets := make([]string, len(indices))
	for i, index := range indices {
		sets[i] = formatSet(store.Blocks(index))
	}

	t.AddRow(sets...)

	return t
}

func formatSet(blocks []cache.Block) string {
	blockStrs := make([]string, len(blocks))
	for i, b := range blocks {
		words := make([]string, len(b.Data))
		for j, w := range b.Data {
			words[j] = strconv.FormatUint(uint64(w), 10)
		}

		blockStrs[i] = strings.Join(words, ",")
	}

	return strings.Join(blockStrs, " ")
}

// Summary is a one-line account of the hits.
func Summary(stats simulation.Stats) string {
	return fmt.Sprintf("%d hits, %d misses, hit rate %.2f%%",
		stats.Hits, stats.Misses, stats.HitRate()*100)
}

// WriteResult writes the reference table, the final cache, and the summary,
// separated by blank lines.
func WriteResult(w io.Writer, result *simulation.Result, width int) error {
	sections := []fmt.Stringer{
		ReferenceTable(result.Refs, width),
		CacheTable(result.Cache, width),
	}

	for _, s := range sections {
		_, err := fmt.Fprintf(w, "\n%s\n", s)
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%s\n", Summary(result.Stats))

	return err
}
