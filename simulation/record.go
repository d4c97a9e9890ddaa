package simulation

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/xid"

	"github.com/sarchlab/cachesim/datarecording"
)

// Tables written by Record.
const (
	RunTable       = "cachesim_runs"
	ReferenceTable = "cachesim_refs"
	BlockTable     = "cachesim_blocks"
)

// RunEntry is one row of the run table.
type RunEntry struct {
	RunID            string
	CacheSize        int
	NumSets          int
	NumBlocksPerSet  int
	NumWordsPerBlock int
	NumAddrBits      int
	NumTagBits       int
	NumIndexBits     int
	NumOffsetBits    int
	Policy           string
	Hits             int
	Misses           int
}

// ReferenceEntry is one row of the reference table. Fields the layout does
// not use are stored as empty strings.
type ReferenceEntry struct {
	RunID    string
	Position int
	WordAddr uint64
	BinAddr  string
	Tag      string
	Index    string
	Offset   string
	Status   string
}

// BlockEntry is one row of the block table. Data holds the words of the
// block separated by commas.
type BlockEntry struct {
	RunID    string
	SetIndex string
	Slot     int
	Tag      string
	Data     string
}

// Record writes the run, its references, and the final cache contents into
// the recorder and returns the generated run ID. Tables are created on first
// use, so several runs can share one recorder.
func Record(recorder datarecording.DataRecorder, result *Result) string {
	runID := xid.New().String()

	createTables(recorder)

	g := result.Geometry
	recorder.InsertData(RunTable, RunEntry{
		RunID:            runID,
		CacheSize:        g.CacheSize,
		NumSets:          g.NumSets,
		NumBlocksPerSet:  g.NumBlocksPerSet,
		NumWordsPerBlock: g.NumWordsPerBlock,
		NumAddrBits:      g.Layout.NumAddrBits,
		NumTagBits:       g.Layout.NumTagBits,
		NumIndexBits:     g.Layout.NumIndexBits,
		NumOffsetBits:    g.Layout.NumOffsetBits,
		Policy:           string(g.Policy),
		Hits:             result.Stats.Hits,
		Misses:           result.Stats.Misses,
	})

	for i, ref := range result.Refs {
		recorder.InsertData(ReferenceTable, ReferenceEntry{
			RunID:    runID,
			Position: i,
			WordAddr: uint64(ref.WordAddr),
			BinAddr:  string(ref.BinAddr),
			Tag:      ref.Tag.Bits(),
			Index:    ref.Index.Bits(),
			Offset:   ref.Offset.Bits(),
			Status:   ref.Status().String(),
		})
	}

	for _, index := range result.Cache.Indices() {
		for slot, block := range result.Cache.Blocks(index) {
			words := make([]string, len(block.Data))
			for i, w := range block.Data {
				words[i] = strconv.FormatUint(uint64(w), 10)
			}

			recorder.InsertData(BlockTable, BlockEntry{
				RunID:    runID,
				SetIndex: index,
				Slot:     slot,
				Tag:      block.Tag.Bits(),
				Data:     strings.Join(words, ","),
			})
		}
	}

	recorder.Flush()

	return runID
}

func createTables(recorder datarecording.DataRecorder) {
	existing := recorder.ListTables()

	tables := []struct {
		name   string
		sample any
	}{
		{RunTable, RunEntry{}},
		{ReferenceTable, ReferenceEntry{}},
		{BlockTable, BlockEntry{}},
	}

	for _, t := range tables {
		if !slices.Contains(existing, t.name) {
			recorder.CreateTable(t.name, t.sample)
		}
	}
}

// LoadRuns reads back the runs of a recording, in the order they were
// recorded.
func LoadRuns(
	ctx context.Context,
	reader datarecording.DataReader,
) ([]RunEntry, error) {
	reader.MapTable(RunTable, RunEntry{})

	rows, err := reader.Query(ctx, RunTable,
		datarecording.QueryParams{OrderBy: "rowid ASC"})
	if err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}

	runs := make([]RunEntry, len(rows))
	for i, row := range rows {
		runs[i] = *row.(*RunEntry)
	}

	return runs, nil
}

// LoadReferences reads back the references of one recorded run, in access
// order.
func LoadReferences(
	ctx context.Context,
	reader datarecording.DataReader,
	runID string,
) ([]ReferenceEntry, error) {
	reader.MapTable(ReferenceTable, ReferenceEntry{})

	rows, err := reader.Query(ctx, ReferenceTable,
		datarecording.QueryParams{
			Where:   `"RunID" = ?`,
			Args:    []any{runID},
			OrderBy: `"Position" ASC`,
		})
	if err != nil {
		return nil, fmt.Errorf("reading references of run %s: %w", runID, err)
	}

	refs := make([]ReferenceEntry, len(rows))
	for i, row := range rows {
		refs[i] = *row.(*ReferenceEntry)
	}

	return refs, nil
}
