package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/display"
	"github.com/sarchlab/cachesim/simulation"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs <file.sqlite3>",
		Short: "List the runs stored in a recording.",
		Long: "`runs <file.sqlite3>` lists the runs recorded with --record. " +
			"With --run, it shows the references of that run instead.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          listRuns,
	}

	cmd.Flags().String("run", "", "show the references of the run with this ID")
	cmd.Flags().Int("table-width", display.DefaultWidth,
		"the width of the printed tables")

	return cmd
}

func listRuns(cmd *cobra.Command, args []string) error {
	filename := args[0]
	runID, _ := cmd.Flags().GetString("run")
	width, _ := cmd.Flags().GetInt("table-width")

	if width <= 0 {
		return fmt.Errorf("table width must be positive, got %d", width)
	}

	_, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("opening recording: %w", err)
	}

	reader, err := datarecording.NewReader(filename)
	if err != nil {
		return fmt.Errorf("opening recording %q: %w", filename, err)
	}
	defer reader.Close()

	ctx := cmd.Context()

	var table *display.Table
	if runID == "" {
		runs, err := simulation.LoadRuns(ctx, reader)
		if err != nil {
			return err
		}

		table = display.RunTable(runs, width)
	} else {
		refs, err := simulation.LoadReferences(ctx, reader, runID)
		if err != nil {
			return err
		}

		if len(refs) == 0 {
			return fmt.Errorf("no run %q in %s", runID, filename)
		}

		table = display.RecordedReferenceTable(refs, width)
	}

	_, err = table.WriteTo(cmd.OutOrStdout())

	return err
}
