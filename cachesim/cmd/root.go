// Package cmd provides the command-line interface of the cache simulator.
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/display"
	"github.com/sarchlab/cachesim/simulation"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cachesim",
		Short: "Simulate a set-associative cache on a list of word addresses.",
		Long: `cachesim reads a list of word addresses into an empty cache ` +
			`and reports, for every address, its binary form, its tag, ` +
			`index, and offset, and whether it hit. The final contents of ` +
			`the cache are shown afterwards. Word addresses can follow ` +
			`--word-addrs separated by commas or spaces.`,
		Example: "  cachesim --cache-size 8 --num-blocks-per-set 4 " +
			"--num-words-per-block 2 --replacement-policy mru " +
			"--word-addrs 3 180 43 2 191 88 190 14 181 44 186 253",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSimulation,
	}

	addFlags(cmd)
	cmd.AddCommand(newRunsCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		atexit.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd, args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	sim, err := simulation.MakeBuilder().
		WithCacheSize(opts.cacheSize).
		WithNumBlocksPerSet(opts.numBlocksPerSet).
		WithNumWordsPerBlock(opts.numWordsPerBlock).
		WithNumAddrBits(opts.numAddrBits).
		WithReplacementPolicy(opts.policy).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}

	result, err := sim.Run(opts.wordAddrs)
	if err != nil {
		return err
	}

	err = display.WriteResult(cmd.OutOrStdout(), result, opts.tableWidth)
	if err != nil {
		return err
	}

	if opts.record != "" {
		return record(logger, opts.record, result)
	}

	return nil
}

func record(logger *slog.Logger, path string, result *simulation.Result) error {
	recorder, err := datarecording.New(path)
	if err != nil {
		return fmt.Errorf("opening recording %q: %w", path, err)
	}

	runID := simulation.Record(recorder, result)

	err = recorder.Close()
	if err != nil {
		return fmt.Errorf("closing recording %q: %w", path, err)
	}

	logger.Info("run recorded", "run_id", runID, "path", path)

	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
