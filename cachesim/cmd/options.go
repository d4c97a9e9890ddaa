package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/addressing"
	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/display"
)

// Environment variables that provide defaults for flags left unset.
const (
	EnvTableWidth        = "CACHESIM_TABLE_WIDTH"
	EnvRecord            = "CACHESIM_RECORD"
	EnvReplacementPolicy = "CACHESIM_REPLACEMENT_POLICY"
)

type options struct {
	cacheSize        int
	numBlocksPerSet  int
	numWordsPerBlock int
	numAddrBits      int
	wordAddrs        []addressing.WordAddress
	policy           cache.ReplacementPolicy
	tableWidth       int
	record           string
	verbose          bool
}

func addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.Int("cache-size", 0, "the size of the cache in words")
	flags.Int("num-blocks-per-set", 1, "the number of blocks per set")
	flags.Int("num-words-per-block", 1, "the number of words per block")
	flags.Int("num-addr-bits", 1,
		"the number of bits in each given word address")
	flags.StringSlice("word-addrs", nil,
		"the word addresses to read from the cache, separated by commas "+
			"or spaces")
	flags.String("replacement-policy", string(cache.LRU),
		"the cache replacement policy (LRU or MRU), env "+EnvReplacementPolicy)
	flags.Int("table-width", display.DefaultWidth,
		"the width of the printed tables, env "+EnvTableWidth)
	flags.String("record", "",
		"record the run into <path>.sqlite3, env "+EnvRecord)
	flags.String("env-file", ".env", "file to load environment defaults from")
	flags.BoolP("verbose", "v", false, "log the geometry and every access")

	_ = cmd.MarkFlagRequired("cache-size")
}

// loadOptions reads the flags. Positional arguments are the word addresses
// that follow the first value of --word-addrs.
func loadOptions(cmd *cobra.Command, args []string) (*options, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	err := loadEnvFile(envFile)
	if err != nil {
		return nil, err
	}

	opts := &options{}
	opts.cacheSize, _ = flags.GetInt("cache-size")
	opts.numBlocksPerSet, _ = flags.GetInt("num-blocks-per-set")
	opts.numWordsPerBlock, _ = flags.GetInt("num-words-per-block")
	opts.numAddrBits, _ = flags.GetInt("num-addr-bits")
	opts.verbose, _ = flags.GetBool("verbose")

	rawAddrs, _ := flags.GetStringSlice("word-addrs")
	if !flags.Changed("word-addrs") {
		return nil, errors.New(`required flag(s) "word-addrs" not set`)
	}

	opts.wordAddrs, err = parseWordAddrs(append(rawAddrs, args...))
	if err != nil {
		return nil, err
	}

	policy := stringOption(cmd, "replacement-policy", EnvReplacementPolicy)
	opts.policy, err = cache.ParseReplacementPolicy(policy)
	if err != nil {
		return nil, err
	}

	opts.tableWidth, err = intOption(cmd, "table-width", EnvTableWidth)
	if err != nil {
		return nil, err
	}

	if opts.tableWidth <= 0 {
		return nil, fmt.Errorf("table width must be positive, got %d",
			opts.tableWidth)
	}

	opts.record = stringOption(cmd, "record", EnvRecord)

	return opts, nil
}

// loadEnvFile adds the variables of the file to the environment. Variables
// that are already set win. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// stringOption returns the flag if it was given, the environment variable if
// it is set, and the flag default otherwise.
func stringOption(cmd *cobra.Command, name, env string) string {
	value, _ := cmd.Flags().GetString(name)
	if cmd.Flags().Changed(name) {
		return value
	}

	if fromEnv, ok := os.LookupEnv(env); ok {
		return fromEnv
	}

	return value
}

func intOption(cmd *cobra.Command, name, env string) (int, error) {
	value, _ := cmd.Flags().GetInt(name)
	if cmd.Flags().Changed(name) {
		return value, nil
	}

	fromEnv, ok := os.LookupEnv(env)
	if !ok {
		return value, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(fromEnv))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", env, err)
	}

	return n, nil
}

func parseWordAddrs(raw []string) ([]addressing.WordAddress, error) {
	addrs := make([]addressing.WordAddress, 0, len(raw))

	for _, s := range raw {
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing word address %q: %w", s, err)
		}

		addrs = append(addrs, addressing.WordAddress(n))
	}

	return addrs, nil
}
