package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/heap/alloc"
	"github.com/joshuapare/segheap/heap/replay"
	"github.com/joshuapare/segheap/internal/trace"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	// Heap flags
	chunkSize      int
	maxHeap        int
	useMmap        bool
	pow2Classes    bool
	coalesceOnGrow bool
)

var rootCmd = &cobra.Command{
	Use:   "segctl",
	Short: "Replay and inspect segregated-fit heap traces",
	Long: `segctl drives the segheap allocator with allocation traces. It replays
traces, reports space utilization, validates every heap invariant after each
operation and dumps the resulting block layout.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	// Heap configuration
	rootCmd.PersistentFlags().IntVar(&chunkSize, "chunk", alloc.DefaultChunkSize, "Minimum heap extension in bytes")
	rootCmd.PersistentFlags().IntVar(&maxHeap, "max-heap", 0, "Heap reservation in bytes (0 for the 20 MiB default)")
	rootCmd.PersistentFlags().BoolVar(&useMmap, "mmap", false, "Back the heap with an anonymous mapping")
	rootCmd.PersistentFlags().BoolVar(&pow2Classes, "pow2-classes", false, "Use 2048 instead of 2058 as the 11th class boundary")
	rootCmd.PersistentFlags().BoolVar(&coalesceOnGrow, "coalesce-on-grow", false, "Merge grown blocks with a free predecessor")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// replayConfig builds the replay configuration from the heap flags.
func replayConfig(validate bool) replay.Config {
	opts := &alloc.Options{
		ChunkSize:      chunkSize,
		CoalesceOnGrow: coalesceOnGrow,
	}
	if pow2Classes {
		opts.Classes = &alloc.ConfigPow2
	}
	return replay.Config{
		Alloc:     opts,
		MaxHeap:   maxHeap,
		UseMmap:   useMmap,
		CheckEach: validate,
	}
}

// loadTrace parses a trace file and logs its header.
func loadTrace(path string) (*trace.Trace, error) {
	printVerbose("Loading trace: %s\n", path)
	t, err := trace.ParseFile(path)
	if err != nil {
		return nil, err
	}
	printVerbose("  %d ids, %d ops, suggested heap %d, weight %d\n", t.NumIDs, len(t.Ops), t.SuggestedHeap, t.Weight)
	return t, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
