package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/heap/replay"
)

var (
	checkEach bool
	runStats  bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&checkEach, "check", false, "Validate the heap after every operation")
	cmd.Flags().BoolVar(&runStats, "stats", false, "Print allocator counters for each trace")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <trace>...",
		Short: "Replay traces and report space utilization",
		Long: `The run command replays each trace on a fresh heap, verifying payload
contents, alignment and overlap along the way, and reports utilization:
the peak sum of live request sizes divided by the final heap size.

Example:
  segctl run traces/*.rep
  segctl run short1.rep --check
  segctl run short1.rep --chunk 4096 --coalesce-on-grow --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
}

func runRun(args []string) error {
	cfg := replayConfig(checkEach)

	var results []*replay.Result
	for _, path := range args {
		t, err := loadTrace(path)
		if err != nil {
			return err
		}

		r, err := replay.New(cfg)
		if err != nil {
			return err
		}
		res, err := r.Run(t)
		if err != nil {
			r.Close()
			return err
		}
		if runStats && !jsonOut && !quiet {
			r.Allocator().PrintStats(os.Stdout)
		}
		r.Close()

		printVerbose("  %s: peak %d bytes, heap %d bytes\n", res.Name, res.PeakPayload, res.HeapSize)
		results = append(results, res)
	}

	if jsonOut {
		return printJSON(results)
	}
	if !quiet {
		replay.PrintResults(os.Stdout, results)
	}
	return nil
}
