package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/heap/printer"
	"github.com/joshuapare/segheap/heap/replay"
	"github.com/joshuapare/segheap/heap/verify"
	"github.com/joshuapare/segheap/internal/writer"
)

var (
	dumpOps  int
	dumpSave string
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpOps, "ops", -1, "Replay only the first N operations (-1 for all)")
	cmd.Flags().StringVar(&dumpSave, "save", "", "Also write the raw heap image to this file")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <trace>",
		Short: "Replay a trace and print every block and bucket",
		Long: `The dump command replays a trace (or its first N operations) and prints
the resulting heap: one line per block with its header and footer tags,
the free list links of free blocks, and the contents of every bucket.

Example:
  segctl dump short1.rep
  segctl dump short1.rep --ops 10
  segctl dump short1.rep --json
  segctl dump short1.rep --save short1.img`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

func runDump(args []string) error {
	t, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	if dumpOps >= 0 {
		if dumpOps > len(t.Ops) {
			return fmt.Errorf("--ops %d exceeds the trace's %d operations", dumpOps, len(t.Ops))
		}
		t.Ops = t.Ops[:dumpOps]
	}

	r, err := replay.New(replayConfig(false))
	if err != nil {
		return err
	}
	defer r.Close()
	if _, err := r.Run(t); err != nil {
		return err
	}
	a := r.Allocator()

	if dumpSave != "" {
		w := &writer.FileWriter{Path: dumpSave}
		if err := w.Write(a.Heap()); err != nil {
			return err
		}
		printVerbose("Saved %d byte heap image to %s\n", a.HeapSize(), dumpSave)
	}
	if jsonOut {
		return printer.WriteJSON(os.Stdout, a)
	}
	if quiet {
		return nil
	}
	if n := verify.Report(os.Stdout, a, true); n > 0 {
		return fmt.Errorf("heap has %d problem(s)", n)
	}
	return nil
}
