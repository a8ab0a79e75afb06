package main

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/internal/trace"
	"github.com/joshuapare/segheap/internal/writer"
)

var (
	genSeed    int64
	genIDs     int
	genMaxSize int
	genOut     string
)

func init() {
	cmd := newGenCmd()
	cmd.Flags().Int64Var(&genSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&genIDs, "ids", 100, "Number of block ids")
	cmd.Flags().IntVar(&genMaxSize, "max-size", 4096, "Largest request size")
	cmd.Flags().StringVarP(&genOut, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(cmd)
}

func newGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "Generate a random well-formed trace",
		Long: `The gen command writes a random trace in which every id is allocated
once, reallocated any number of times and freed before the end.

Example:
  segctl gen --ids 500 --seed 42 -o random.rep`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen()
		},
	}
}

func runGen() error {
	t := trace.Generate(trace.GenOptions{
		Seed:    genSeed,
		NumIDs:  genIDs,
		MaxSize: genMaxSize,
		Weight:  1,
	})

	if genOut == "" {
		return trace.Write(os.Stdout, t)
	}
	var buf bytes.Buffer
	if err := trace.Write(&buf, t); err != nil {
		return err
	}
	w := &writer.FileWriter{Path: genOut}
	if err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	printVerbose("Wrote %d ops to %s\n", len(t.Ops), genOut)
	return nil
}
