package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/heap/alloc"
	"github.com/joshuapare/segheap/heap/printer"
	"github.com/joshuapare/segheap/heap/verify"
	"github.com/joshuapare/segheap/internal/mmfile"
)

func init() {
	rootCmd.AddCommand(newInspectCmd())
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <image>",
		Short: "Check and print a heap image saved with dump --save",
		Long: `The inspect command maps a saved heap image read-only, runs the heap
checker over it and prints its blocks and buckets. Pass --pow2-classes if
the image was built with the power-of-two class table.

Example:
  segctl dump short1.rep --save short1.img
  segctl inspect short1.img
  segctl inspect short1.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
}

func runInspect(args []string) error {
	path := args[0]
	printVerbose("Mapping image: %s\n", path)

	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return err
	}
	defer cleanup()

	var classes *alloc.SizeClassConfig
	if pow2Classes {
		classes = &alloc.ConfigPow2
	}
	img, err := alloc.OpenImage(data, classes)
	if err != nil {
		return err
	}

	if jsonOut {
		return printer.WriteJSON(os.Stdout, img)
	}
	if quiet {
		if errs := verify.Check(img); len(errs) > 0 {
			return fmt.Errorf("heap image has %d problem(s): %w", len(errs), errs[0])
		}
		return nil
	}
	if n := verify.Report(os.Stdout, img, true); n > 0 {
		return fmt.Errorf("heap image has %d problem(s)", n)
	}
	printInfo("\nResult: ✓ VALID\n")
	return nil
}
