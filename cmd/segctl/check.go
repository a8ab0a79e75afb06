package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/segheap/heap/replay"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <trace>",
		Short: "Replay a trace, validating the heap after every operation",
		Long: `The check command replays a trace and runs the full heap checker after
each operation: block alignment, header/footer agreement, sentinels,
coalescing, bucket membership, list links and free block counts.

Example:
  segctl check short1.rep
  segctl check short1.rep --pow2-classes --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
}

func runCheck(args []string) error {
	path := args[0]
	t, err := loadTrace(path)
	if err != nil {
		return err
	}

	res, runErr := replay.Run(t, replayConfig(true))

	if jsonOut {
		result := map[string]interface{}{
			"trace": path,
			"ops":   len(t.Ops),
			"valid": runErr == nil,
		}
		if runErr != nil {
			result["error"] = runErr.Error()
		} else {
			result["heap_size"] = res.HeapSize
			result["utilization"] = res.Utilization
		}
		if err := printJSON(result); err != nil {
			return err
		}
		return runErr
	}

	printInfo("\nChecking %s (%d ops)...\n\n", path, len(t.Ops))
	if runErr != nil {
		printInfo("  ✗ %v\n", runErr)
		printInfo("\nResult: ✗ INVALID\n")
		return runErr
	}
	printInfo("  ✓ All invariants held after every operation\n")
	printInfo("  ✓ Final heap %d bytes, utilization %.1f%%\n", res.HeapSize, 100*res.Utilization)
	printInfo("\nResult: ✓ VALID\n")
	return nil
}
