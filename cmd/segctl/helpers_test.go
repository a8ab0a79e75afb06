package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/segheap/heap/alloc"
)

const shortTrace = `2000
3
8
1
a 0 100
a 1 200
a 2 40
r 0 300
f 1
r 2 8
f 0
f 2
`

// writeTrace writes text to a file in a temp dir and returns its path.
func writeTrace(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write trace: %v", err)
	}
	return path
}

// resetFlags restores every flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	chunkSize = alloc.DefaultChunkSize
	maxHeap = 0
	useMmap, pow2Classes, coalesceOnGrow = false, false, false
	checkEach, runStats = false, false
	dumpOps, dumpSave = -1, ""
	genSeed, genIDs, genMaxSize, genOut = 1, 100, 4096, ""
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	// drain concurrently so large dumps cannot fill the pipe
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return <-done, fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
