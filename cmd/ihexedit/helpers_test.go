package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const sampleHex = ":10000000112233445566778899AABBCCDDEEFF00F8\n:00000001FF\n"

// writeHexFile writes content to a fresh file in a temporary directory
func writeHexFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.hex")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// resetFlags restores every flag variable to its default
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	logJSON = false
	writeOutput = ""
	formatOutput = ""
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain the pipe concurrently so large outputs do not block
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}
