package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/strogmv/dtogen/compiler"
)

func TestFormatFailureSnapshot(t *testing.T) {
	err := fmt.Errorf("make validator: %w", compiler.WrapContractError(
		compiler.StageSource,
		compiler.ErrCodeSourceUnreadable,
		"ghost.ts",
		fmt.Errorf("%w %s", compiler.ErrUnreadableModel, "ghost.ts"),
	))
	got := formatFailure(err)

	goldenPath := filepath.Join("testdata", "cli_error_snapshot.txt")
	wantBytes, readErr := os.ReadFile(goldenPath)
	if readErr != nil {
		t.Fatalf("read golden: %v", readErr)
	}
	want := string(wantBytes)
	if got+"\n" != want {
		t.Fatalf("snapshot mismatch\nwant: %q\ngot:  %q", want, got+"\n")
	}
}
