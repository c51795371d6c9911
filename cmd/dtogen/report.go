package main

import (
	"fmt"
	"io"

	"github.com/strogmv/dtogen/compiler/emitter"
)

// printResults reports file actions the way the Adonis generators do.
func printResults(w io.Writer, results []emitter.Result, dryRun bool) {
	for _, r := range results {
		fmt.Fprintf(w, "DONE: %s %s\n", r.Action, r.Path)
	}
	if dryRun {
		fmt.Fprintln(w, dryRunSummary(results))
	}
}

func dryRunSummary(results []emitter.Result) string {
	counts := map[emitter.Action]int{}
	for _, r := range results {
		counts[r.Action]++
	}
	return fmt.Sprintf("dry run: %d create, %d update, %d skip, %d unchanged; nothing written",
		counts[emitter.ActionCreate],
		counts[emitter.ActionUpdate],
		counts[emitter.ActionSkip],
		counts[emitter.ActionUnchanged],
	)
}
