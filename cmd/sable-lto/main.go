// sable-lto is the cross-module liveness driver of the Sable toolchain: it
// merges the module summaries emitted by each per-module compile, computes
// the set of transitively reachable functions from the preserved roots, and
// writes back a combined, live-annotated summary index for the elimination
// pass of each module's final compile.
package main

import (
	"errors"
	"fmt"
	"os"

	"sablec/liveness"
	"sablec/report"
	"sablec/serialize"
)

func main() {
	os.Exit(run())
}

// run merges, marks, and writes the combined index.  It returns the process
// exit code; malformed binary input aborts instead.
func run() int {
	c := newConfigFromArgs()

	combined, err := serialize.MergeIndexFiles(c.inputPaths, c.moduleName)
	if err != nil {
		if errors.Is(err, serialize.ErrIO) {
			report.ReportStdError("loading module summaries", err)
			return 1
		}

		// A structurally malformed summary is not recoverable by the caller.
		report.ReportFatal("invalid module summary: %s", err.Error())
	}

	if c.traceSymbol != "" {
		traces := liveness.MarkWithTrace(combined)

		for _, trace := range traces.TracesForSymbol(c.traceSymbol) {
			fmt.Print(trace.Format())
		}
	} else {
		liveness.Mark(combined)
	}

	opts := serialize.Options{EmbedDebugNames: c.embedNames}
	if err := serialize.WriteIndexFile(c.outputPath, combined, opts); err != nil {
		report.ReportStdError("writing combined summary", err)
		return 1
	}

	report.LogVerbose("wrote combined summary to %s", c.outputPath)
	return 0
}
