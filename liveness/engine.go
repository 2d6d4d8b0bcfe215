// Package liveness computes the transitive closure of reachable functions
// over a combined module summary index: every summary reachable from a
// preserved root through the call-graph-with-devirtualization relation is
// marked live.
package liveness

import (
	"sablec/report"
	"sablec/summary"
)

// work is one pending propagation step.
type work struct {
	target summary.GUID
	trace  *Trace
}

// Mark sets the live flag on exactly the summaries reachable from the
// preserved roots.  Any previous live flags are reset first; marking twice
// yields the same live set.
func Mark(index *summary.ModuleSummaryIndex) {
	mark(index, nil)
}

// MarkWithTrace marks liveness like Mark while recording, for every live
// function, a back-pointer chain to the preserved root that reached it.  The
// trace is purely informational: it never affects the live set and is stored
// out-of-band of the index.
func MarkWithTrace(index *summary.ModuleSummaryIndex) *TraceTable {
	table := newTraceTable()
	mark(index, table)
	return table
}

func mark(index *summary.ModuleSummaryIndex, table *TraceTable) {
	var worklist []work

	index.Functions(func(fs *summary.FunctionSummary) {
		fs.Live = false

		if fs.Preserved {
			worklist = append(worklist, work{
				target: fs.GUID,
				trace:  newTrace(nil, fs.GUID, ReasonPreserved),
			})
		}
	})

	liveCount := 0
	for len(worklist) > 0 {
		item := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		fs, ok := index.GetFunctionSummary(item.target)
		if !ok {
			// A dangling reference to a module outside the analyzed set.
			continue
		}

		if fs.Live {
			continue
		}
		fs.Live = true
		liveCount++

		if table != nil {
			item.trace.symbol = fs.DebugName
			table.record(item.trace)
		}

		for _, call := range fs.Calls {
			switch call.Kind {
			case summary.Direct:
				worklist = append(worklist, work{
					target: call.Callee,
					trace:  newTrace(item.trace, call.Callee, ReasonStaticRef),
				})

			case summary.Witness, summary.VTable:
				for _, impl := range index.GetImplementations(call.Slot()) {
					worklist = append(worklist, work{
						target: impl,
						trace:  newTrace(item.trace, impl, ReasonIndirectRef),
					})
				}
			}
		}
	}

	report.LogVerbose("liveness: %d of %d functions live", liveCount, index.NumFunctions())
}
