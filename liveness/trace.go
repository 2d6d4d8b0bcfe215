package liveness

import (
	"fmt"
	"strings"

	"sablec/summary"
)

// Reason says why a function was pushed onto the liveness worklist.
type Reason int

// Enumeration of marking reasons.
const (
	// ReasonPreserved marks a liveness root.
	ReasonPreserved Reason = iota

	// ReasonStaticRef marks the target of a direct call edge.
	ReasonStaticRef

	// ReasonIndirectRef marks an implementation reached through a
	// virtual-method slot.
	ReasonIndirectRef
)

// Trace is one link of a liveness back-pointer chain: the function it marks,
// the function that marked it, and the reason.
type Trace struct {
	// The trace of the function whose edge marked this one.  Nil for roots.
	Parent *Trace

	// The marked function.
	GUID summary.GUID

	// Why the function was marked.
	Reason Reason

	// The debug name of the marked function, when the index carries one.
	symbol string
}

func newTrace(parent *Trace, guid summary.GUID, reason Reason) *Trace {
	return &Trace{Parent: parent, GUID: guid, Reason: reason}
}

// Format renders the chain from the marked function back to its root, one
// referencing function per line.
func (t *Trace) Format() string {
	var sb strings.Builder

	if t.symbol != "" {
		sb.WriteString(t.symbol)
	} else {
		fmt.Fprintf(&sb, "**missing name** (%d)", uint64(t.GUID))
	}
	sb.WriteString(" is referenced by:\n")

	for target := t.Parent; target != nil; target = target.Parent {
		sb.WriteString(" - ")
		if target.symbol != "" {
			sb.WriteString(target.symbol)
		} else {
			sb.WriteString("**missing name**")
		}
		fmt.Fprintf(&sb, " (%d)\n", uint64(target.GUID))
	}

	return sb.String()
}

// -----------------------------------------------------------------------------

// TraceTable holds the first-marking trace of every live function, keyed by
// GUID.
type TraceTable struct {
	byGUID map[summary.GUID]*Trace
}

func newTraceTable() *TraceTable {
	return &TraceTable{byGUID: make(map[summary.GUID]*Trace)}
}

// record stores the trace that first marked its function live.
func (tt *TraceTable) record(t *Trace) {
	tt.byGUID[t.GUID] = t
}

// TraceFor returns the marking trace of the given GUID, if that function was
// marked live.
func (tt *TraceTable) TraceFor(guid summary.GUID) (*Trace, bool) {
	t, ok := tt.byGUID[guid]
	return t, ok
}

// TracesForSymbol returns the marking traces of every live function whose
// debug name equals the given symbol.  Several functions can share a debug
// name only if their mangled names collide across the synthetic range, so in
// practice the result has at most one element.
func (tt *TraceTable) TracesForSymbol(symbol string) []*Trace {
	var traces []*Trace
	for _, t := range tt.byGUID {
		if t.symbol == symbol {
			traces = append(traces, t)
		}
	}

	return traces
}
