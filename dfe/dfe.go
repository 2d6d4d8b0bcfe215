// Package dfe erases dead functions and dead dispatch-table entries from a
// MIR module, consulting a combined summary index whose live flags have been
// computed.
package dfe

import (
	"sort"

	"sablec/mir"
	"sablec/report"
	"sablec/summary"
)

// EliminateDeadFunctions prunes the given module against the given index:
// every function the index knows and does not mark live is erased, every
// vtable entry whose implementation is known-dead is removed, and every
// known-dead method witness or default-witness slot is cleared in place.
// Functions absent from the index are left alone; their defining module was
// not part of the analysis.  It returns the number of functions erased.
func EliminateDeadFunctions(m *mir.Module, index *summary.ModuleSummaryIndex) int {
	eliminateDeadTableEntries(m, index)

	// Erase bottom-up by GUID so dumps of the surviving module diff stably.
	var dead []*mir.Function
	for _, f := range m.Funcs {
		if isDead(index, f) {
			dead = append(dead, f)
		}
	}

	sort.Slice(dead, func(i, j int) bool {
		return summary.GUIDFromName(dead[i].Name) > summary.GUIDFromName(dead[j].Name)
	})

	for _, f := range dead {
		report.LogVerbose("dfe: erase dead function %s", f.Name)
		m.EraseFunction(f)
	}

	return len(dead)
}

// isDead reports whether the index knows the function and marks it dead.
func isDead(index *summary.ModuleSummaryIndex, f *mir.Function) bool {
	fs, ok := index.GetFunctionSummary(summary.GUIDFromName(f.Name))
	return ok && !fs.Live
}

// eliminateDeadTableEntries strips known-dead implementations out of the
// module's vtables, witness tables, and default witness tables.
func eliminateDeadTableEntries(m *mir.Module, index *summary.ModuleSummaryIndex) {
	for _, vt := range m.VTables {
		vt.RemoveEntriesIf(func(entry mir.VTableEntry) bool {
			return isDead(index, entry.Impl)
		})
	}

	for _, wt := range m.WitnessTables {
		wt.ClearMethodsIf(func(mw mir.MethodWitness) bool {
			return isDead(index, mw.Witness)
		})
	}

	for _, dwt := range m.DefaultWitnessTables {
		dwt.ClearSlotsIf(func(f *mir.Function) bool {
			return isDead(index, f)
		})
	}
}
