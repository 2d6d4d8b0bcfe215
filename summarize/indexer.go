// Package summarize builds a module summary index from a MIR module: one
// summary per function with its outgoing call-graph edges, plus the
// virtual-method slot maps contributed by the module's dispatch tables.
package summarize

import (
	"sablec/mir"
	"sablec/report"
	"sablec/summary"
)

// Debug names of the synthetic preservation summaries.
const (
	externalWitnessesName = "__external_witnesses_preserved"
	vtableStructuralName  = "__vtable_destructors_and_externals_preserved"
	keyPathName           = "__keypath_preserved"
)

// BuildModuleSummaryIndex walks the given module and produces its summary
// index.  Every live flag in the result is false: liveness becomes meaningful
// only after propagation over a combined index.
func BuildModuleSummaryIndex(m *mir.Module) *summary.ModuleSummaryIndex {
	index := summary.NewIndex(m.Name)

	indexKeyPathProperties(index, m)

	for _, f := range m.Funcs {
		index.AddFunctionSummary(BuildFunctionSummary(f))
	}

	indexWitnessTables(index, m)
	indexVTables(index, m)

	return index
}

// BuildFunctionSummary indexes a single function: its identity, its
// preservation state, and one call-graph edge per function-referencing
// instruction.
func BuildFunctionSummary(f *mir.Function) *summary.FunctionSummary {
	fs := summary.NewFunctionSummary(summary.GUIDFromName(f.Name))
	fs.DebugName = f.Name
	fs.Preserved = f.HasForeignEntry()

	for _, b := range f.Blocks {
		for _, instr := range b.Instrs {
			indexInstruction(fs, instr)
		}
	}

	return fs
}

// indexInstruction emits at most one edge for the given instruction.
func indexInstruction(fs *summary.FunctionSummary, instr mir.Instruction) {
	switch instr := instr.(type) {
	case *mir.FunctionRefInst:
		addDirectCall(fs, instr.Callee.Name)

	case *mir.WitnessMethodInst:
		addIndirectCall(fs, instr.Member, summary.Witness)

	case *mir.ClassMethodInst:
		addIndirectCall(fs, instr.Member, summary.VTable)

	case *mir.KeyPathInst:
		for _, component := range instr.Pattern.Components {
			component.VisitReferencedFunctionsAndMethods(
				func(f *mir.Function) {
					addDirectCall(fs, f.Name)
				},
				func(method mir.DeclRef) {
					addIndirectCall(fs, method, methodCallKind(method))
				},
			)
		}
	}
}

// addDirectCall adds a Direct edge to the named function.
func addDirectCall(fs *summary.FunctionSummary, calleeName string) {
	fs.AddCall(summary.Call{
		Callee:    summary.GUIDFromName(calleeName),
		Kind:      summary.Direct,
		DebugName: calleeName,
	})
}

// addIndirectCall adds a Witness or VTable edge to the given requirement.
func addIndirectCall(fs *summary.FunctionSummary, member mir.DeclRef, kind summary.CallKind) {
	mangled := member.Mangle()
	fs.AddCall(summary.Call{
		Callee:    summary.GUIDFromName(mangled),
		Kind:      kind,
		DebugName: mangled,
	})
}

// methodCallKind maps a method's declaring context to the dispatch kind a
// key-path component resolves it with.
func methodCallKind(method mir.DeclRef) summary.CallKind {
	switch method.Context.Kind {
	case mir.ClassContext:
		return summary.VTable
	case mir.ProtocolContext:
		return summary.Witness
	default:
		report.ReportICE("key path keyed by a non-class, non-protocol method: %s", method.Mangle())
		return summary.Direct
	}
}

// indexWitnessTables records every method witness under its requirement's
// slot.  Witnesses of protocols or conformances defined outside the module
// are additionally pinned: foreign code can reach them through witnesses the
// analysis never sees.
func indexWitnessTables(index *summary.ModuleSummaryIndex, m *mir.Module) {
	fs := summary.NewFunctionSummary(summary.ExternalWitnessesGUID)
	fs.DebugName = externalWitnessesName
	fs.Preserved = true

	for _, wt := range m.WitnessTables {
		isExternal := wt.ProtocolModule != m.Name || wt.ConformingModule != m.Name

		for _, entry := range wt.Entries {
			if entry.Witness == nil {
				continue
			}

			slot := summary.VirtualMethodSlot{
				Kind:          summary.WitnessSlot,
				VirtualFuncID: summary.GUIDFromName(entry.Requirement.Mangle()),
			}
			index.AddImplementation(slot, summary.GUIDFromName(entry.Witness.Name))

			if isExternal {
				addDirectCall(fs, entry.Witness.Name)
			}
		}
	}

	report.LogVerbose("summary: preserved %d external witnesses", len(fs.Calls))
	index.AddFunctionSummary(fs)
}

// indexVTables records every vtable entry under its method's slot.
// Deallocators and ivar destroyers are pinned because the runtime release
// path calls them; overrides of externally declared methods are pinned
// because external callers dispatch to them through tables the analysis
// never sees.
func indexVTables(index *summary.ModuleSummaryIndex, m *mir.Module) {
	fs := summary.NewFunctionSummary(summary.VTableStructuralGUID)
	fs.DebugName = vtableStructuralName
	fs.Preserved = true

	for _, vt := range m.VTables {
		for _, entry := range vt.Entries {
			if entry.Method.IsStructural() {
				addDirectCall(fs, entry.Impl.Name)
			}

			isExternalMethod := entry.Method.Context.ModuleName != m.Name
			if entry.Kind == mir.EntryOverride && isExternalMethod {
				addDirectCall(fs, entry.Impl.Name)
			}

			slot := summary.VirtualMethodSlot{
				Kind:          summary.VTableSlot,
				VirtualFuncID: summary.GUIDFromName(entry.Method.Mangle()),
			}
			index.AddImplementation(slot, summary.GUIDFromName(entry.Impl.Name))
		}
	}

	report.LogVerbose("summary: preserved %d vtable destructors and externals", len(fs.Calls))
	index.AddFunctionSummary(fs)
}

// indexKeyPathProperties pins everything reachable from key-path property
// descriptors: referenced accessor functions are summarized as preserved
// roots of their own, and referenced abstract methods become indirect edges
// of the key-path synthetic summary.
func indexKeyPathProperties(index *summary.ModuleSummaryIndex, m *mir.Module) {
	fs := summary.NewFunctionSummary(summary.KeyPathGUID)
	fs.DebugName = keyPathName
	fs.Preserved = true

	for _, p := range m.Properties {
		if p.Component == nil {
			continue
		}

		p.Component.VisitReferencedFunctionsAndMethods(
			func(f *mir.Function) {
				accessor := BuildFunctionSummary(f)
				accessor.Preserved = true
				index.AddFunctionSummary(accessor)
			},
			func(method mir.DeclRef) {
				addIndirectCall(fs, method, methodCallKind(method))
			},
		)
	}

	index.AddFunctionSummary(fs)
}
