package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sablec/mir"
	"sablec/summary"
)

// declRef builds a method reference declared by the given context.
func declRef(mangled string, ctxKind mir.ContextKind, ctxModule string) mir.DeclRef {
	return mir.DeclRef{
		MangledName: mangled,
		Kind:        mir.MethodNormal,
		Context:     mir.DeclContext{Kind: ctxKind, Name: "C", ModuleName: ctxModule},
	}
}

func TestBuildFunctionSummary_EdgeKinds(t *testing.T) {
	callee := mir.NewFunction("callee")

	f := mir.NewFunction("caller")
	b := f.NewBlock()
	b.Append(&mir.BuiltinInst{Op: "integer_literal"})
	b.Append(&mir.FunctionRefInst{Callee: callee})
	b.Append(&mir.WitnessMethodInst{Member: declRef("P.req", mir.ProtocolContext, "m")})
	b.Append(&mir.ClassMethodInst{Member: declRef("C.method", mir.ClassContext, "m")})

	fs := BuildFunctionSummary(f)

	assert.Equal(t, summary.GUIDFromName("caller"), fs.GUID)
	assert.Equal(t, "caller", fs.DebugName)
	assert.False(t, fs.Live)
	assert.False(t, fs.Preserved)

	require.Len(t, fs.Calls, 3)
	assert.Equal(t, summary.Call{
		Callee: summary.GUIDFromName("callee"), Kind: summary.Direct, DebugName: "callee",
	}, fs.Calls[0])
	assert.Equal(t, summary.Call{
		Callee: summary.GUIDFromName("P.req"), Kind: summary.Witness, DebugName: "P.req",
	}, fs.Calls[1])
	assert.Equal(t, summary.Call{
		Callee: summary.GUIDFromName("C.method"), Kind: summary.VTable, DebugName: "C.method",
	}, fs.Calls[2])
}

func TestBuildFunctionSummary_Preservation(t *testing.T) {
	plain := mir.NewFunction("plain")
	assert.False(t, BuildFunctionSummary(plain).Preserved)

	cAbi := mir.NewFunction("c_abi")
	cAbi.Convention = mir.ConvC
	assert.True(t, BuildFunctionSummary(cAbi).Preserved)

	cRef := mir.NewFunction("c_ref")
	cRef.HasCReferences = true
	assert.True(t, BuildFunctionSummary(cRef).Preserved)
}

func TestBuildFunctionSummary_KeyPathInstruction(t *testing.T) {
	getter := mir.NewFunction("kp.getter")

	f := mir.NewFunction("user")
	f.NewBlock().Append(&mir.KeyPathInst{
		Pattern: &mir.KeyPathPattern{
			Components: []mir.KeyPathComponent{{
				Functions: []*mir.Function{getter},
				Methods: []mir.DeclRef{
					declRef("C.prop", mir.ClassContext, "m"),
					declRef("P.prop", mir.ProtocolContext, "m"),
				},
			}},
		},
	})

	fs := BuildFunctionSummary(f)

	require.Len(t, fs.Calls, 3)
	assert.Equal(t, summary.Direct, fs.Calls[0].Kind)
	assert.Equal(t, summary.GUIDFromName("kp.getter"), fs.Calls[0].Callee)
	assert.Equal(t, summary.VTable, fs.Calls[1].Kind)
	assert.Equal(t, summary.Witness, fs.Calls[2].Kind)
}

func TestBuildModuleSummaryIndex_Functions(t *testing.T) {
	m := mir.NewModule("m")
	m.AddFunction(mir.NewFunction("one"))
	m.AddFunction(mir.NewFunction("two"))

	index := BuildModuleSummaryIndex(m)

	assert.Equal(t, "m", index.ModuleName)

	index.Functions(func(fs *summary.FunctionSummary) {
		assert.False(t, fs.Live)
	})

	_, ok := index.GetFunctionSummary(summary.GUIDFromName("one"))
	assert.True(t, ok)
	_, ok = index.GetFunctionSummary(summary.GUIDFromName("two"))
	assert.True(t, ok)

	// The synthetic preservation summaries are always present and preserved.
	for _, guid := range []summary.GUID{
		summary.ExternalWitnessesGUID,
		summary.VTableStructuralGUID,
		summary.KeyPathGUID,
	} {
		fs, ok := index.GetFunctionSummary(guid)
		require.True(t, ok)
		assert.True(t, fs.Preserved)
	}
}

func TestIndexWitnessTables(t *testing.T) {
	witness := mir.NewFunction("T.req.impl")
	foreignWitness := mir.NewFunction("U.req.impl")

	m := mir.NewModule("m")
	m.AddFunction(witness)
	m.AddFunction(foreignWitness)

	m.WitnessTables = []*mir.WitnessTable{
		{
			// A conformance wholly local to the module.
			ProtocolName:     "P",
			ProtocolModule:   "m",
			ConformingModule: "m",
			Entries: []mir.MethodWitness{
				{Requirement: declRef("P.req", mir.ProtocolContext, "m"), Witness: witness},
				{Requirement: declRef("P.other", mir.ProtocolContext, "m"), Witness: nil},
			},
		},
		{
			// A conformance to a protocol defined elsewhere.
			ProtocolName:     "Q",
			ProtocolModule:   "other",
			ConformingModule: "m",
			Entries: []mir.MethodWitness{
				{Requirement: declRef("Q.req", mir.ProtocolContext, "other"), Witness: foreignWitness},
			},
		},
	}

	index := BuildModuleSummaryIndex(m)

	impls := index.GetImplementations(summary.VirtualMethodSlot{
		Kind:          summary.WitnessSlot,
		VirtualFuncID: summary.GUIDFromName("P.req"),
	})
	assert.Equal(t, []summary.GUID{summary.GUIDFromName("T.req.impl")}, impls)

	// The nil witness contributes nothing.
	assert.Empty(t, index.GetImplementations(summary.VirtualMethodSlot{
		Kind:          summary.WitnessSlot,
		VirtualFuncID: summary.GUIDFromName("P.other"),
	}))

	// Only the witness of the external protocol is pinned.
	fs, ok := index.GetFunctionSummary(summary.ExternalWitnessesGUID)
	require.True(t, ok)
	require.Len(t, fs.Calls, 1)
	assert.Equal(t, summary.GUIDFromName("U.req.impl"), fs.Calls[0].Callee)
	assert.Equal(t, summary.Direct, fs.Calls[0].Kind)
}

func TestIndexVTables(t *testing.T) {
	method := mir.NewFunction("C.method.impl")
	dealloc := mir.NewFunction("C.deinit")
	override := mir.NewFunction("C.describe.impl")

	m := mir.NewModule("m")
	for _, f := range []*mir.Function{method, dealloc, override} {
		m.AddFunction(f)
	}

	m.VTables = []*mir.VTable{{
		ClassName: "C",
		Entries: []mir.VTableEntry{
			{
				Method: declRef("C.method", mir.ClassContext, "m"),
				Impl:   method,
				Kind:   mir.EntryNormal,
			},
			{
				Method: mir.DeclRef{
					MangledName: "C.deinit",
					Kind:        mir.MethodDeallocator,
					Context:     mir.DeclContext{Kind: mir.ClassContext, Name: "C", ModuleName: "m"},
				},
				Impl: dealloc,
				Kind: mir.EntryNormal,
			},
			{
				Method: declRef("Base.describe", mir.ClassContext, "base"),
				Impl:   override,
				Kind:   mir.EntryOverride,
			},
		},
	}}

	index := BuildModuleSummaryIndex(m)

	// Every entry lands in the vtable slot space.
	for _, mangled := range []string{"C.method", "C.deinit", "Base.describe"} {
		impls := index.GetImplementations(summary.VirtualMethodSlot{
			Kind:          summary.VTableSlot,
			VirtualFuncID: summary.GUIDFromName(mangled),
		})
		assert.Len(t, impls, 1, "slot %s", mangled)
	}

	// The deallocator and the external override are pinned.
	fs, ok := index.GetFunctionSummary(summary.VTableStructuralGUID)
	require.True(t, ok)
	require.Len(t, fs.Calls, 2)
	assert.Equal(t, summary.GUIDFromName("C.deinit"), fs.Calls[0].Callee)
	assert.Equal(t, summary.GUIDFromName("C.describe.impl"), fs.Calls[1].Callee)
}

func TestIndexKeyPathProperties(t *testing.T) {
	getter := mir.NewFunction("prop.getter")

	m := mir.NewModule("m")
	m.AddFunction(getter)
	m.Properties = []*mir.Property{
		{Name: "prop", Component: &mir.KeyPathComponent{
			Functions: []*mir.Function{getter},
			Methods:   []mir.DeclRef{declRef("P.prop", mir.ProtocolContext, "m")},
		}},
		{Name: "opaque", Component: nil},
	}

	index := BuildModuleSummaryIndex(m)

	// The referenced accessor is summarized as a preserved root of its own.
	fs, ok := index.GetFunctionSummary(summary.GUIDFromName("prop.getter"))
	require.True(t, ok)
	assert.True(t, fs.Preserved)

	// The referenced abstract method becomes an indirect edge of the key-path
	// synthetic summary.
	kp, ok := index.GetFunctionSummary(summary.KeyPathGUID)
	require.True(t, ok)
	require.Len(t, kp.Calls, 1)
	assert.Equal(t, summary.Witness, kp.Calls[0].Kind)
	assert.Equal(t, summary.GUIDFromName("P.prop"), kp.Calls[0].Callee)
}
