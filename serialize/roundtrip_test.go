package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sablec/summary"
)

// buildTestIndex builds an index with two functions of three ordered edges
// each and one slot per dispatch space.
func buildTestIndex() *summary.ModuleSummaryIndex {
	idx := summary.NewIndex("m")

	alpha := summary.NewFunctionSummary(summary.GUIDFromName("alpha"))
	alpha.DebugName = "alpha"
	alpha.Preserved = true
	alpha.AddCall(summary.Call{Callee: summary.GUIDFromName("beta"), Kind: summary.Direct, DebugName: "beta"})
	alpha.AddCall(summary.Call{Callee: 301, Kind: summary.Witness, DebugName: "req.w"})
	alpha.AddCall(summary.Call{Callee: 302, Kind: summary.VTable, DebugName: "req.v"})
	idx.AddFunctionSummary(alpha)

	beta := summary.NewFunctionSummary(summary.GUIDFromName("beta"))
	beta.DebugName = "beta"
	beta.AddCall(summary.Call{Callee: 302, Kind: summary.VTable, DebugName: "req.v"})
	beta.AddCall(summary.Call{Callee: 301, Kind: summary.Witness, DebugName: "req.w"})
	beta.AddCall(summary.Call{Callee: summary.GUIDFromName("alpha"), Kind: summary.Direct, DebugName: "alpha"})
	idx.AddFunctionSummary(beta)

	idx.AddImplementation(summary.VirtualMethodSlot{Kind: summary.WitnessSlot, VirtualFuncID: 301}, 900)
	idx.AddImplementation(summary.VirtualMethodSlot{Kind: summary.WitnessSlot, VirtualFuncID: 301}, 800)
	idx.AddImplementation(summary.VirtualMethodSlot{Kind: summary.VTableSlot, VirtualFuncID: 302}, 700)

	return idx
}

// snapshot flattens an index for comparison.
type snapshotFunc struct {
	guid      summary.GUID
	live      bool
	preserved bool
	name      string
	calls     []summary.Call
}

type snapshotSlot struct {
	slot  summary.VirtualMethodSlot
	impls []summary.GUID
}

func snapshot(idx *summary.ModuleSummaryIndex) ([]snapshotFunc, []snapshotSlot) {
	var funcs []snapshotFunc
	idx.Functions(func(fs *summary.FunctionSummary) {
		funcs = append(funcs, snapshotFunc{
			guid:      fs.GUID,
			live:      fs.Live,
			preserved: fs.Preserved,
			name:      fs.DebugName,
			calls:     fs.Calls,
		})
	})

	var slots []snapshotSlot
	idx.VirtualMethods(func(slot summary.VirtualMethodSlot, impls []summary.GUID) {
		slots = append(slots, snapshotSlot{slot: slot, impls: impls})
	})

	return funcs, slots
}

func TestRoundTrip_WithNames(t *testing.T) {
	idx := buildTestIndex()

	data := EncodeIndex(idx, Options{EmbedDebugNames: true})

	got := summary.NewIndex("")
	require.NoError(t, ReadIndex(data, got))

	assert.Equal(t, "m", got.ModuleName)

	wantFuncs, wantSlots := snapshot(idx)
	gotFuncs, gotSlots := snapshot(got)

	// Per-function edge order and per-slot impl order are preserved exactly.
	assert.Equal(t, wantFuncs, gotFuncs)
	assert.Equal(t, wantSlots, gotSlots)
}

func TestRoundTrip_WithoutNames(t *testing.T) {
	idx := buildTestIndex()

	data := EncodeIndex(idx, Options{})

	got := summary.NewIndex("")
	require.NoError(t, ReadIndex(data, got))

	// Absence of names never changes the meaning of the file.
	got.Functions(func(fs *summary.FunctionSummary) {
		assert.Empty(t, fs.DebugName)
		for _, call := range fs.Calls {
			assert.Empty(t, call.DebugName)
		}
	})

	want, ok := idx.GetFunctionSummary(summary.GUIDFromName("alpha"))
	require.True(t, ok)
	gotAlpha, ok := got.GetFunctionSummary(summary.GUIDFromName("alpha"))
	require.True(t, ok)

	assert.Equal(t, want.Preserved, gotAlpha.Preserved)
	assert.Len(t, gotAlpha.Calls, len(want.Calls))
	for i, call := range want.Calls {
		assert.Equal(t, call.Callee, gotAlpha.Calls[i].Callee)
		assert.Equal(t, call.Kind, gotAlpha.Calls[i].Kind)
	}
}

func TestRoundTrip_LiveFlags(t *testing.T) {
	idx := buildTestIndex()
	fs, ok := idx.GetFunctionSummary(summary.GUIDFromName("alpha"))
	require.True(t, ok)
	fs.Live = true

	got := summary.NewIndex("")
	require.NoError(t, ReadIndex(EncodeIndex(idx, Options{}), got))

	gotAlpha, ok := got.GetFunctionSummary(summary.GUIDFromName("alpha"))
	require.True(t, ok)
	gotBeta, ok := got.GetFunctionSummary(summary.GUIDFromName("beta"))
	require.True(t, ok)

	assert.True(t, gotAlpha.Live)
	assert.False(t, gotBeta.Live)
}

func TestRoundTrip_EmptyIndex(t *testing.T) {
	idx := summary.NewIndex("empty")

	got := summary.NewIndex("")
	require.NoError(t, ReadIndex(EncodeIndex(idx, Options{}), got))

	assert.Equal(t, "empty", got.ModuleName)
	assert.Equal(t, 0, got.NumFunctions())
}

func TestWriteIndexFile_RoundTrip(t *testing.T) {
	idx := buildTestIndex()
	path := t.TempDir() + "/m.sblsum"

	require.NoError(t, WriteIndexFile(path, idx, Options{EmbedDebugNames: true}))

	got := summary.NewIndex("")
	require.NoError(t, ReadIndexFile(path, got))
	assert.Equal(t, idx.NumFunctions(), got.NumFunctions())
}

func TestReadIndexFile_Missing(t *testing.T) {
	err := ReadIndexFile(t.TempDir()+"/nope.sblsum", summary.NewIndex(""))
	assert.ErrorIs(t, err, ErrIO)
}
