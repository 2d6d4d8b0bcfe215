package serialize

import (
	"fmt"
	"io"
	"os"

	"sablec/bitstream"
	"sablec/summary"
)

// Options configures summary emission.
type Options struct {
	// EmbedDebugNames embeds function and callee names in the output for
	// debugging purposes.  Presence or absence of names never changes the
	// meaning of the file.
	EmbedDebugNames bool
}

// EncodeIndex serializes the given index into a byte buffer.
func EncodeIndex(index *summary.ModuleSummaryIndex, opts Options) []byte {
	w := bitstream.NewWriter()

	writeSignature(w)
	writeBlockInfo(w)
	writeRecordBlock(w, index, opts)

	return w.Bytes()
}

// WriteIndex serializes the given index to the given stream.
func WriteIndex(out io.Writer, index *summary.ModuleSummaryIndex, opts Options) error {
	if _, err := out.Write(EncodeIndex(index, opts)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil
}

// WriteIndexFile serializes the given index to a file at the given path.  On
// write failure, the partially-written file is removed.
func WriteIndexFile(path string, index *summary.ModuleSummaryIndex, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := WriteIndex(f, index, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil
}

// writeSignature emits the 4-byte magic.
func writeSignature(w *bitstream.Writer) {
	for _, b := range moduleSummarySignature {
		w.Emit(uint64(b), 8)
	}
}

// writeBlockInfo emits the diagnostic naming preamble.
func writeBlockInfo(w *bitstream.Writer) {
	w.EnterBlock(blockInfoBlockID, blockInfoAbbrevWidth)

	w.EmitAbbrevID(setBIDRecordID)
	w.EmitVBR(recordBlockID, 8)

	w.EmitAbbrevID(blockNameRecordID)
	w.EmitBlob([]byte("RECORD_BLOCK"))

	for id := uint64(moduleMetadataID); id <= methodImplID; id++ {
		w.EmitAbbrevID(setRecordNameRecordID)
		w.EmitVBR(id, 8)
		w.EmitBlob([]byte(recordNames[id]))
	}

	w.EndBlock()
}

// writeRecordBlock emits the summary records in the canonical order:
// module metadata, then function groups ascending by GUID, then slot groups
// in slot order.
func writeRecordBlock(w *bitstream.Writer, index *summary.ModuleSummaryIndex, opts Options) {
	w.EnterBlock(recordBlockID, recordAbbrevWidth)

	w.EmitAbbrevID(moduleMetadataID)
	w.EmitBlob([]byte(index.ModuleName))

	index.Functions(func(fs *summary.FunctionSummary) {
		writeFunctionGroup(w, fs, opts)
	})

	index.VirtualMethods(func(slot summary.VirtualMethodSlot, impls []summary.GUID) {
		w.EmitAbbrevID(methodMetadataID)
		w.Emit(uint64(slot.Kind), 1)
		w.EmitVBR(uint64(slot.VirtualFuncID), 16)

		for _, impl := range impls {
			w.EmitAbbrevID(methodImplID)
			w.EmitVBR(uint64(impl), 16)
		}
	})

	w.EndBlock()
}

// writeFunctionGroup emits one FUNC_METADATA record followed by the
// function's call-graph edges.
func writeFunctionGroup(w *bitstream.Writer, fs *summary.FunctionSummary, opts Options) {
	w.EmitAbbrevID(funcMetadataID)
	w.EmitVBR(uint64(fs.GUID), 16)
	w.Emit(boolBit(fs.Live), 1)
	w.Emit(boolBit(fs.Preserved), 1)
	w.EmitBlob([]byte(debugName(fs.DebugName, opts)))

	for _, call := range fs.Calls {
		w.EmitAbbrevID(callGraphEdgeID)
		w.Emit(uint64(call.Kind), 2)
		w.EmitVBR(uint64(call.Callee), 16)
		w.EmitBlob([]byte(debugName(call.DebugName, opts)))
	}
}

// debugName gates name emission on the embed-names option.
func debugName(name string, opts Options) string {
	if !opts.EmbedDebugNames {
		return ""
	}

	return name
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}
