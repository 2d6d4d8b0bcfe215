package serialize

import (
	"errors"
	"fmt"
	"os"

	"sablec/bitstream"
	"sablec/summary"
)

// ReadIndex decodes a serialized summary from the given buffer into the given
// index.  Reading into a non-empty index merges: function summaries with a
// GUID already present have their flags ORed in and their edges appended, and
// slot implementation lists accumulate in read order.
func ReadIndex(data []byte, index *summary.ModuleSummaryIndex) error {
	d := &deserializer{r: bitstream.NewReader(data), index: index}
	return d.readModuleSummary()
}

// ReadIndexFile decodes the summary file at the given path into the given
// index.
func ReadIndexFile(path string, index *summary.ModuleSummaryIndex) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return ReadIndex(data, index)
}

// deserializer decodes one summary stream into an accumulating index.
type deserializer struct {
	r     *bitstream.Reader
	index *summary.ModuleSummaryIndex
}

// streamErr maps low-level bitstream errors onto the codec's error kinds.
func streamErr(err error) error {
	if errors.Is(err, bitstream.ErrTruncated) || errors.Is(err, bitstream.ErrMalformed) {
		return fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}

	return err
}

func (d *deserializer) readModuleSummary() error {
	if err := d.readSignature(); err != nil {
		return err
	}

	sawRecordBlock := false
	for !d.r.AtEnd() {
		id, err := d.r.ReadAbbrevID()
		if err != nil {
			return streamErr(err)
		}

		if id != bitstream.EnterBlockID {
			return fmt.Errorf("%w: top-level abbreviation %d", ErrUnknownRecord, id)
		}

		blockID, words, err := d.r.EnterBlock()
		if err != nil {
			return streamErr(err)
		}

		switch blockID {
		case blockInfoBlockID:
			// The naming preamble is free-form and skipped wholesale.
			if err := d.r.SkipBlock(words); err != nil {
				return streamErr(err)
			}
		case recordBlockID:
			if err := d.readRecordBlock(); err != nil {
				return err
			}
			sawRecordBlock = true
		default:
			return fmt.Errorf("%w: block %d", ErrUnknownRecord, blockID)
		}
	}

	if !sawRecordBlock {
		return ErrMissingMetadata
	}

	return nil
}

func (d *deserializer) readSignature() error {
	for _, want := range moduleSummarySignature {
		b, err := d.r.Read(8)
		if err != nil {
			return ErrMalformedSignature
		}
		if byte(b) != want {
			return ErrMalformedSignature
		}
	}

	return nil
}

func (d *deserializer) readRecordBlock() error {
	if err := d.readModuleMetadata(); err != nil {
		return err
	}

	// The function group and slot group a record belongs to are implicit:
	// each FUNC_METADATA and METHOD_METADATA opens a new one.
	var fn *summary.FunctionSummary
	var slot *summary.VirtualMethodSlot

	for {
		id, err := d.r.ReadAbbrevID()
		if err != nil {
			return streamErr(err)
		}

		switch id {
		case bitstream.EndBlockID:
			if err := d.r.EndBlock(); err != nil {
				return streamErr(err)
			}
			return nil

		case funcMetadataID:
			fn, err = d.readFuncMetadata()
			if err != nil {
				return err
			}

		case callGraphEdgeID:
			if fn == nil {
				return fmt.Errorf("%w: call graph edge before function metadata", ErrOrphanRecord)
			}
			if err := d.readCallGraphEdge(fn); err != nil {
				return err
			}

		case methodMetadataID:
			slot, err = d.readMethodMetadata()
			if err != nil {
				return err
			}

		case methodImplID:
			if slot == nil {
				return fmt.Errorf("%w: method impl before method metadata", ErrOrphanRecord)
			}

			impl, err := d.r.ReadVBR(16)
			if err != nil {
				return streamErr(err)
			}
			d.index.AddImplementation(*slot, summary.GUID(impl))

		default:
			return fmt.Errorf("%w: record %d", ErrUnknownRecord, id)
		}
	}
}

func (d *deserializer) readModuleMetadata() error {
	id, err := d.r.ReadAbbrevID()
	if err != nil {
		return streamErr(err)
	}
	if id != moduleMetadataID {
		return ErrMissingMetadata
	}

	name, err := d.r.ReadBlob()
	if err != nil {
		return streamErr(err)
	}

	d.index.ModuleName = string(name)
	return nil
}

// readFuncMetadata reads one FUNC_METADATA record.  When the GUID is already
// present in the index (cross-module merge), the existing summary is updated
// in place: live and preserved are ORed in monotonically and the existing
// name is kept unless it was empty.
func (d *deserializer) readFuncMetadata() (*summary.FunctionSummary, error) {
	guid, err := d.r.ReadVBR(16)
	if err != nil {
		return nil, streamErr(err)
	}

	live, err := d.r.Read(1)
	if err != nil {
		return nil, streamErr(err)
	}

	preserved, err := d.r.Read(1)
	if err != nil {
		return nil, streamErr(err)
	}

	name, err := d.r.ReadBlob()
	if err != nil {
		return nil, streamErr(err)
	}

	fn, ok := d.index.GetFunctionSummary(summary.GUID(guid))
	if !ok {
		fn = summary.NewFunctionSummary(summary.GUID(guid))
		d.index.AddFunctionSummary(fn)
	}

	fn.Live = fn.Live || live != 0
	fn.Preserved = fn.Preserved || preserved != 0
	if fn.DebugName == "" {
		fn.DebugName = string(name)
	}

	return fn, nil
}

func (d *deserializer) readCallGraphEdge(fn *summary.FunctionSummary) error {
	kind, err := d.r.Read(2)
	if err != nil {
		return streamErr(err)
	}
	if !summary.ValidCallKind(int(kind)) {
		return fmt.Errorf("%w: call kind %d", ErrBadEnum, kind)
	}

	callee, err := d.r.ReadVBR(16)
	if err != nil {
		return streamErr(err)
	}

	name, err := d.r.ReadBlob()
	if err != nil {
		return streamErr(err)
	}

	fn.AddCall(summary.Call{
		Callee:    summary.GUID(callee),
		Kind:      summary.CallKind(kind),
		DebugName: string(name),
	})
	return nil
}

func (d *deserializer) readMethodMetadata() (*summary.VirtualMethodSlot, error) {
	kind, err := d.r.Read(1)
	if err != nil {
		return nil, streamErr(err)
	}
	if !summary.ValidSlotKind(int(kind)) {
		return nil, fmt.Errorf("%w: slot kind %d", ErrBadEnum, kind)
	}

	vfunc, err := d.r.ReadVBR(16)
	if err != nil {
		return nil, streamErr(err)
	}

	return &summary.VirtualMethodSlot{
		Kind:          summary.SlotKind(kind),
		VirtualFuncID: summary.GUID(vfunc),
	}, nil
}
