// Package serialize reads and writes module summary indices in their binary
// container format, and merges several summary files into one combined index.
package serialize

import "sablec/bitstream"

// moduleSummarySignature is the 4-byte magic that opens every summary file.
var moduleSummarySignature = [4]byte{'M', 'O', 'D', 'S'}

// Block IDs.
const (
	// blockInfoBlockID is the preamble block naming blocks and records for
	// diagnostic tools.  Its content never affects decoding.
	blockInfoBlockID = 0

	// recordBlockID is the single top-level block holding the summary
	// records.
	recordBlockID = 8
)

// Record IDs of the record block.  The grammar is:
//
//	ModuleSummary  ::= MODULE_METADATA  FunctionGroup*  SlotGroup*
//	FunctionGroup  ::= FUNC_METADATA    CALL_GRAPH_EDGE*
//	SlotGroup      ::= METHOD_METADATA  METHOD_IMPL*
const (
	moduleMetadataID = bitstream.FirstRecordID + iota
	funcMetadataID
	callGraphEdgeID
	methodMetadataID
	methodImplID
)

// recordAbbrevWidth is wide enough for every record ID of the record block.
const recordAbbrevWidth = 4

// Record IDs of the block-info block.
const (
	setBIDRecordID = bitstream.FirstRecordID + iota
	blockNameRecordID
	setRecordNameRecordID
)

// blockInfoAbbrevWidth is the abbreviation width of the block-info block.
const blockInfoAbbrevWidth = 3

// recordNames maps record IDs to the names embedded in the block-info
// preamble.
var recordNames = map[uint64]string{
	moduleMetadataID: "MODULE_METADATA",
	funcMetadataID:   "FUNC_METADATA",
	callGraphEdgeID:  "CALL_GRAPH_EDGE",
	methodMetadataID: "METHOD_METADATA",
	methodImplID:     "METHOD_IMPL",
}
