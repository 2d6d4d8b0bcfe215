package mir

// VTableEntryKind is the kind of a vtable entry.
type VTableEntryKind int

// Enumeration of vtable entry kinds.
const (
	// EntryNormal is a method first declared by the vtable's class.
	EntryNormal VTableEntryKind = iota

	// EntryInherited is a method inherited from a superclass unchanged.
	EntryInherited

	// EntryOverride is a method overriding a superclass declaration.
	EntryOverride
)

// VTableEntry binds one class-method declaration to its implementation.
type VTableEntry struct {
	// The declaration the entry dispatches.
	Method DeclRef

	// The implementing function.  Never nil.
	Impl *Function

	// The kind of the entry.
	Kind VTableEntryKind
}

// VTable is the virtual-method table of a class.
type VTable struct {
	// The name of the class the table belongs to.
	ClassName string

	// The entries of the table in declaration order.
	Entries []VTableEntry
}

// RemoveEntriesIf removes every entry for which pred returns true.
func (vt *VTable) RemoveEntriesIf(pred func(VTableEntry) bool) {
	kept := vt.Entries[:0]
	for _, entry := range vt.Entries {
		if !pred(entry) {
			kept = append(kept, entry)
		}
	}

	vt.Entries = kept
}

// -----------------------------------------------------------------------------

// MethodWitness binds one protocol requirement to its witness implementation
// within a conformance.
type MethodWitness struct {
	// The protocol requirement.
	Requirement DeclRef

	// The function witnessing the requirement.  May be nil when the
	// conformance leaves the requirement to a default implementation.
	Witness *Function
}

// WitnessTable is the witness table of one conformance of a type to a
// protocol.
type WitnessTable struct {
	// The name of the protocol.
	ProtocolName string

	// The name of the module defining the protocol.
	ProtocolModule string

	// The name of the module defining the conforming declaration context.
	ConformingModule string

	// The method witnesses of the table.  Non-method entries of a real
	// witness table carry no function references and are not modeled.
	Entries []MethodWitness
}

// ClearMethodsIf clears the witness of every entry for which pred returns
// true.  The requirement entries themselves stay in place: the table layout
// is part of the conformance ABI.
func (wt *WitnessTable) ClearMethodsIf(pred func(MethodWitness) bool) {
	for i, entry := range wt.Entries {
		if entry.Witness != nil && pred(entry) {
			wt.Entries[i].Witness = nil
		}
	}
}

// -----------------------------------------------------------------------------

// DefaultWitnessTable carries per-protocol default implementations used by
// conformances that omit a requirement.
type DefaultWitnessTable struct {
	// The name of the protocol.
	ProtocolName string

	// The default implementations in requirement order.  A nil slot means the
	// requirement has no default.
	Slots []*Function
}

// ClearSlotsIf clears every slot for which pred returns true.
func (dwt *DefaultWitnessTable) ClearSlotsIf(pred func(*Function) bool) {
	for i, slot := range dwt.Slots {
		if slot != nil && pred(slot) {
			dwt.Slots[i] = nil
		}
	}
}
