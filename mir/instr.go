package mir

// Instruction is a MIR instruction.  The summary indexer only distinguishes
// the instruction kinds that can reference other functions; everything else
// in a real function body is represented by BuiltinInst.
type Instruction interface {
	instr()
}

// FunctionRefInst is a static reference to a concrete function.
type FunctionRefInst struct {
	// The referenced function.  Never nil.
	Callee *Function
}

// WitnessMethodInst looks up a protocol requirement through a witness table.
type WitnessMethodInst struct {
	// The referenced protocol requirement.
	Member DeclRef
}

// ClassMethodInst looks up a class method through a vtable.
type ClassMethodInst struct {
	// The referenced class method.
	Member DeclRef
}

// KeyPathInst instantiates a key path from a pattern.  The pattern's
// components can reference accessor functions and abstract methods.
type KeyPathInst struct {
	Pattern *KeyPathPattern
}

// BuiltinInst stands in for every instruction that cannot reference another
// function.  The Op is carried for MIR dumps only.
type BuiltinInst struct {
	Op string
}

func (*FunctionRefInst) instr()   {}
func (*WitnessMethodInst) instr() {}
func (*ClassMethodInst) instr()   {}
func (*KeyPathInst) instr()       {}
func (*BuiltinInst) instr()       {}
