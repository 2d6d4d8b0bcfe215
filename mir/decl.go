package mir

// ContextKind is the kind of declaration context a method belongs to.
type ContextKind int

// Enumeration of declaration context kinds.
const (
	ClassContext ContextKind = iota
	ProtocolContext
)

// DeclContext identifies the class or protocol declaring a method, together
// with the module that defines the declaration.
type DeclContext struct {
	// The kind of the declaring context.
	Kind ContextKind

	// The name of the declaring class or protocol.
	Name string

	// The name of the module defining the context.
	ModuleName string
}

// -----------------------------------------------------------------------------

// MethodKind is the kind of a method declaration reference.
type MethodKind int

// Enumeration of method kinds.
const (
	// MethodNormal is an ordinary method.
	MethodNormal MethodKind = iota

	// MethodDeallocator is a class deallocator.  Deallocators are reachable
	// from the runtime release path rather than from any call site.
	MethodDeallocator

	// MethodIVarDestroyer is a class instance-variable destroyer, reachable
	// the same way deallocators are.
	MethodIVarDestroyer
)

// DeclRef is a reference to a method declaration: the abstract requirement a
// dynamic dispatch resolves, not any particular implementation of it.
type DeclRef struct {
	// The canonical mangled name of the declaration.
	MangledName string

	// The kind of the referenced method.
	Kind MethodKind

	// The declaring class or protocol.
	Context DeclContext
}

// Mangle returns the canonical mangled name of the declaration.  The mangled
// name is the identity the summary machinery hashes.
func (dr DeclRef) Mangle() string {
	return dr.MangledName
}

// IsStructural returns whether the referenced method is reachable from the
// runtime rather than from call sites.
func (dr DeclRef) IsStructural() bool {
	return dr.Kind == MethodDeallocator || dr.Kind == MethodIVarDestroyer
}
