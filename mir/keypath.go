package mir

// KeyPathPattern describes the components of a key path literal.
type KeyPathPattern struct {
	Components []KeyPathComponent
}

// KeyPathComponent is one component of a key-path pattern.  A component can
// reference concrete accessor functions (getters, setters, equality and hash
// witnesses of subscript indices) and abstract methods resolved dynamically.
type KeyPathComponent struct {
	// Concrete functions referenced by the component.
	Functions []*Function

	// Abstract methods referenced by the component.
	Methods []DeclRef
}

// VisitReferencedFunctionsAndMethods invokes visitFunc for every concrete
// function and visitMethod for every abstract method the component
// references.
func (kpc KeyPathComponent) VisitReferencedFunctionsAndMethods(
	visitFunc func(*Function),
	visitMethod func(DeclRef),
) {
	for _, f := range kpc.Functions {
		visitFunc(f)
	}

	for _, m := range kpc.Methods {
		visitMethod(m)
	}
}

// -----------------------------------------------------------------------------

// Property is a key-path property descriptor: the external representation of
// a stored property that key paths can reference across module boundaries.
type Property struct {
	// The mangled name of the described property.
	Name string

	// The resolvable component of the descriptor, if any.
	Component *KeyPathComponent
}
