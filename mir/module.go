package mir

// Module represents a single Sable module lowered into MIR.  It is the unit
// of separate compilation: the summary indexer walks it to produce a module
// summary, and the elimination pass prunes it against a combined index.
type Module struct {
	// Name is the name of the module.
	Name string

	// Funcs is the list of functions defined in the module, in definition
	// order.
	Funcs []*Function

	// VTables is the list of class virtual-method tables of the module.
	VTables []*VTable

	// WitnessTables is the list of protocol witness tables of the module.
	WitnessTables []*WitnessTable

	// DefaultWitnessTables is the list of default witness tables of the
	// module: per-protocol default implementations for resilient protocols.
	DefaultWitnessTables []*DefaultWitnessTable

	// Properties is the list of key-path property descriptors of the module.
	Properties []*Property

	// funcsByName indexes Funcs by symbol name.
	funcsByName map[string]*Function
}

// NewModule creates a new empty module with the given name.
func NewModule(name string) *Module {
	return &Module{
		Name:        name,
		funcsByName: make(map[string]*Function),
	}
}

// AddFunction adds a function definition to the module.
func (m *Module) AddFunction(f *Function) {
	m.Funcs = append(m.Funcs, f)
	m.funcsByName[f.Name] = f
}

// LookupFunction returns the function with the given symbol name if the
// module defines one.
func (m *Module) LookupFunction(name string) (*Function, bool) {
	f, ok := m.funcsByName[name]
	return f, ok
}

// EraseFunction drops all references from the function's body and removes the
// function from the module.  Erasing a function that is not part of the
// module is a no-op.
func (m *Module) EraseFunction(f *Function) {
	if _, ok := m.funcsByName[f.Name]; !ok {
		return
	}

	f.DropAllReferences()
	delete(m.funcsByName, f.Name)

	for i, mf := range m.Funcs {
		if mf == f {
			m.Funcs = append(m.Funcs[:i], m.Funcs[i+1:]...)
			break
		}
	}
}
