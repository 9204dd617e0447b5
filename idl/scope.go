package idl

// Identifier is the name of a declaration, member, or argument together with
// its fully qualified form encoding the scope chain, e.g.
// ::SomeInterface::someMember.
type Identifier struct {
	name  string
	qname string
}

// Name returns the short name.
func (id Identifier) Name() string {
	return id.name
}

// QName returns the fully qualified name.
func (id Identifier) QName() string {
	return id.qname
}

// globalID creates an identifier in the global scope.
func globalID(name string) Identifier {
	return Identifier{name: name, qname: "::" + name}
}

// childID creates an identifier scoped under parent.
func childID(parent Identifier, name string) Identifier {
	return Identifier{name: name, qname: parent.qname + "::" + name}
}

// scopeTable tracks the top-level declarations by name.
type scopeTable struct {
	names map[string]Decl
}

func newScopeTable() *scopeTable {
	return &scopeTable{names: make(map[string]Decl)}
}

// lookup finds the declaration for name, if any.
func (t *scopeTable) lookup(name string) (Decl, bool) {
	d, ok := t.names[name]
	return d, ok
}

// declare records the declaration for name, replacing nothing: callers check
// for a conflicting occupant with lookup first.
func (t *scopeTable) declare(name string, d Decl) {
	t.names[name] = d
}
