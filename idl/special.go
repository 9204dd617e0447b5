package idl

// specialRoles lists the special-operation keywords in their fixed mangling
// order. Synthesized names concatenate the roles present in this order, no
// matter how they were written in source.
var specialRoles = []struct {
	word string
	has  func(*Method) bool
}{
	{"getter", (*Method).IsGetter},
	{"setter", (*Method).IsSetter},
	{"creator", (*Method).IsCreator},
	{"deleter", (*Method).IsDeleter},
}

// resolveSpecial enforces the indexed/named legality rules for a special
// operation and assigns the synthesized identifier to nameless ones:
// __ + indexed|named + the role words present.
func resolveSpecial(parent Identifier, m *Method) error {
	if !m.isSpecial() {
		return nil
	}

	sig := m.signatures[0]
	if len(sig.args) == 0 {
		return idlErrorf(m.pos, "special operation on %s requires at least one argument", parent.Name())
	}

	// An unsigned long index parameter selects the indexed form; anything
	// else, typically DOMString, selects the named form.
	form := "named"
	if sig.args[0].typ.Name() == "UnsignedLong" {
		form = "indexed"
	}

	// There are no indexed deleters.
	if form == "indexed" && m.deleter {
		return idlErrorf(m.pos, "indexed deleters are not legal on %s", parent.Name())
	}

	if m.id.name != "" {
		// A named special operation keeps its own identifier.
		return nil
	}

	name := "__" + form
	for _, role := range specialRoles {
		if role.has(m) {
			name += role.word
		}
	}
	m.id = childID(parent, name)
	return nil
}
