package idl

// finish runs the whole-fragment validation pass: partial and includes
// merging, reference and inheritance resolution, special-operation naming,
// overload merging, and the member-level legality checks that cannot be
// decided while a single production is being parsed.
func (b *fragmentBuilder) finish() ([]Decl, error) {
	if err := b.mergePartials(); err != nil {
		return nil, err
	}
	if err := b.applyIncludes(); err != nil {
		return nil, err
	}
	if err := b.resolveRefs(); err != nil {
		return nil, err
	}
	if err := b.checkTypedefCycles(); err != nil {
		return nil, err
	}
	if err := b.resolveInheritance(); err != nil {
		return nil, err
	}

	for _, d := range b.decls {
		switch n := d.(type) {
		case *Interface:
			if err := finishContainer(n.id, &n.members); err != nil {
				return nil, err
			}
			if n.ctor != nil {
				for _, m := range n.members {
					if m.Name() == n.ctor.Name() {
						return nil, idlErrorf(memberPos(m), "conflicting declarations of %s", n.ctor.QName())
					}
				}
				if err := checkOverloads(n.ctor); err != nil {
					return nil, err
				}
			}
		case *Mixin:
			if err := finishContainer(n.id, &n.members); err != nil {
				return nil, err
			}
		case *Namespace:
			if err := finishContainer(n.id, &n.members); err != nil {
				return nil, err
			}
		}
	}

	if err := b.checkTypes(); err != nil {
		return nil, err
	}
	return b.decls, nil
}

// mergePartials appends the members of every partial declaration onto its
// primary, in parse order.
func (b *fragmentBuilder) mergePartials() error {
	for _, p := range b.partials {
		d, ok := b.scope.lookup(p.name)
		if !ok {
			return idlErrorf(p.pos, "partial declaration of unknown %s %s", p.kind, p.name)
		}
		switch n := d.(type) {
		case *Interface:
			if p.kind != "interface" {
				return partialMismatch(p, d)
			}
			n.members = append(n.members, p.members...)
		case *Mixin:
			if p.kind != "mixin" {
				return partialMismatch(p, d)
			}
			n.members = append(n.members, p.members...)
		case *Namespace:
			if p.kind != "namespace" {
				return partialMismatch(p, d)
			}
			n.members = append(n.members, p.members...)
		case *Dictionary:
			if p.kind != "dictionary" {
				return partialMismatch(p, d)
			}
			n.members = append(n.members, p.dict...)
		default:
			return partialMismatch(p, d)
		}
	}
	b.partials = nil
	return nil
}

func partialMismatch(p *partialRec, d Decl) error {
	return idlErrorf(p.pos, "partial %s %s does not match the declaration of %s", p.kind, p.name, d.QName())
}

// applyIncludes splices the members of each included mixin into its target
// interface, re-scoped under the interface.
func (b *fragmentBuilder) applyIncludes() error {
	for _, inc := range b.includes {
		td, ok := b.scope.lookup(inc.target)
		if !ok {
			return idlErrorf(inc.pos, "unknown interface %s in includes statement", inc.target)
		}
		iface, ok := td.(*Interface)
		if !ok {
			return idlErrorf(inc.pos, "%s in includes statement is not an interface", inc.target)
		}
		sd, ok := b.scope.lookup(inc.source)
		if !ok {
			return idlErrorf(inc.pos, "unknown mixin %s in includes statement", inc.source)
		}
		mixin, ok := sd.(*Mixin)
		if !ok {
			return idlErrorf(inc.pos, "%s in includes statement is not a mixin", inc.source)
		}
		for _, m := range mixin.members {
			iface.members = append(iface.members, rescopeMember(iface.id, m))
		}
	}
	b.includes = nil
	return nil
}

// rescopeMember returns a copy of the member with its identifier, and for
// methods every signature argument, qualified under the new parent.
func rescopeMember(parent Identifier, m Member) Member {
	switch n := m.(type) {
	case *Attribute:
		c := *n
		c.id = childID(parent, n.id.name)
		return &c
	case *Const:
		c := *n
		c.id = childID(parent, n.id.name)
		return &c
	case *Method:
		c := *n
		c.id = childID(parent, n.id.name)
		c.signatures = make([]*Signature, len(n.signatures))
		for i, s := range n.signatures {
			cs := *s
			cs.args = make([]*Argument, len(s.args))
			for k, a := range s.args {
				ca := *a
				ca.id = childID(c.id, a.id.name)
				cs.args[k] = &ca
			}
			c.signatures[i] = &cs
		}
		return &c
	}
	return m
}

// resolveRefs binds every type reference recorded during lowering to its
// declaration.
func (b *fragmentBuilder) resolveRefs() error {
	for _, ref := range b.refs {
		if ref.target != nil {
			continue
		}
		d, ok := b.scope.lookup(ref.name)
		if !ok {
			return idlErrorf(ref.pos, "unknown identifier %s", ref.name)
		}
		ref.target = d
	}
	return nil
}

// checkTypedefCycles rejects typedefs that can reach themselves through
// alias links, including ones hidden inside unions, sequences, arrays,
// promises, records, or nullable wrappers. Such a cycle would make every
// structural query on the type recurse without bound, so it must be caught
// before the type walk runs.
func (b *fragmentBuilder) checkTypedefCycles() error {
	for _, d := range b.decls {
		td, ok := d.(*Typedef)
		if !ok {
			continue
		}
		if typedefReaches(td.typ, td, map[*Typedef]bool{td: true}) {
			return idlErrorf(td.pos, "typedef %s is part of an alias cycle", td.Name())
		}
	}
	return nil
}

// typedefReaches reports whether target is reachable from t by following
// resolved references and descending into type wrappers.
func typedefReaches(t Type, target *Typedef, seen map[*Typedef]bool) bool {
	switch n := t.(type) {
	case *refType:
		next, ok := n.target.(*Typedef)
		if !ok {
			return false
		}
		if next == target {
			return true
		}
		if seen[next] {
			return false
		}
		seen[next] = true
		return typedefReaches(next.typ, target, seen)
	case *nullableType:
		return typedefReaches(n.Type, target, seen)
	case *sequenceType:
		return typedefReaches(n.elem, target, seen)
	case *arrayType:
		return typedefReaches(n.elem, target, seen)
	case *frozenArrayType:
		return typedefReaches(n.elem, target, seen)
	case *promiseType:
		return typedefReaches(n.inner, target, seen)
	case *recordType:
		return typedefReaches(n.key, target, seen) || typedefReaches(n.val, target, seen)
	case *unionType:
		for _, m := range n.members {
			if typedefReaches(m, target, seen) {
				return true
			}
		}
	}
	return false
}

// resolveInheritance binds parent names and rejects inheritance cycles.
func (b *fragmentBuilder) resolveInheritance() error {
	for _, d := range b.decls {
		switch n := d.(type) {
		case *Interface:
			if n.parentName == "" {
				continue
			}
			pd, ok := b.scope.lookup(n.parentName)
			if !ok {
				return idlErrorf(n.parentPos, "unknown interface %s inherited by %s", n.parentName, n.Name())
			}
			parent, ok := pd.(*Interface)
			if !ok {
				return idlErrorf(n.parentPos, "%s cannot inherit from %s, which is not an interface", n.Name(), n.parentName)
			}
			n.parent = parent
		case *Dictionary:
			if n.parentName == "" {
				continue
			}
			pd, ok := b.scope.lookup(n.parentName)
			if !ok {
				return idlErrorf(n.parentPos, "unknown dictionary %s inherited by %s", n.parentName, n.Name())
			}
			parent, ok := pd.(*Dictionary)
			if !ok {
				return idlErrorf(n.parentPos, "%s cannot inherit from %s, which is not a dictionary", n.Name(), n.parentName)
			}
			n.parent = parent
		}
	}

	for _, d := range b.decls {
		switch n := d.(type) {
		case *Interface:
			seen := map[*Interface]bool{n: true}
			for p := n.parent; p != nil; p = p.parent {
				if seen[p] {
					return idlErrorf(n.pos, "inheritance cycle through %s", n.Name())
				}
				seen[p] = true
			}
		case *Dictionary:
			seen := map[*Dictionary]bool{n: true}
			for p := n.parent; p != nil; p = p.parent {
				if seen[p] {
					return idlErrorf(n.pos, "inheritance cycle through %s", n.Name())
				}
				seen[p] = true
			}
		}
	}
	return nil
}

// finishContainer runs the member-level pass for one interface, mixin, or
// namespace: special-operation naming, overload merging, whole-list
// collision detection, and per-member legality checks.
func finishContainer(parent Identifier, members *[]Member) error {
	for _, m := range *members {
		if meth, ok := m.(*Method); ok {
			if err := resolveSpecial(parent, meth); err != nil {
				return err
			}
		}
	}

	merged := make([]Member, 0, len(*members))
	byName := make(map[string]Member, len(*members))
	for _, m := range *members {
		existing, ok := byName[m.Name()]
		if !ok {
			byName[m.Name()] = m
			merged = append(merged, m)
			continue
		}

		// Re-declaring an operation name appends an overload signature,
		// provided the special flags agree. Staticness may differ.
		meth, isMeth := m.(*Method)
		exMeth, exIsMeth := existing.(*Method)
		if isMeth && exIsMeth && exMeth.sameSpecials(meth) {
			exMeth.signatures = append(exMeth.signatures, meth.signatures...)
			continue
		}
		return idlErrorf(memberPos(m), "conflicting declarations of %s", existing.QName())
	}
	*members = merged

	for _, m := range merged {
		if meth, ok := m.(*Method); ok {
			if err := checkOverloads(meth); err != nil {
				return err
			}
		}
		if err := checkLenientFloat(m); err != nil {
			return err
		}
	}
	return nil
}

func memberPos(m Member) Position {
	switch n := m.(type) {
	case *Attribute:
		return n.pos
	case *Const:
		return n.pos
	case *Method:
		return n.pos
	}
	return Position{}
}

// checkOverloads verifies that an overload set agrees on Promise-ness of the
// return type and that its signatures are distinguishable.
func checkOverloads(m *Method) error {
	promise := 0
	for _, s := range m.signatures {
		if s.ret != nil && s.ret.IsPromise() {
			promise++
		}
	}
	if promise != 0 && promise != len(m.signatures) {
		return idlErrorf(m.pos, "overloads of %s mix Promise and non-Promise return types", m.QName())
	}

	for i, a := range m.signatures {
		for _, c := range m.signatures[i+1:] {
			if len(a.args) != len(c.args) {
				continue
			}
			same := true
			for k := range a.args {
				if a.args[k].typ.Name() != c.args[k].typ.Name() {
					same = false
					break
				}
			}
			if same {
				return idlErrorf(m.pos, "overloads of %s are not distinguishable", m.QName())
			}
		}
	}
	return nil
}

// checkLenientFloat enforces the [LenientFloat] applicability rules: only on
// void-returning operations with an unrestricted float somewhere in their
// arguments, or on writable attributes of unrestricted float type.
func checkLenientFloat(m Member) error {
	switch n := m.(type) {
	case *Method:
		if !hasExtAttr(n.extAttrs, "LenientFloat") {
			return nil
		}
		for _, s := range n.signatures {
			if s.ret == nil || !s.ret.IsVoid() {
				return idlErrorf(n.pos, "[LenientFloat] used on a non-void method %s", n.QName())
			}
			found := false
			for _, a := range s.args {
				if hasUnrestrictedFloat(a.typ) {
					found = true
					break
				}
			}
			if !found {
				return idlErrorf(n.pos, "[LenientFloat] used on %s with no unrestricted float arguments", n.QName())
			}
		}
	case *Attribute:
		if !hasExtAttr(n.extAttrs, "LenientFloat") {
			return nil
		}
		if n.readonly {
			return idlErrorf(n.pos, "[LenientFloat] used on readonly attribute %s", n.QName())
		}
		if !hasUnrestrictedFloat(n.typ) {
			return idlErrorf(n.pos, "[LenientFloat] used on attribute %s of non-unrestricted-float type", n.QName())
		}
	}
	return nil
}

// checkTypes walks every type in the finished model, rejecting nullable
// Promise types and nullable wrappings of already-nullable aliases.
func (b *fragmentBuilder) checkTypes() error {
	check := func(t Type, pos Position) error {
		return checkTypeTree(t, pos)
	}

	for _, d := range b.decls {
		switch n := d.(type) {
		case *Interface:
			if err := checkMemberTypes(n.members, check); err != nil {
				return err
			}
			if n.ctor != nil {
				for _, s := range n.ctor.signatures {
					for _, a := range s.args {
						if err := check(a.typ, a.pos); err != nil {
							return err
						}
					}
				}
			}
		case *Mixin:
			if err := checkMemberTypes(n.members, check); err != nil {
				return err
			}
		case *Namespace:
			if err := checkMemberTypes(n.members, check); err != nil {
				return err
			}
		case *Dictionary:
			for _, m := range n.members {
				if err := check(m.typ, m.pos); err != nil {
					return err
				}
			}
		case *Typedef:
			if err := check(n.typ, n.pos); err != nil {
				return err
			}
		case *Callback:
			if err := check(n.ret, n.pos); err != nil {
				return err
			}
			for _, a := range n.args {
				if err := check(a.typ, a.pos); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkMemberTypes(members []Member, check func(Type, Position) error) error {
	for _, m := range members {
		switch n := m.(type) {
		case *Attribute:
			if err := check(n.typ, n.pos); err != nil {
				return err
			}
		case *Const:
			if err := check(n.typ, n.pos); err != nil {
				return err
			}
		case *Method:
			for _, s := range n.signatures {
				if err := check(s.ret, s.pos); err != nil {
					return err
				}
				for _, a := range s.args {
					if err := check(a.typ, a.pos); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func checkTypeTree(t Type, pos Position) error {
	if t == nil {
		return nil
	}

	if nt, ok := t.(*nullableType); ok {
		if nt.Type.IsPromise() {
			return idlErrorf(pos, "Promise types cannot be nullable")
		}
		if nt.Type.Nullable() {
			return idlErrorf(pos, "cannot make a nullable type nullable")
		}
		return checkTypeTree(nt.Type, pos)
	}

	for _, m := range t.UnionMembers() {
		if err := checkTypeTree(m, pos); err != nil {
			return err
		}
	}

	switch n := t.(type) {
	case *sequenceType:
		return checkTypeTree(n.elem, pos)
	case *arrayType:
		return checkTypeTree(n.elem, pos)
	case *frozenArrayType:
		return checkTypeTree(n.elem, pos)
	case *promiseType:
		return checkTypeTree(n.inner, pos)
	case *recordType:
		if err := checkTypeTree(n.key, pos); err != nil {
			return err
		}
		return checkTypeTree(n.val, pos)
	}
	return nil
}
