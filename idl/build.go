package idl

import (
	"github.com/idlkit/webidl/ast"
)

// fragmentBuilder holds the accumulating state of a Parser between Parse
// calls: the declarations lowered so far, pending partials and includes, and
// the type references awaiting resolution. Reset replaces it wholesale.
type fragmentBuilder struct {
	scope    *scopeTable
	decls    []Decl
	partials []*partialRec
	includes []*includesRec
	refs     []*refType
}

// partialRec is a lowered partial declaration waiting to be merged into its
// primary during Finish.
type partialRec struct {
	kind    string // "interface", "mixin", "namespace", "dictionary"
	name    string
	pos     Position
	members []Member
	dict    []*DictionaryMember
}

// includesRec is an includes (or legacy implements) statement waiting to be
// applied during Finish.
type includesRec struct {
	target string
	source string
	pos    Position
}

func newFragmentBuilder() *fragmentBuilder {
	return &fragmentBuilder{scope: newScopeTable()}
}

func (b *fragmentBuilder) pos(text string, n ast.Node) Position {
	return positionAt(text, n.NodeBase().Start)
}

// addFragment lowers the declarations of one parsed fragment, committing
// them one at a time so declarations preceding an error are preserved.
func (b *fragmentBuilder) addFragment(text string, file *ast.File) error {
	for _, d := range file.Declarations {
		if err := b.addDecl(text, d); err != nil {
			return err
		}
	}
	return nil
}

// checkVacant verifies that no top-level declaration already claims name.
func (b *fragmentBuilder) checkVacant(name string, pos Position) error {
	if existing, ok := b.scope.lookup(name); ok {
		return idlErrorf(pos, "conflicting declaration of %s", existing.QName())
	}
	return nil
}

func (b *fragmentBuilder) addDecl(text string, d ast.Decl) error {
	switch n := d.(type) {
	case *ast.Interface:
		pos := b.pos(text, n)
		id := globalID(n.Name)
		members, err := b.lowerMembers(text, id, n.Members)
		if err != nil {
			return err
		}
		if n.Partial {
			b.partials = append(b.partials, &partialRec{kind: "interface", name: n.Name, pos: pos, members: members})
			return nil
		}
		if err := b.checkVacant(n.Name, pos); err != nil {
			return err
		}
		iface := &Interface{
			id:         id,
			pos:        pos,
			parentName: n.Inherits,
			parentPos:  pos,
			callback:   n.Callback,
			members:    members,
			extAttrs:   n.Annotations,
		}
		if err := b.synthesizeCtor(text, iface, n.Annotations); err != nil {
			return err
		}
		b.scope.declare(n.Name, iface)
		b.decls = append(b.decls, iface)
		return nil

	case *ast.Mixin:
		pos := b.pos(text, n)
		id := globalID(n.Name)
		members, err := b.lowerMembers(text, id, n.Members)
		if err != nil {
			return err
		}
		if n.Partial {
			b.partials = append(b.partials, &partialRec{kind: "mixin", name: n.Name, pos: pos, members: members})
			return nil
		}
		if err := b.checkVacant(n.Name, pos); err != nil {
			return err
		}
		mixin := &Mixin{id: id, pos: pos, members: members, extAttrs: n.Annotations}
		b.scope.declare(n.Name, mixin)
		b.decls = append(b.decls, mixin)
		return nil

	case *ast.Dictionary:
		pos := b.pos(text, n)
		id := globalID(n.Name)
		members, err := b.lowerDictMembers(text, id, n.Members)
		if err != nil {
			return err
		}
		if n.Partial {
			b.partials = append(b.partials, &partialRec{kind: "dictionary", name: n.Name, pos: pos, dict: members})
			return nil
		}
		if err := b.checkVacant(n.Name, pos); err != nil {
			return err
		}
		dict := &Dictionary{
			id:         id,
			pos:        pos,
			parentName: n.Inherits,
			parentPos:  pos,
			members:    members,
			extAttrs:   n.Annotations,
		}
		b.scope.declare(n.Name, dict)
		b.decls = append(b.decls, dict)
		return nil

	case *ast.Enum:
		pos := b.pos(text, n)
		if err := b.checkVacant(n.Name, pos); err != nil {
			return err
		}
		seen := make(map[string]bool, len(n.Values))
		values := make([]string, 0, len(n.Values))
		for _, v := range n.Values {
			if v.Kind != ast.LiteralString {
				return idlErrorf(b.pos(text, v), "enum values must be string literals")
			}
			if seen[v.Value] {
				return idlErrorf(b.pos(text, v), "duplicate enum value %q in %s", v.Value, n.Name)
			}
			seen[v.Value] = true
			values = append(values, v.Value)
		}
		enum := &Enum{id: globalID(n.Name), pos: pos, values: values, extAttrs: n.Annotations}
		b.scope.declare(n.Name, enum)
		b.decls = append(b.decls, enum)
		return nil

	case *ast.Typedef:
		pos := b.pos(text, n)
		if err := b.checkVacant(n.Name, pos); err != nil {
			return err
		}
		typ, err := b.lowerType(text, n.Type)
		if err != nil {
			return err
		}
		td := &Typedef{id: globalID(n.Name), pos: pos, typ: typ}
		b.scope.declare(n.Name, td)
		b.decls = append(b.decls, td)
		return nil

	case *ast.Callback:
		pos := b.pos(text, n)
		if err := b.checkVacant(n.Name, pos); err != nil {
			return err
		}
		ret, err := b.lowerType(text, n.Return)
		if err != nil {
			return err
		}
		cb := &Callback{id: globalID(n.Name), pos: pos, ret: ret}
		args, err := b.lowerArguments(text, cb.id, n.Parameters)
		if err != nil {
			return err
		}
		cb.args = args
		b.scope.declare(n.Name, cb)
		b.decls = append(b.decls, cb)
		return nil

	case *ast.Namespace:
		pos := b.pos(text, n)
		id := globalID(n.Name)
		members, err := b.lowerMembers(text, id, n.Members)
		if err != nil {
			return err
		}
		if n.Partial {
			b.partials = append(b.partials, &partialRec{kind: "namespace", name: n.Name, pos: pos, members: members})
			return nil
		}
		if err := b.checkVacant(n.Name, pos); err != nil {
			return err
		}
		ns := &Namespace{id: id, pos: pos, members: members, extAttrs: n.Annotations}
		b.scope.declare(n.Name, ns)
		b.decls = append(b.decls, ns)
		return nil

	case *ast.Includes:
		b.includes = append(b.includes, &includesRec{target: n.Name, source: n.Source, pos: b.pos(text, n)})
		return nil

	case *ast.Implementation:
		b.includes = append(b.includes, &includesRec{target: n.Name, source: n.Source, pos: b.pos(text, n)})
		return nil
	}
	return idlErrorf(Position{}, "unsupported declaration")
}

func (b *fragmentBuilder) lowerMembers(text string, parent Identifier, members []*ast.Member) ([]Member, error) {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		lowered, err := b.lowerMember(text, parent, m)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered)
	}
	return out, nil
}

func (b *fragmentBuilder) lowerMember(text string, parent Identifier, m *ast.Member) (Member, error) {
	pos := b.pos(text, m)
	typ, err := b.lowerType(text, m.Type)
	if err != nil {
		return nil, err
	}

	switch {
	case m.Const:
		if m.Name == "" {
			return nil, idlErrorf(pos, "constant requires a name")
		}
		return &Const{id: childID(parent, m.Name), pos: pos, typ: typ, value: m.Init}, nil

	case m.Attribute:
		if len(m.Specials) > 0 {
			return nil, idlErrorf(pos, "attributes cannot be special operations")
		}
		if m.Name == "" {
			return nil, idlErrorf(pos, "attribute requires a name")
		}
		return &Attribute{
			id:          childID(parent, m.Name),
			pos:         pos,
			typ:         typ,
			readonly:    m.Readonly,
			inherit:     m.Inherit,
			static:      m.Static,
			stringifier: m.Stringifier,
			extAttrs:    m.Annotations,
		}, nil

	default:
		meth := &Method{
			id:           childID(parent, m.Name),
			pos:          pos,
			static:       m.Static,
			legacycaller: m.Legacycaller,
			stringifier:  m.Stringifier,
			extAttrs:     m.Annotations,
		}
		for _, s := range m.Specials {
			switch s {
			case "getter":
				meth.getter = true
			case "setter":
				meth.setter = true
			case "creator":
				meth.creator = true
			case "deleter":
				meth.deleter = true
			}
		}
		args, err := b.lowerArguments(text, meth.id, m.Parameters)
		if err != nil {
			return nil, err
		}
		meth.signatures = []*Signature{{ret: typ, args: args, pos: pos}}
		return meth, nil
	}
}

func (b *fragmentBuilder) lowerDictMembers(text string, parent Identifier, members []*ast.Member) ([]*DictionaryMember, error) {
	out := make([]*DictionaryMember, 0, len(members))
	for _, m := range members {
		pos := b.pos(text, m)
		if len(m.Specials) > 0 || m.Const || m.Static {
			return nil, idlErrorf(pos, "dictionary members must be plain entries")
		}
		if m.Required && m.Init != nil {
			return nil, idlErrorf(pos, "required dictionary member %s cannot have a default value", m.Name)
		}
		typ, err := b.lowerType(text, m.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, &DictionaryMember{
			id:       childID(parent, m.Name),
			pos:      pos,
			typ:      typ,
			required: m.Required,
			dflt:     m.Init,
		})
	}
	return out, nil
}

func (b *fragmentBuilder) lowerArguments(text string, parent Identifier, params []*ast.Parameter) ([]*Argument, error) {
	out := make([]*Argument, 0, len(params))
	for _, p := range params {
		typ, err := b.lowerType(text, p.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, &Argument{
			id:       childID(parent, p.Name),
			pos:      b.pos(text, p),
			typ:      typ,
			optional: p.Optional,
			variadic: p.Variadic,
			dflt:     p.Init,
		})
	}
	return out, nil
}

func (b *fragmentBuilder) lowerType(text string, t ast.Type) (Type, error) {
	if t == nil {
		return voidType, nil
	}
	pos := b.pos(text, t)

	switch n := t.(type) {
	case *ast.AnyType:
		return anyType, nil

	case *ast.TypeName:
		name := n.Name
		if p, ok := primitiveTypes[name]; ok {
			return p, nil
		}
		if s, ok := stringTypes[name]; ok {
			return s, nil
		}
		switch name {
		case "object":
			return objectType, nil
		case "void", "undefined":
			return voidType, nil
		case "any":
			return anyType, nil
		}
		if sm, ok := spiderMonkeyTypes[name]; ok {
			return sm, nil
		}
		ref := &refType{name: name, pos: pos}
		b.refs = append(b.refs, ref)
		return ref, nil

	case *ast.SequenceType:
		elem, err := b.lowerType(text, n.Elem)
		if err != nil {
			return nil, err
		}
		return &sequenceType{elem: elem}, nil

	case *ast.ArrayType:
		elem, err := b.lowerType(text, n.Elem)
		if err != nil {
			return nil, err
		}
		return &arrayType{elem: elem}, nil

	case *ast.ParametrizedType:
		switch n.Name {
		case "Promise":
			if len(n.Elems) != 1 {
				return nil, idlErrorf(pos, "Promise takes exactly one type argument")
			}
			inner, err := b.lowerType(text, n.Elems[0])
			if err != nil {
				return nil, err
			}
			return &promiseType{inner: inner}, nil

		case "FrozenArray":
			if len(n.Elems) != 1 {
				return nil, idlErrorf(pos, "FrozenArray takes exactly one type argument")
			}
			elem, err := b.lowerType(text, n.Elems[0])
			if err != nil {
				return nil, err
			}
			return &frozenArrayType{elem: elem}, nil

		case "record":
			if len(n.Elems) != 2 {
				return nil, idlErrorf(pos, "record takes exactly two type arguments")
			}
			key, err := b.lowerType(text, n.Elems[0])
			if err != nil {
				return nil, err
			}
			if !key.IsString() {
				return nil, idlErrorf(pos, "record keys must be string types")
			}
			val, err := b.lowerType(text, n.Elems[1])
			if err != nil {
				return nil, err
			}
			return &recordType{key: key, val: val}, nil
		}
		return nil, idlErrorf(pos, "unknown parametrized type %s", n.Name)

	case *ast.UnionType:
		members := make([]Type, 0, len(n.Types))
		for _, m := range n.Types {
			lowered, err := b.lowerType(text, m)
			if err != nil {
				return nil, err
			}
			members = append(members, lowered)
		}
		if len(members) == 1 {
			return members[0], nil
		}
		return newUnionType(members), nil

	case *ast.NullableType:
		if _, ok := n.Type.(*ast.NullableType); ok {
			return nil, idlErrorf(pos, "cannot make a nullable type nullable")
		}
		inner, err := b.lowerType(text, n.Type)
		if err != nil {
			return nil, err
		}
		return &nullableType{Type: inner}, nil
	}
	return nil, idlErrorf(pos, "unsupported type")
}

// synthesizeCtor builds the constructor method from [Constructor(...)]
// extended attributes: one signature per occurrence, returning the wrapped
// form of the interface.
func (b *fragmentBuilder) synthesizeCtor(text string, iface *Interface, anns []*ast.Annotation) error {
	for _, a := range anns {
		if a.Name != "Constructor" {
			continue
		}
		if a.Value != "" || len(a.Values) > 0 {
			return idlErrorf(b.pos(text, a), "invalid arguments to Constructor extended attribute")
		}
		if iface.ctor == nil {
			iface.ctor = &Method{
				id:     childID(iface.id, "constructor"),
				pos:    iface.pos,
				static: true,
			}
		}
		args, err := b.lowerArguments(text, iface.ctor.id, a.Parameters)
		if err != nil {
			return err
		}
		self := &refType{name: iface.Name(), pos: iface.pos, target: iface}
		iface.ctor.signatures = append(iface.ctor.signatures, &Signature{
			ret:  &wrappedType{Type: self},
			args: args,
			pos:  b.pos(text, a),
		})
	}
	return nil
}
