package idl

import "github.com/idlkit/webidl/ast"

// Member is an interface, mixin, or namespace member: an attribute, a
// method, or a constant.
type Member interface {
	Name() string
	QName() string
	isMember()
}

// Attribute is a readonly or writable attribute member.
type Attribute struct {
	id          Identifier
	pos         Position
	typ         Type
	readonly    bool
	inherit     bool
	static      bool
	stringifier bool
	extAttrs    []*ast.Annotation
}

func (a *Attribute) isMember() {}

func (a *Attribute) Name() string  { return a.id.name }
func (a *Attribute) QName() string { return a.id.qname }
func (a *Attribute) Type() Type    { return a.typ }

func (a *Attribute) IsReadOnly() bool    { return a.readonly }
func (a *Attribute) IsInherit() bool     { return a.inherit }
func (a *Attribute) IsStatic() bool      { return a.static }
func (a *Attribute) IsStringifier() bool { return a.stringifier }

// ExtendedAttributes returns the extended attributes written on the member.
func (a *Attribute) ExtendedAttributes() []*ast.Annotation { return a.extAttrs }

// Const is a constant member.
type Const struct {
	id    Identifier
	pos   Position
	typ   Type
	value *ast.Literal
}

func (c *Const) isMember() {}

func (c *Const) Name() string        { return c.id.name }
func (c *Const) QName() string       { return c.id.qname }
func (c *Const) Type() Type          { return c.typ }
func (c *Const) Value() *ast.Literal { return c.value }

// Method is an operation member. Overloads share one Method with multiple
// signatures.
type Method struct {
	id           Identifier
	pos          Position
	signatures   []*Signature
	static       bool
	getter       bool
	setter       bool
	creator      bool
	deleter      bool
	legacycaller bool
	stringifier  bool
	extAttrs     []*ast.Annotation
}

func (m *Method) isMember() {}

func (m *Method) Name() string  { return m.id.name }
func (m *Method) QName() string { return m.id.qname }

// Signatures returns the overload signatures in declaration order.
func (m *Method) Signatures() []*Signature { return m.signatures }

func (m *Method) IsStatic() bool       { return m.static }
func (m *Method) IsGetter() bool       { return m.getter }
func (m *Method) IsSetter() bool       { return m.setter }
func (m *Method) IsCreator() bool      { return m.creator }
func (m *Method) IsDeleter() bool      { return m.deleter }
func (m *Method) IsLegacycaller() bool { return m.legacycaller }
func (m *Method) IsStringifier() bool  { return m.stringifier }

// ExtendedAttributes returns the extended attributes written on the member.
func (m *Method) ExtendedAttributes() []*ast.Annotation { return m.extAttrs }

// isSpecial reports whether the method carries any special-operation
// keyword.
func (m *Method) isSpecial() bool {
	return m.getter || m.setter || m.creator || m.deleter
}

// sameSpecials reports whether two methods carry identical special and
// caller flags. Overloads may only merge when these agree; staticness is
// allowed to differ.
func (m *Method) sameSpecials(o *Method) bool {
	return m.getter == o.getter && m.setter == o.setter &&
		m.creator == o.creator && m.deleter == o.deleter &&
		m.legacycaller == o.legacycaller && m.stringifier == o.stringifier
}

// Signature is one overload: a return type and an ordered argument list.
type Signature struct {
	ret  Type
	args []*Argument
	pos  Position
}

func (s *Signature) ReturnType() Type      { return s.ret }
func (s *Signature) Arguments() []*Argument { return s.args }

// Argument is a single operation or constructor argument.
type Argument struct {
	id       Identifier
	pos      Position
	typ      Type
	optional bool
	variadic bool
	dflt     *ast.Literal
}

func (a *Argument) Name() string          { return a.id.name }
func (a *Argument) QName() string         { return a.id.qname }
func (a *Argument) Type() Type            { return a.typ }
func (a *Argument) Optional() bool        { return a.optional }
func (a *Argument) Variadic() bool        { return a.variadic }
func (a *Argument) Default() *ast.Literal { return a.dflt }

// hasExtAttr reports whether an extended attribute with the given name is
// present.
func hasExtAttr(anns []*ast.Annotation, name string) bool {
	for _, a := range anns {
		if a.Name == name {
			return true
		}
	}
	return false
}
