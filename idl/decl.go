package idl

import "github.com/idlkit/webidl/ast"

// Decl is a top-level declaration in the finished model.
type Decl interface {
	Name() string
	QName() string
	isDecl()
}

// Interface is a (possibly callback) interface declaration with its merged,
// ordered member list.
type Interface struct {
	id         Identifier
	pos        Position
	parentName string
	parentPos  Position
	parent     *Interface
	callback   bool
	members    []Member
	ctor       *Method
	extAttrs   []*ast.Annotation
}

func (d *Interface) isDecl() {}

func (d *Interface) Name() string  { return d.id.name }
func (d *Interface) QName() string { return d.id.qname }

// Members returns the members in source order, partials and includes merged.
func (d *Interface) Members() []Member { return d.members }

// Parent returns the inherited interface, if any.
func (d *Interface) Parent() *Interface { return d.parent }

// Ctor returns the constructor synthesized from [Constructor(...)] extended
// attributes, or nil.
func (d *Interface) Ctor() *Method { return d.ctor }

func (d *Interface) IsCallback() bool { return d.callback }

// ExtendedAttributes returns the extended attributes written on the
// declaration.
func (d *Interface) ExtendedAttributes() []*ast.Annotation { return d.extAttrs }

// Mixin is an interface mixin declaration.
type Mixin struct {
	id       Identifier
	pos      Position
	members  []Member
	extAttrs []*ast.Annotation
}

func (d *Mixin) isDecl() {}

func (d *Mixin) Name() string      { return d.id.name }
func (d *Mixin) QName() string     { return d.id.qname }
func (d *Mixin) Members() []Member { return d.members }

// Dictionary is a dictionary declaration.
type Dictionary struct {
	id         Identifier
	pos        Position
	parentName string
	parentPos  Position
	parent     *Dictionary
	members    []*DictionaryMember
	extAttrs   []*ast.Annotation
}

func (d *Dictionary) isDecl() {}

func (d *Dictionary) Name() string                 { return d.id.name }
func (d *Dictionary) QName() string                { return d.id.qname }
func (d *Dictionary) Members() []*DictionaryMember { return d.members }
func (d *Dictionary) Parent() *Dictionary          { return d.parent }

// DictionaryMember is a single dictionary entry.
type DictionaryMember struct {
	id       Identifier
	pos      Position
	typ      Type
	required bool
	dflt     *ast.Literal
}

func (m *DictionaryMember) Name() string          { return m.id.name }
func (m *DictionaryMember) QName() string         { return m.id.qname }
func (m *DictionaryMember) Type() Type            { return m.typ }
func (m *DictionaryMember) Required() bool        { return m.required }
func (m *DictionaryMember) Default() *ast.Literal { return m.dflt }

// Enum is an enumeration of string values.
type Enum struct {
	id       Identifier
	pos      Position
	values   []string
	extAttrs []*ast.Annotation
}

func (d *Enum) isDecl() {}

func (d *Enum) Name() string     { return d.id.name }
func (d *Enum) QName() string    { return d.id.qname }
func (d *Enum) Values() []string { return d.values }

// Typedef aliases a type under a new name.
type Typedef struct {
	id  Identifier
	pos Position
	typ Type
}

func (d *Typedef) isDecl() {}

func (d *Typedef) Name() string  { return d.id.name }
func (d *Typedef) QName() string { return d.id.qname }
func (d *Typedef) Type() Type    { return d.typ }

// Callback is a callback function declaration.
type Callback struct {
	id   Identifier
	pos  Position
	ret  Type
	args []*Argument
}

func (d *Callback) isDecl() {}

func (d *Callback) Name() string          { return d.id.name }
func (d *Callback) QName() string         { return d.id.qname }
func (d *Callback) ReturnType() Type      { return d.ret }
func (d *Callback) Arguments() []*Argument { return d.args }

// Namespace is a namespace declaration with its merged member list.
type Namespace struct {
	id       Identifier
	pos      Position
	members  []Member
	extAttrs []*ast.Annotation
}

func (d *Namespace) isDecl() {}

func (d *Namespace) Name() string      { return d.id.name }
func (d *Namespace) QName() string     { return d.id.qname }
func (d *Namespace) Members() []Member { return d.members }
