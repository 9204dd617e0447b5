// Package ast defines the syntax tree produced by parsing a WebIDL fragment.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	NodeBase() *Base
}

// Base carries the source span, attached comments and any parse errors
// collected while the node was being consumed.
type Base struct {
	Start    int          `json:"start"` // rune
	End      int          `json:"end"`   // rune
	Comments []string     `json:"comments,omitempty"`
	Errors   []*ErrorNode `json:"errors,omitempty"`
}

func (b *Base) NodeBase() *Base {
	return b
}

// error occurred; value is text of error
type ErrorNode struct {
	Base
	Message string `json:"message"`
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	isDecl()
}

// The file root node
type File struct {
	Base
	Declarations []Decl `json:"declarations,omitempty"`
}

// interface Foo : Bar { ... }
type Interface struct {
	Base
	Name        string        `json:"name"`
	Inherits    string        `json:"inherits,omitempty"`
	Partial     bool          `json:"partial,omitempty"`
	Callback    bool          `json:"callback,omitempty"`
	Annotations []*Annotation `json:"annotations,omitempty"`
	Members     []*Member     `json:"members,omitempty"`
	CustomOps   []*CustomOp   `json:"custom_ops,omitempty"`
	Iterable    *Iterable     `json:"iterable,omitempty"`
}

func (Interface) isDecl() {}

// interface mixin Foo { ... }
type Mixin struct {
	Base
	Name        string        `json:"name"`
	Partial     bool          `json:"partial,omitempty"`
	Annotations []*Annotation `json:"annotations,omitempty"`
	Members     []*Member     `json:"members,omitempty"`
	CustomOps   []*CustomOp   `json:"custom_ops,omitempty"`
	Iterable    *Iterable     `json:"iterable,omitempty"`
}

func (Mixin) isDecl() {}

// dictionary Foo : Bar { ... }
type Dictionary struct {
	Base
	Name        string        `json:"name"`
	Inherits    string        `json:"inherits,omitempty"`
	Partial     bool          `json:"partial,omitempty"`
	Annotations []*Annotation `json:"annotations,omitempty"`
	Members     []*Member     `json:"members,omitempty"`
}

func (Dictionary) isDecl() {}

// enum Foo { "a", "b" }
type Enum struct {
	Base
	Name        string        `json:"name"`
	Annotations []*Annotation `json:"annotations,omitempty"`
	Values      []*Literal    `json:"values,omitempty"`
}

func (Enum) isDecl() {}

// typedef unsigned long Handle;
type Typedef struct {
	Base
	Name        string        `json:"name"`
	Annotations []*Annotation `json:"annotations,omitempty"`
	Type        Type          `json:"type"`
}

func (Typedef) isDecl() {}

// callback Handler = void (Event e);
type Callback struct {
	Base
	Name        string        `json:"name"`
	Annotations []*Annotation `json:"annotations,omitempty"`
	Return      Type          `json:"return,omitempty"`
	Parameters  []*Parameter  `json:"parameters,omitempty"`
}

func (Callback) isDecl() {}

// namespace Foo { ... }
type Namespace struct {
	Base
	Name        string        `json:"name"`
	Partial     bool          `json:"partial,omitempty"`
	Annotations []*Annotation `json:"annotations,omitempty"`
	Members     []*Member     `json:"members,omitempty"`
}

func (Namespace) isDecl() {}

// Window implements ECMA262Globals
type Implementation struct {
	Base
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (Implementation) isDecl() {}

// Document includes DocumentOrShadowRoot
type Includes struct {
	Base
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (Includes) isDecl() {}

// readonly attribute something, const something, or an operation
type Member struct {
	Base
	Name         string        `json:"name,omitempty"`
	Type         Type          `json:"type,omitempty"`
	Init         *Literal      `json:"init,omitempty"`
	Attribute    bool          `json:"attribute,omitempty"`
	Static       bool          `json:"static,omitempty"`
	Const        bool          `json:"const,omitempty"`
	Readonly     bool          `json:"readonly,omitempty"`
	Inherit      bool          `json:"inherit,omitempty"`
	Required     bool          `json:"required,omitempty"`
	Stringifier  bool          `json:"stringifier,omitempty"`
	Legacycaller bool          `json:"legacycaller,omitempty"`
	Specials     []string      `json:"specials,omitempty"` // getter, setter, creator, deleter
	Parameters   []*Parameter  `json:"parameters,omitempty"`
	Annotations  []*Annotation `json:"annotations,omitempty"`
}

// stringifier; serializer; jsonifier;
type CustomOp struct {
	Base
	Name string `json:"name"`
}

// iterable<Type>
type Iterable struct {
	Base
	Elem Type `json:"elem"`
}

// [Constructor], [A=B], [A=(a,b)], [A(X x)]
type Annotation struct {
	Base
	Name       string       `json:"name"`
	Value      string       `json:"value,omitempty"`      // [A=B]
	Parameters []*Parameter `json:"parameters,omitempty"` // [A(X x, Y y)]
	Values     []string     `json:"values,omitempty"`     // [A=(a,b,c)]
}

// optional any SomeArg
type Parameter struct {
	Base
	Type        Type          `json:"type"`
	Optional    bool          `json:"optional,omitempty"`
	Variadic    bool          `json:"variadic,omitempty"`
	Name        string        `json:"name"`
	Init        *Literal      `json:"init,omitempty"`
	Annotations []*Annotation `json:"annotations,omitempty"`
}

// Literal value kinds.
const (
	LiteralString   = "string"
	LiteralNumber   = "number"
	LiteralBool     = "bool"
	LiteralNull     = "null"
	LiteralSequence = "sequence" // []
)

// "a", 42, true, null, []
type Literal struct {
	Base
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

// Type is a type reference.
type Type interface {
	Node
	isType()
}

// any
type AnyType struct {
	Base
}

func (AnyType) isType() {}

// long, DOMString, Foo, unsigned long long
type TypeName struct {
	Base
	Name string `json:"name"`
}

func (TypeName) isType() {}

// sequence<Type>
type SequenceType struct {
	Base
	Elem Type `json:"elem"`
}

func (SequenceType) isType() {}

// Type[]
type ArrayType struct {
	Base
	Elem Type `json:"elem"`
}

func (ArrayType) isType() {}

// Promise<Type>, record<K, V>, FrozenArray<Type>
type ParametrizedType struct {
	Base
	Name  string `json:"name"`
	Elems []Type `json:"elems"`
}

func (ParametrizedType) isType() {}

// (Type1 or Type2 or ...)
type UnionType struct {
	Base
	Types []Type `json:"types"`
}

func (UnionType) isType() {}

// Type?
type NullableType struct {
	Base
	Type Type `json:"type"`
}

func (NullableType) isType() {}
