package idl

// Type is the query surface every WebIDL type exposes. Wrappers (nullable,
// sequence, array) answer the same structural queries as the type they wrap
// where noted, and Inner unwraps exactly one level.
type Type interface {
	// Name returns the canonical textual name, e.g. "ArrayBuffer",
	// "ArrayBufferOrNull", "ArrayBufferSequence". Suffixes are derived
	// mechanically from the wrapper kind.
	Name() string
	// Nullable reports whether this is a nullable wrapper.
	Nullable() bool
	// Builtin reports whether this is one of the builtin WebIDL types.
	Builtin() bool

	IsPrimitive() bool
	IsFloat() bool
	IsUnrestricted() bool
	IsVoid() bool
	IsAny() bool
	IsObject() bool
	IsString() bool
	IsPromise() bool
	IsUnion() bool
	IsSequence() bool
	IsArray() bool
	IsInterface() bool
	IsDictionary() bool
	IsEnum() bool
	IsCallback() bool
	IsSpiderMonkeyInterface() bool

	// Inner unwraps one level of nullable, sequence, array, promise, or
	// record; nil for leaf types.
	Inner() Type
	// UnionMembers returns the flattened member list of a union type.
	UnionMembers() []Type
}

// baseType supplies the all-false defaults for leaf types.
type baseType struct{}

func (baseType) Nullable() bool               { return false }
func (baseType) Builtin() bool                { return false }
func (baseType) IsPrimitive() bool            { return false }
func (baseType) IsFloat() bool                { return false }
func (baseType) IsUnrestricted() bool         { return false }
func (baseType) IsVoid() bool                 { return false }
func (baseType) IsAny() bool                  { return false }
func (baseType) IsObject() bool               { return false }
func (baseType) IsString() bool               { return false }
func (baseType) IsPromise() bool              { return false }
func (baseType) IsUnion() bool                { return false }
func (baseType) IsSequence() bool             { return false }
func (baseType) IsArray() bool                { return false }
func (baseType) IsInterface() bool            { return false }
func (baseType) IsDictionary() bool           { return false }
func (baseType) IsEnum() bool                 { return false }
func (baseType) IsCallback() bool             { return false }
func (baseType) IsSpiderMonkeyInterface() bool { return false }
func (baseType) Inner() Type                  { return nil }
func (baseType) UnionMembers() []Type         { return nil }

// primitiveType is one of the numeric or boolean builtins.
type primitiveType struct {
	baseType
	idl          string // source spelling, e.g. "unsigned long long"
	canonical    string // canonical name, e.g. "UnsignedLongLong"
	float        bool
	unrestricted bool
}

func (t *primitiveType) Name() string         { return t.canonical }
func (t *primitiveType) Builtin() bool        { return true }
func (t *primitiveType) IsPrimitive() bool    { return true }
func (t *primitiveType) IsFloat() bool        { return t.float }
func (t *primitiveType) IsUnrestricted() bool { return t.unrestricted }

// primitiveTypes maps the source spelling of every primitive to its
// singleton.
var primitiveTypes = map[string]*primitiveType{
	"boolean":            {idl: "boolean", canonical: "Boolean"},
	"byte":               {idl: "byte", canonical: "Byte"},
	"octet":              {idl: "octet", canonical: "Octet"},
	"short":              {idl: "short", canonical: "Short"},
	"unsigned short":     {idl: "unsigned short", canonical: "UnsignedShort"},
	"long":               {idl: "long", canonical: "Long"},
	"unsigned long":      {idl: "unsigned long", canonical: "UnsignedLong"},
	"long long":          {idl: "long long", canonical: "LongLong"},
	"unsigned long long": {idl: "unsigned long long", canonical: "UnsignedLongLong"},
	"float":              {idl: "float", canonical: "Float", float: true},
	"unrestricted float": {idl: "unrestricted float", canonical: "UnrestrictedFloat", float: true, unrestricted: true},
	"double":             {idl: "double", canonical: "Double", float: true},
	"unrestricted double": {idl: "unrestricted double", canonical: "UnrestrictedDouble", float: true, unrestricted: true},
}

// simpleType covers the non-numeric builtins: any, void, object, and the
// string types.
type simpleType struct {
	baseType
	canonical string
	void      bool
	any       bool
	object    bool
	str       bool
}

func (t *simpleType) Name() string    { return t.canonical }
func (t *simpleType) Builtin() bool   { return true }
func (t *simpleType) IsVoid() bool    { return t.void }
func (t *simpleType) IsAny() bool     { return t.any }
func (t *simpleType) IsObject() bool  { return t.object }
func (t *simpleType) IsString() bool  { return t.str }

var (
	anyType    = &simpleType{canonical: "Any", any: true}
	voidType   = &simpleType{canonical: "Void", void: true}
	objectType = &simpleType{canonical: "Object", object: true}

	stringTypes = map[string]*simpleType{
		"DOMString":  {canonical: "DOMString", str: true},
		"ByteString": {canonical: "ByteString", str: true},
		"USVString":  {canonical: "USVString", str: true},
	}
)

// spiderMonkeyType is a builtin JS-engine-backed interface type: ArrayBuffer
// and the typed-array family.
type spiderMonkeyType struct {
	baseType
	name string
}

func (t *spiderMonkeyType) Name() string                  { return t.name }
func (t *spiderMonkeyType) Builtin() bool                 { return true }
func (t *spiderMonkeyType) IsInterface() bool             { return true }
func (t *spiderMonkeyType) IsSpiderMonkeyInterface() bool { return true }

// spiderMonkeyNames is the fixed catalog of SpiderMonkey interface types.
var spiderMonkeyNames = []string{
	"ArrayBuffer",
	"ArrayBufferView",
	"Int8Array",
	"Uint8Array",
	"Uint8ClampedArray",
	"Int16Array",
	"Uint16Array",
	"Int32Array",
	"Uint32Array",
	"Float32Array",
	"Float64Array",
}

var spiderMonkeyTypes = func() map[string]*spiderMonkeyType {
	m := make(map[string]*spiderMonkeyType, len(spiderMonkeyNames))
	for _, name := range spiderMonkeyNames {
		m[name] = &spiderMonkeyType{name: name}
	}
	return m
}()

// nullableType decorates a type: every query forwards to the wrapped type
// except Nullable, Builtin, Name, and Inner.
type nullableType struct {
	Type
}

func (t *nullableType) Name() string   { return t.Type.Name() + "OrNull" }
func (t *nullableType) Nullable() bool { return true }
func (t *nullableType) Builtin() bool  { return false }
func (t *nullableType) Inner() Type    { return t.Type }

// sequenceType is sequence<T>.
type sequenceType struct {
	baseType
	elem Type
}

func (t *sequenceType) Name() string                  { return t.elem.Name() + "Sequence" }
func (t *sequenceType) IsSequence() bool              { return true }
func (t *sequenceType) Inner() Type                   { return t.elem }
func (t *sequenceType) IsSpiderMonkeyInterface() bool { return t.elem.IsSpiderMonkeyInterface() }

// arrayType is T[].
type arrayType struct {
	baseType
	elem Type
}

func (t *arrayType) Name() string                  { return t.elem.Name() + "Array" }
func (t *arrayType) IsArray() bool                 { return true }
func (t *arrayType) Inner() Type                   { return t.elem }
func (t *arrayType) IsSpiderMonkeyInterface() bool { return t.elem.IsSpiderMonkeyInterface() }

// frozenArrayType is FrozenArray<T>.
type frozenArrayType struct {
	baseType
	elem Type
}

func (t *frozenArrayType) Name() string                  { return t.elem.Name() + "FrozenArray" }
func (t *frozenArrayType) IsSequence() bool              { return true }
func (t *frozenArrayType) Inner() Type                   { return t.elem }
func (t *frozenArrayType) IsSpiderMonkeyInterface() bool { return t.elem.IsSpiderMonkeyInterface() }

// promiseType is Promise<T>.
type promiseType struct {
	baseType
	inner Type
}

func (t *promiseType) Name() string   { return t.inner.Name() + "Promise" }
func (t *promiseType) Builtin() bool  { return true }
func (t *promiseType) IsPromise() bool { return true }
func (t *promiseType) Inner() Type    { return t.inner }

// recordType is record<K, V>.
type recordType struct {
	baseType
	key Type
	val Type
}

func (t *recordType) Name() string { return t.key.Name() + t.val.Name() + "Record" }
func (t *recordType) Inner() Type  { return t.val }

// unionType is (T1 or T2 or ...). Nested unions are flattened at
// construction.
type unionType struct {
	baseType
	members []Type
}

func newUnionType(members []Type) *unionType {
	flat := make([]Type, 0, len(members))
	for _, m := range members {
		if m.IsUnion() && !m.Nullable() {
			flat = append(flat, m.UnionMembers()...)
			continue
		}
		flat = append(flat, m)
	}
	return &unionType{members: flat}
}

func (t *unionType) Name() string {
	name := ""
	for i, m := range t.members {
		if i > 0 {
			name += "Or"
		}
		name += m.Name()
	}
	return name
}

func (t *unionType) IsUnion() bool         { return true }
func (t *unionType) UnionMembers() []Type  { return t.members }

// wrappedType is the boxed form of an interface, used as the return type of
// synthesized constructors.
type wrappedType struct {
	Type
}

func (t *wrappedType) Name() string { return t.Type.Name() + " (Wrapper)" }

// refType is a reference to a user-defined declaration, resolved during the
// finish pass. Typedef targets forward every query to the aliased type.
type refType struct {
	name   string
	pos    Position
	target Decl
}

// alias returns the aliased type when the reference resolved to a typedef.
func (t *refType) alias() Type {
	if td, ok := t.target.(*Typedef); ok {
		return td.typ
	}
	return nil
}

func (t *refType) Name() string {
	if a := t.alias(); a != nil {
		return a.Name()
	}
	return t.name
}

func (t *refType) Nullable() bool {
	if a := t.alias(); a != nil {
		return a.Nullable()
	}
	return false
}

func (t *refType) Builtin() bool {
	if a := t.alias(); a != nil {
		return a.Builtin()
	}
	return false
}

func (t *refType) IsPrimitive() bool {
	if a := t.alias(); a != nil {
		return a.IsPrimitive()
	}
	return false
}

func (t *refType) IsFloat() bool {
	if a := t.alias(); a != nil {
		return a.IsFloat()
	}
	return false
}

func (t *refType) IsUnrestricted() bool {
	if a := t.alias(); a != nil {
		return a.IsUnrestricted()
	}
	return false
}

func (t *refType) IsVoid() bool {
	if a := t.alias(); a != nil {
		return a.IsVoid()
	}
	return false
}

func (t *refType) IsAny() bool {
	if a := t.alias(); a != nil {
		return a.IsAny()
	}
	return false
}

func (t *refType) IsObject() bool {
	if a := t.alias(); a != nil {
		return a.IsObject()
	}
	return false
}

func (t *refType) IsString() bool {
	if a := t.alias(); a != nil {
		return a.IsString()
	}
	return false
}

func (t *refType) IsPromise() bool {
	if a := t.alias(); a != nil {
		return a.IsPromise()
	}
	return false
}

func (t *refType) IsUnion() bool {
	if a := t.alias(); a != nil {
		return a.IsUnion()
	}
	return false
}

func (t *refType) IsSequence() bool {
	if a := t.alias(); a != nil {
		return a.IsSequence()
	}
	return false
}

func (t *refType) IsArray() bool {
	if a := t.alias(); a != nil {
		return a.IsArray()
	}
	return false
}

func (t *refType) IsInterface() bool {
	if a := t.alias(); a != nil {
		return a.IsInterface()
	}
	switch t.target.(type) {
	case *Interface, *Mixin:
		return true
	}
	return false
}

func (t *refType) IsDictionary() bool {
	if a := t.alias(); a != nil {
		return a.IsDictionary()
	}
	_, ok := t.target.(*Dictionary)
	return ok
}

func (t *refType) IsEnum() bool {
	if a := t.alias(); a != nil {
		return a.IsEnum()
	}
	_, ok := t.target.(*Enum)
	return ok
}

func (t *refType) IsCallback() bool {
	if a := t.alias(); a != nil {
		return a.IsCallback()
	}
	switch d := t.target.(type) {
	case *Callback:
		return true
	case *Interface:
		return d.callback
	}
	return false
}

func (t *refType) IsSpiderMonkeyInterface() bool {
	if a := t.alias(); a != nil {
		return a.IsSpiderMonkeyInterface()
	}
	return false
}

func (t *refType) Inner() Type {
	if a := t.alias(); a != nil {
		return a.Inner()
	}
	return nil
}

func (t *refType) UnionMembers() []Type {
	if a := t.alias(); a != nil {
		return a.UnionMembers()
	}
	return nil
}

// hasUnrestrictedFloat reports whether t contains, possibly nested inside
// unions, sequences, arrays, or nullables, an unrestricted float or double.
func hasUnrestrictedFloat(t Type) bool {
	if t == nil {
		return false
	}
	if t.IsFloat() && t.IsUnrestricted() {
		return true
	}
	for _, m := range t.UnionMembers() {
		if hasUnrestrictedFloat(m) {
			return true
		}
	}
	if inner := t.Inner(); inner != nil && inner != t {
		return hasUnrestrictedFloat(inner)
	}
	return false
}
