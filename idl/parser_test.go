package idl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// mustFinish parses every fragment and runs the finish pass, failing the test
// on any error.
func mustFinish(t *testing.T, fragments ...string) []Decl {
	t.Helper()
	p := NewParser()
	for _, f := range fragments {
		require.NoError(t, p.Parse(f))
	}
	decls, err := p.Finish()
	require.NoError(t, err)
	return decls
}

// finishErr parses every fragment and returns the error from the first
// failing Parse call or from Finish.
func finishErr(t *testing.T, fragments ...string) error {
	t.Helper()
	p := NewParser()
	for _, f := range fragments {
		if err := p.Parse(f); err != nil {
			return err
		}
	}
	_, err := p.Finish()
	return err
}

func declNames(decls []Decl) []string {
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name())
	}
	return names
}

func TestParseAndFinish(t *testing.T) {
	decls := mustFinish(t, `
interface Node {
  const unsigned short ELEMENT_NODE = 1;
  readonly attribute DOMString nodeName;
  Node cloneNode(optional boolean deep);
};
enum Direction { "next", "previous" };
typedef (Node or DOMString) NodeOrString;`)

	require.Equal(t, []string{"Node", "Direction", "NodeOrString"}, declNames(decls))

	iface := decls[0].(*Interface)
	require.Equal(t, "::Node", iface.QName())
	require.Len(t, iface.Members(), 3)

	cst := iface.Members()[0].(*Const)
	require.Equal(t, "::Node::ELEMENT_NODE", cst.QName())
	require.Equal(t, "UnsignedShort", cst.Type().Name())

	attr := iface.Members()[1].(*Attribute)
	require.True(t, attr.IsReadOnly())
	require.Equal(t, "DOMString", attr.Type().Name())

	meth := iface.Members()[2].(*Method)
	require.Len(t, meth.Signatures(), 1)
	sig := meth.Signatures()[0]
	require.Equal(t, "Node", sig.ReturnType().Name())
	require.True(t, sig.ReturnType().IsInterface())
	require.Len(t, sig.Arguments(), 1)
	require.Equal(t, "::Node::cloneNode::deep", sig.Arguments()[0].QName())
	require.True(t, sig.Arguments()[0].Optional())

	enum := decls[1].(*Enum)
	require.Equal(t, []string{"next", "previous"}, enum.Values())
}

func TestSyntaxErrorKind(t *testing.T) {
	p := NewParser()
	err := p.Parse("interface {")
	require.Error(t, err)

	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	require.NotZero(t, serr.Pos.Line)
}

func TestSemanticErrorKind(t *testing.T) {
	p := NewParser()
	err := p.Parse(`interface A {}; interface A {};`)
	require.Error(t, err)

	var werr *WebIDLError
	require.ErrorAs(t, err, &werr)
	require.Contains(t, werr.Message, "conflicting declaration of ::A")
}

func TestDeclsBeforeErrorAreKept(t *testing.T) {
	p := NewParser()
	err := p.Parse(`
interface Keeper {};
interface Keeper {};
interface Dropped {};`)
	require.Error(t, err)

	// The fragment failed partway, but Keeper survived and later fragments
	// still accumulate.
	require.NoError(t, p.Parse(`interface Later {};`))
	decls, err := p.Finish()
	require.NoError(t, err)
	require.Equal(t, []string{"Keeper", "Later"}, declNames(decls))
}

func TestForwardReferences(t *testing.T) {
	decls := mustFinish(t,
		`interface A { attribute B other; };`,
		`interface B { attribute A other; };`)

	a := decls[0].(*Interface)
	typ := a.Members()[0].(*Attribute).Type()
	require.Equal(t, "B", typ.Name())
	require.True(t, typ.IsInterface())
}

func TestUnknownIdentifier(t *testing.T) {
	err := finishErr(t, `interface A { attribute Missing other; };`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown identifier Missing")
}

func TestDoubleFinish(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.Parse(`interface A {};`))

	_, err := p.Finish()
	require.NoError(t, err)

	_, err = p.Finish()
	require.Error(t, err)
	require.Contains(t, err.Error(), "finish already called")

	err = p.Parse(`interface B {};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "finish already called")
}

func TestReset(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.Parse(`interface A {};`))
	_, err := p.Finish()
	require.NoError(t, err)

	// Reset drops everything, including the finished flag; the same name can
	// be declared again.
	require.NoError(t, p.Reset().Parse(`interface A { attribute long x; };`))
	decls, err := p.Finish()
	require.NoError(t, err)
	require.Len(t, decls, 1)
	require.Len(t, decls[0].(*Interface).Members(), 1)
}

func TestConstructorSynthesis(t *testing.T) {
	decls := mustFinish(t, `
[Constructor,
 Constructor(DOMString url),
 Constructor(DOMString url, boolean async)]
interface Request {};`)

	iface := decls[0].(*Interface)
	ctor := iface.Ctor()
	require.NotNil(t, ctor)
	require.Equal(t, "constructor", ctor.Name())
	require.Equal(t, "::Request::constructor", ctor.QName())
	require.True(t, ctor.IsStatic())
	require.Len(t, ctor.Signatures(), 3)

	for _, sig := range ctor.Signatures() {
		require.Equal(t, "Request (Wrapper)", sig.ReturnType().Name())
	}
	require.Empty(t, ctor.Signatures()[0].Arguments())

	args := ctor.Signatures()[2].Arguments()
	require.Len(t, args, 2)
	require.Equal(t, "::Request::constructor::url", args[0].QName())
	require.Equal(t, "::Request::constructor::async", args[1].QName())
}

func TestConstructorBadArguments(t *testing.T) {
	p := NewParser()
	err := p.Parse(`[Constructor=Foo] interface Request {};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid arguments to Constructor")
}

func TestArrayBufferFamily(t *testing.T) {
	decls := mustFinish(t, `
interface Buffers {
  attribute ArrayBuffer plain;
  attribute ArrayBuffer? maybe;
  attribute ArrayBuffer[] many;
  attribute sequence<ArrayBuffer> seq;
  attribute Float64Array floats;
};`)

	members := decls[0].(*Interface).Members()
	var names []string
	for _, m := range members {
		typ := m.(*Attribute).Type()
		names = append(names, typ.Name())
		require.True(t, typ.IsSpiderMonkeyInterface(), "member %s", m.Name())
	}
	want := []string{
		"ArrayBuffer",
		"ArrayBufferOrNull",
		"ArrayBufferArray",
		"ArrayBufferSequence",
		"Float64Array",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("type names mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumChecks(t *testing.T) {
	err := finishErr(t, `enum E { "a", "a" };`)
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate enum value "a"`)
}

func TestDictionaryChecks(t *testing.T) {
	err := finishErr(t, `dictionary D { required long x = 4; };`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot have a default value")

	decls := mustFinish(t, `dictionary D { required long x; long y = 4; };`)
	d := decls[0].(*Dictionary)
	require.True(t, d.Members()[0].Required())
	require.Nil(t, d.Members()[0].Default())
	require.NotNil(t, d.Members()[1].Default())
}

func TestNullableOfNullable(t *testing.T) {
	err := finishErr(t, `interface A { attribute long?? x; };`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot make a nullable type nullable")

	// The same shape hidden behind a typedef is caught during Finish.
	err = finishErr(t,
		`typedef long? MaybeLong;`,
		`interface A { attribute MaybeLong? x; };`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot make a nullable type nullable")
}

func TestNullablePromise(t *testing.T) {
	err := finishErr(t, `interface A { attribute Promise<void>? p; };`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Promise types cannot be nullable")
}

func TestTypedefResolution(t *testing.T) {
	decls := mustFinish(t,
		`typedef sequence<Point> PointList;`,
		`interface Point { attribute double x; };`,
		`interface Path { attribute PointList points; };`)

	path := decls[2].(*Interface)
	typ := path.Members()[0].(*Attribute).Type()
	require.Equal(t, "PointSequence", typ.Name())
	require.True(t, typ.IsSequence())
}

func TestTypedefCycle(t *testing.T) {
	err := finishErr(t,
		`typedef B A;`,
		`typedef A B;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "alias cycle")
}

func TestTypedefCycleThroughWrappers(t *testing.T) {
	// Cycles hidden inside a wrapper must be errors, not unbounded
	// recursion in the type walk.
	cases := []struct {
		name  string
		input []string
	}{
		{"union", []string{`typedef (long or Foo) Foo;`}},
		{"array", []string{`typedef Foo[] Foo;`}},
		{"sequence", []string{`typedef sequence<Foo> Foo;`}},
		{"nullable", []string{`typedef Foo? Foo;`}},
		{"promise", []string{`typedef Promise<Foo> Foo;`}},
		{"record", []string{`typedef record<DOMString, Foo> Foo;`}},
		{"indirect union", []string{
			`typedef (long or B) A;`,
			`typedef sequence<A> B;`,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := finishErr(t, tc.input...)
			require.Error(t, err)
			require.Contains(t, err.Error(), "alias cycle")
		})
	}

	// A typedef that merely uses another typedef twice is not a cycle.
	mustFinish(t,
		`typedef long Handle;`,
		`typedef (Handle or sequence<Handle>) Handles;`)
}
