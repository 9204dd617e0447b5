package idl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func memberNames(members []Member) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name())
	}
	return names
}

func TestSpecialMethodsCombination(t *testing.T) {
	decls := mustFinish(t, `
interface Bag {
  setter creator void (unsigned long index, any value);
  getter deleter DOMString (DOMString name);
  setter creator void (DOMString name, any value);
};`)

	iface := decls[0].(*Interface)
	names := memberNames(iface.Members())
	want := []string{
		"__indexedsettercreator",
		"__namedgetterdeleter",
		"__namedsettercreator",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("member names mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "::Bag::__indexedsettercreator", iface.Members()[0].QName())

	first := iface.Members()[0].(*Method)
	require.True(t, first.IsSetter())
	require.True(t, first.IsCreator())
	require.False(t, first.IsGetter())
}

func TestSpecialManglingOrderIsFixed(t *testing.T) {
	// Role words always appear in getter/setter/creator/deleter order, no
	// matter how they were written.
	decls := mustFinish(t, `
interface Bag {
  creator setter void (unsigned long index, any value);
};`)

	iface := decls[0].(*Interface)
	require.Equal(t, "__indexedsettercreator", iface.Members()[0].Name())
}

func TestNamedSpecialKeepsIdentifier(t *testing.T) {
	decls := mustFinish(t, `
interface Storage {
  getter DOMString getItem(DOMString key);
};`)

	iface := decls[0].(*Interface)
	require.Equal(t, "getItem", iface.Members()[0].Name())
	require.True(t, iface.Members()[0].(*Method).IsGetter())
}

func TestIndexedDeleterRejected(t *testing.T) {
	err := finishErr(t, `
interface Bag {
  deleter void (unsigned long index);
};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "indexed deleters are not legal on Bag")

	// Named deleters are fine.
	mustFinish(t, `
interface Bag {
  deleter void (DOMString name);
};`)
}

func TestSpecialRequiresArgument(t *testing.T) {
	err := finishErr(t, `
interface Bag {
  getter DOMString ();
};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires at least one argument")
}

func TestOverloadMerging(t *testing.T) {
	decls := mustFinish(t, `
interface Canvas {
  void draw(DOMString path);
  void draw(long x, long y);
};`)

	iface := decls[0].(*Interface)
	require.Len(t, iface.Members(), 1)
	meth := iface.Members()[0].(*Method)
	require.Len(t, meth.Signatures(), 2)
}

func TestOverloadSpecialsMustAgree(t *testing.T) {
	err := finishErr(t, `
interface Canvas {
  getter any item(unsigned long index);
  void item(DOMString name);
};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "conflicting declarations of ::Canvas::item")
}

func TestMemberCollision(t *testing.T) {
	err := finishErr(t, `
interface Node {
  attribute DOMString name;
  void name();
};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "conflicting declarations of ::Node::name")
}

func TestPromiseOverloadConsistency(t *testing.T) {
	err := finishErr(t, `
interface Loader {
  Promise<DOMString> load(DOMString url);
  void load(DOMString url, boolean sync);
};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mix Promise and non-Promise return types")

	mustFinish(t, `
interface Loader {
  Promise<DOMString> load(DOMString url);
  Promise<DOMString> load(DOMString url, boolean sync);
};`)
}

func TestOverloadDistinguishability(t *testing.T) {
	err := finishErr(t, `
interface Canvas {
  void draw(long x);
  void draw(long y);
};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not distinguishable")

	// Same arity with different types is fine.
	mustFinish(t, `
interface Canvas {
  void draw(long x);
  void draw(DOMString path);
};`)
}

func TestLenientFloat(t *testing.T) {
	mustFinish(t, `
interface Sound {
  [LenientFloat] void setVolume(unrestricted double level);
  [LenientFloat] attribute unrestricted float gain;
};`)

	cases := []struct {
		name, input, want string
	}{
		{
			"non-void method",
			`interface S { [LenientFloat] long f(unrestricted double v); };`,
			"non-void method",
		},
		{
			"no float arguments",
			`interface S { [LenientFloat] void f(long v); };`,
			"no unrestricted float arguments",
		},
		{
			"readonly attribute",
			`interface S { [LenientFloat] readonly attribute unrestricted float v; };`,
			"readonly attribute",
		},
		{
			"restricted attribute",
			`interface S { [LenientFloat] attribute double v; };`,
			"non-unrestricted-float type",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := finishErr(t, tc.input)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestPartialMerge(t *testing.T) {
	decls := mustFinish(t,
		`partial interface Window { attribute long scrollX; };`,
		`interface Window { attribute DOMString name; };`,
		`partial interface Window { attribute long scrollY; };`)

	iface := decls[0].(*Interface)
	want := []string{"name", "scrollX", "scrollY"}
	if diff := cmp.Diff(want, memberNames(iface.Members())); diff != "" {
		t.Fatalf("member names mismatch (-want +got):\n%s", diff)
	}
}

func TestPartialOfUnknown(t *testing.T) {
	err := finishErr(t, `partial interface Window { attribute long x; };`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "partial declaration of unknown interface Window")
}

func TestPartialKindMismatch(t *testing.T) {
	err := finishErr(t,
		`dictionary Window {};`,
		`partial interface Window { attribute long x; };`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not match the declaration")
}

func TestIncludes(t *testing.T) {
	decls := mustFinish(t, `
interface Window {};
interface mixin GlobalEventHandlers {
  attribute any onclick;
};
Window includes GlobalEventHandlers;`)

	iface := decls[0].(*Interface)
	require.Len(t, iface.Members(), 1)
	require.Equal(t, "::Window::onclick", iface.Members()[0].QName())

	// The mixin keeps its own copy under its own scope.
	mixin := decls[1].(*Mixin)
	require.Equal(t, "::GlobalEventHandlers::onclick", mixin.Members()[0].QName())
}

func TestIncludesRescopesArguments(t *testing.T) {
	decls := mustFinish(t, `
interface Window {};
interface mixin GlobalEventHandlers {
  void dispatch(DOMString type, any detail);
};
Window includes GlobalEventHandlers;`)

	iface := decls[0].(*Interface)
	meth := iface.Members()[0].(*Method)
	require.Equal(t, "::Window::dispatch", meth.QName())

	args := meth.Signatures()[0].Arguments()
	require.Equal(t, "::Window::dispatch::type", args[0].QName())
	require.Equal(t, "::Window::dispatch::detail", args[1].QName())

	// The mixin's own copy is untouched.
	mixin := decls[1].(*Mixin)
	orig := mixin.Members()[0].(*Method).Signatures()[0].Arguments()
	require.Equal(t, "::GlobalEventHandlers::dispatch::type", orig[0].QName())
}

func TestImplementsStatement(t *testing.T) {
	decls := mustFinish(t, `
interface Window {};
interface mixin Legacy {
  void oldOp();
};
Window implements Legacy;`)

	iface := decls[0].(*Interface)
	require.Len(t, iface.Members(), 1)
	require.Equal(t, "::Window::oldOp", iface.Members()[0].QName())
}

func TestIncludesUnknown(t *testing.T) {
	err := finishErr(t, `Window includes Missing;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown interface Window")
}

func TestInheritance(t *testing.T) {
	decls := mustFinish(t,
		`interface EventTarget {};`,
		`interface Node : EventTarget {};`)

	node := decls[1].(*Interface)
	require.NotNil(t, node.Parent())
	require.Equal(t, "EventTarget", node.Parent().Name())
}

func TestInheritanceCycle(t *testing.T) {
	err := finishErr(t,
		`interface A : B {};`,
		`interface B : A {};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "inheritance cycle")
}

func TestInheritanceKindMismatch(t *testing.T) {
	err := finishErr(t,
		`dictionary D {};`,
		`interface A : D {};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not an interface")
}

func TestDictionaryInheritance(t *testing.T) {
	decls := mustFinish(t,
		`dictionary Base { long x; };`,
		`dictionary Derived : Base { long y; };`)

	derived := decls[1].(*Dictionary)
	require.NotNil(t, derived.Parent())
	require.Equal(t, "Base", derived.Parent().Name())
}

func TestInheritAttribute(t *testing.T) {
	decls := mustFinish(t,
		`interface Base { attribute DOMString mode; };`,
		`interface Derived : Base { inherit attribute DOMString mode; };`)

	derived := decls[1].(*Interface)
	attr := derived.Members()[0].(*Attribute)
	require.True(t, attr.IsInherit())
	require.False(t, attr.IsReadOnly())
}

func TestConstructorNameCollision(t *testing.T) {
	err := finishErr(t, `
[Constructor]
interface Widget {
  void constructor();
};`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "conflicting declarations of ::Widget::constructor")
}

func TestAttributeCannotBeSpecial(t *testing.T) {
	p := NewParser()
	err := p.Parse(`interface A { getter attribute DOMString x; };`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "attributes cannot be special operations")
}
