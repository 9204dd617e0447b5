package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	file := &File{
		Declarations: []Decl{
			&Interface{
				Name: "Foo",
				Members: []*Member{
					{Name: "bar", Type: &SequenceType{Elem: &TypeName{Name: "long"}}},
				},
			},
			&Typedef{Name: "Alias", Type: &NullableType{Type: &TypeName{Name: "Foo"}}},
		},
	}

	var names []string
	Inspect(file, func(n Node) bool {
		if tn, ok := n.(*TypeName); ok {
			names = append(names, tn.Name)
		}
		return true
	})
	require.Equal(t, []string{"long", "Foo"}, names)

	// Returning false prunes the subtree.
	var count int
	Inspect(file, func(n Node) bool {
		count++
		_, isIface := n.(*Interface)
		return !isIface
	})
	// file, interface, typedef, nullable, typename
	require.Equal(t, 5, count)
}

func TestErrors(t *testing.T) {
	file := &File{
		Declarations: []Decl{
			&Interface{
				Name: "Foo",
				Members: []*Member{
					{
						Name: "bad",
						Base: Base{Errors: []*ErrorNode{{Message: "inner"}}},
					},
				},
			},
		},
	}
	file.Errors = []*ErrorNode{{Message: "outer"}}

	errs := Errors(file)
	require.Len(t, errs, 2)
	require.Equal(t, "outer", errs[0].Message)
	require.Equal(t, "inner", errs[1].Message)
}
