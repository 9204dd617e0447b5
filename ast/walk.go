package ast

// Inspect traverses the syntax tree rooted at node, depth first, calling fn
// for each node. If fn returns false for a node, its children are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, d := range n.Declarations {
			Inspect(d, fn)
		}

	case *Interface:
		inspectAnnotations(n.Annotations, fn)
		inspectMembers(n.Members, fn)
		for _, op := range n.CustomOps {
			Inspect(op, fn)
		}
		if n.Iterable != nil {
			Inspect(n.Iterable, fn)
		}

	case *Mixin:
		inspectAnnotations(n.Annotations, fn)
		inspectMembers(n.Members, fn)
		for _, op := range n.CustomOps {
			Inspect(op, fn)
		}
		if n.Iterable != nil {
			Inspect(n.Iterable, fn)
		}

	case *Dictionary:
		inspectAnnotations(n.Annotations, fn)
		inspectMembers(n.Members, fn)

	case *Enum:
		inspectAnnotations(n.Annotations, fn)
		for _, v := range n.Values {
			Inspect(v, fn)
		}

	case *Typedef:
		inspectAnnotations(n.Annotations, fn)
		Inspect(n.Type, fn)

	case *Callback:
		inspectAnnotations(n.Annotations, fn)
		if n.Return != nil {
			Inspect(n.Return, fn)
		}
		inspectParameters(n.Parameters, fn)

	case *Namespace:
		inspectAnnotations(n.Annotations, fn)
		inspectMembers(n.Members, fn)

	case *Member:
		inspectAnnotations(n.Annotations, fn)
		if n.Type != nil {
			Inspect(n.Type, fn)
		}
		inspectParameters(n.Parameters, fn)
		if n.Init != nil {
			Inspect(n.Init, fn)
		}

	case *Parameter:
		inspectAnnotations(n.Annotations, fn)
		if n.Type != nil {
			Inspect(n.Type, fn)
		}
		if n.Init != nil {
			Inspect(n.Init, fn)
		}

	case *Annotation:
		inspectParameters(n.Parameters, fn)

	case *Iterable:
		if n.Elem != nil {
			Inspect(n.Elem, fn)
		}

	case *SequenceType:
		Inspect(n.Elem, fn)

	case *ArrayType:
		Inspect(n.Elem, fn)

	case *ParametrizedType:
		for _, e := range n.Elems {
			Inspect(e, fn)
		}

	case *UnionType:
		for _, t := range n.Types {
			Inspect(t, fn)
		}

	case *NullableType:
		Inspect(n.Type, fn)
	}
}

func inspectAnnotations(anns []*Annotation, fn func(Node) bool) {
	for _, a := range anns {
		Inspect(a, fn)
	}
}

func inspectMembers(members []*Member, fn func(Node) bool) {
	for _, m := range members {
		Inspect(m, fn)
	}
}

func inspectParameters(params []*Parameter, fn func(Node) bool) {
	for _, p := range params {
		Inspect(p, fn)
	}
}

// Errors collects every error node attached anywhere in the tree, in
// traversal order.
func Errors(node Node) []*ErrorNode {
	var out []*ErrorNode
	Inspect(node, func(n Node) bool {
		out = append(out, n.NodeBase().Errors...)
		return true
	})
	return out
}
