// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import "github.com/idlkit/webidl/ast"

// nodeStack tracks the nodes currently being constructed by the parser.
type nodeStack struct {
	nodes []ast.Node
}

// topValue returns the node at the top of the stack, or nil when empty.
func (s *nodeStack) topValue() ast.Node {
	if len(s.nodes) == 0 {
		return nil
	}

	return s.nodes[len(s.nodes)-1]
}

// push pushes a node onto the stack.
func (s *nodeStack) push(value ast.Node) {
	s.nodes = append(s.nodes, value)
}

// pop removes the node from the stack and returns it.
func (s *nodeStack) pop() ast.Node {
	if len(s.nodes) == 0 {
		return nil
	}

	value := s.nodes[len(s.nodes)-1]
	s.nodes = s.nodes[:len(s.nodes)-1]
	return value
}
