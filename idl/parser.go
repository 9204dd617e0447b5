// Package idl parses WebIDL fragments and builds a validated semantic model
// of the declarations they contain.
//
// A Parser accumulates fragments across multiple Parse calls; Finish runs the
// whole-fragment checks (partial merging, reference resolution, overload
// rules) and returns the finished declarations. Reset discards everything and
// returns the parser to its initial state.
package idl

import (
	"github.com/idlkit/webidl/ast"
	"github.com/idlkit/webidl/parser"
)

// Parser accumulates WebIDL fragments and produces a validated model.
type Parser struct {
	builder  *fragmentBuilder
	finished bool
}

// NewParser creates an empty Parser.
func NewParser() *Parser {
	return &Parser{builder: newFragmentBuilder()}
}

// Parse lexes and parses one fragment, lowering its declarations into the
// accumulated model. Grammar violations are reported as *SyntaxError and
// context-free semantic violations as *WebIDLError; either way the offending
// declaration and everything after it in the fragment are discarded, while
// declarations before it are kept.
func (p *Parser) Parse(text string) error {
	if p.finished {
		return idlErrorf(Position{}, "finish already called")
	}

	file := parser.Parse(text)
	if errs := ast.Errors(file); len(errs) > 0 {
		first := errs[0]
		return syntaxErrorf(positionAt(text, first.Start), "%s", first.Message)
	}
	return p.builder.addFragment(text, file)
}

// Finish runs the whole-fragment validation pass and returns the finished
// declarations in the order they were first declared. Finish may be called
// once per accumulation; further Parse or Finish calls fail until Reset.
func (p *Parser) Finish() ([]Decl, error) {
	if p.finished {
		return nil, idlErrorf(Position{}, "finish already called")
	}
	p.finished = true
	return p.builder.finish()
}

// Reset discards all accumulated declarations and pending state, returning
// the parser ready for a fresh accumulation. It returns p for chaining.
func (p *Parser) Reset() *Parser {
	p.builder = newFragmentBuilder()
	p.finished = false
	return p
}
