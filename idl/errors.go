package idl

import "fmt"

// Position is a location in the source text of one Parse call.
type Position struct {
	Offset int // byte offset within the fragment
	Line   int // 1-based
	Col    int // 1-based, in bytes
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Col)
}

// positionAt computes the line/column position of a byte offset in text.
func positionAt(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	pos := Position{Offset: offset, Line: 1, Col: 1}
	for _, c := range []byte(text[:offset]) {
		if c == '\n' {
			pos.Line++
			pos.Col = 1
		} else {
			pos.Col++
		}
	}
	return pos
}

// SyntaxError reports a malformed token stream or grammar violation. It is
// always fatal to the Parse call that produced it.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Message)
}

// WebIDLError reports a semantic violation, either immediately during Parse
// for context-free rules or during Finish for whole-fragment rules. It is
// always fatal; the fragment did not produce a usable model.
type WebIDLError struct {
	Pos     Position
	Message string
}

func (e *WebIDLError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("error: %s", e.Message)
	}
	return fmt.Sprintf("error at %s: %s", e.Pos, e.Message)
}

func syntaxErrorf(pos Position, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func idlErrorf(pos Position, format string, args ...interface{}) *WebIDLError {
	return &WebIDLError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
