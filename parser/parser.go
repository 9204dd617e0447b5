// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// parser package defines the parser and lexer for translating WebIDL
// (http://www.w3.org/TR/WebIDL/) into an AST.
package parser

import (
	"fmt"

	"github.com/idlkit/webidl/ast"
)

// tokenTypeChecker is a function that classifies token kinds.
type tokenTypeChecker func(kind tokenType) bool

// commentedLexeme is a lexeme with comments attached.
type commentedLexeme struct {
	lexeme
	comments []string
}

// sourceParser holds the state of the parser.
type sourceParser struct {
	startIndex        bytePosition            // The start index for position decoration on nodes.
	lex               *peekableLexer          // a reference to the lexer used for tokenization
	nodes             nodeStack               // the stack of the current nodes
	currentToken      commentedLexeme         // the current token
	previousToken     commentedLexeme         // the previous token
	ignoredTokenTypes map[tokenType]struct{}  // the token types skipped by the parser
}

// buildParser returns a new sourceParser instance.
func buildParser(lexer *lexer, startIndex bytePosition) *sourceParser {
	newLexeme := func() commentedLexeme {
		return commentedLexeme{lexeme: lexeme{tokenTypeEOF, 0, ""}}
	}
	return &sourceParser{
		startIndex:    startIndex,
		lex:           peekableLex(lexer),
		currentToken:  newLexeme(),
		previousToken: newLexeme(),
		ignoredTokenTypes: map[tokenType]struct{}{
			tokenTypeWhitespace: {},
			tokenTypeComment:    {},
		},
	}
}

// createErrorNode creates a new error node and returns it.
func (p *sourceParser) createErrorNode(format string, args ...interface{}) *ast.ErrorNode {
	n := &ast.ErrorNode{Message: fmt.Sprintf(format, args...)}
	p.decorateStartRuneAndComments(n, p.currentToken)
	p.decorateEndRune(n, p.previousToken)
	return n
}

// node decorates the given node with the current token's position as its start
// position and pushes it onto the nodes stack. The returned function pops the
// node and decorates its end position.
func (p *sourceParser) node(node ast.Node) func() {
	p.decorateStartRuneAndComments(node, p.currentToken)
	p.nodes.push(node)
	return func() {
		if p.currentNode() == nil {
			panic(fmt.Sprintf("No current node on stack. Token: %s", p.currentToken.value))
		}

		p.decorateEndRune(p.currentNode(), p.previousToken)
		p.nodes.pop()
	}
}

// decorateStartRuneAndComments decorates the given node with the location of the given token as its
// starting rune, as well as any comments attached to the token.
func (p *sourceParser) decorateStartRuneAndComments(node ast.Node, token commentedLexeme) {
	b := node.NodeBase()
	b.Start = int(token.position) + int(p.startIndex)
	b.Comments = append(b.Comments, token.comments...)
}

// decorateEndRune decorates the given node with the location of the given token as its
// ending rune.
func (p *sourceParser) decorateEndRune(node ast.Node, token commentedLexeme) {
	node.NodeBase().End = int(token.position) + len(token.value) - 1 + int(p.startIndex)
}

// currentNode returns the node at the top of the stack.
func (p *sourceParser) currentNode() ast.Node {
	return p.nodes.topValue()
}

// consumeToken advances the lexer forward, returning the next token.
func (p *sourceParser) consumeToken() commentedLexeme {
	var comments []string

	for {
		token := p.lex.nextToken()

		if token.kind == tokenTypeComment {
			comments = append(comments, token.value)
		}

		if _, ok := p.ignoredTokenTypes[token.kind]; !ok {
			p.previousToken = p.currentToken
			p.currentToken = commentedLexeme{token, comments}
			return p.currentToken
		}
	}
}

// isToken returns true if the current token matches one of the types given.
func (p *sourceParser) isToken(types ...tokenType) bool {
	for _, kind := range types {
		if p.currentToken.kind == kind {
			return true
		}
	}

	return false
}

// nextToken returns the next token found, without advancing the parser. Used for
// lookahead.
func (p *sourceParser) nextToken() lexeme {
	var counter int
	for {
		token := p.lex.peekToken(counter + 1)
		counter = counter + 1

		if _, ok := p.ignoredTokenTypes[token.kind]; !ok {
			return token
		}
	}
}

// isNextToken returns true if the *next* token matches one of the types given.
func (p *sourceParser) isNextToken(types ...tokenType) bool {
	token := p.nextToken()

	for _, kind := range types {
		if token.kind == kind {
			return true
		}
	}

	return false
}

// isIdentifier returns true if the current token is an identifier with the
// given value. WebIDL keywords are lexed as identifiers.
func (p *sourceParser) isIdentifier(value string) bool {
	return p.isToken(tokenTypeIdentifier) && p.currentToken.value == value
}

// isNextIdentifier returns true if the next token is an identifier with the
// given value.
func (p *sourceParser) isNextIdentifier(value string) bool {
	token := p.nextToken()
	return token.kind == tokenTypeIdentifier && token.value == value
}

// tryConsumeKeyword attempts to consume an expected keyword token.
func (p *sourceParser) tryConsumeKeyword(keyword string) bool {
	if !p.isIdentifier(keyword) {
		return false
	}

	p.consumeToken()
	return true
}

// consumeKeyword consumes an expected keyword token or adds an error node.
func (p *sourceParser) consumeKeyword(keyword string) bool {
	if !p.tryConsumeKeyword(keyword) {
		p.emitError("Expected keyword %s, found token %v", keyword, p.currentToken.kind)
		return false
	}
	return true
}

// tryConsumeIdentifier attempts to consume an expected identifier.
func (p *sourceParser) tryConsumeIdentifier() (string, bool) {
	if !p.isToken(tokenTypeIdentifier) {
		return "", false
	}

	value := p.currentToken.value
	p.consumeToken()
	return value, true
}

// consumeIdentifier consumes an expected identifier token or adds an error node.
func (p *sourceParser) consumeIdentifier() string {
	if identifier, ok := p.tryConsumeIdentifier(); ok {
		return identifier
	}

	p.emitError("Expected identifier, found token %v", p.currentToken.kind)
	return ""
}

// emitError creates a new error node and attaches it as a child of the current
// node.
func (p *sourceParser) emitError(format string, args ...interface{}) {
	errorNode := p.createErrorNode(format, args...)
	b := p.currentNode().NodeBase()
	b.Errors = append(b.Errors, errorNode)
}

// consume performs consumption of the next token if it matches any of the given
// types and returns it. If no matching type is found, adds an error node.
func (p *sourceParser) consume(types ...tokenType) (lexeme, bool) {
	token, ok := p.tryConsume(types...)
	if !ok {
		p.emitError("Expected one of: %v, found: %v", types, p.currentToken.kind)
	}
	return token, ok
}

// tryConsume performs consumption of the next token if it matches any of the given
// types and returns it.
func (p *sourceParser) tryConsume(types ...tokenType) (lexeme, bool) {
	if p.isToken(types...) {
		token := p.currentToken
		p.consumeToken()
		return token.lexeme, true
	}

	return lexeme{tokenTypeError, -1, ""}, false
}
