// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on design first introduced in: http://blog.golang.org/two-go-talks-lexical-scanning-in-go-and
// Portions copied and modified from: https://github.com/golang/go/blob/master/src/text/template/parse/lex.go

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EOFRUNE is returned by next when the end of input is reached.
const EOFRUNE = rune(-1)

// bytePosition is a rune offset into the source text.
type bytePosition int

// lexeme represents a token returned from the scanner.
type lexeme struct {
	kind     tokenType    // The type of this lexeme.
	position bytePosition // The starting position of this token in the input string.
	value    string       // The textual value of this token.
}

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the scanner.
type lexer struct {
	input        string           // the string being scanned
	start        bytePosition     // start position of this token
	pos          bytePosition     // current position in the input
	width        int              // width of last rune read from input
	tokens       chan lexeme      // channel of scanned lexemes
	isWhitespace tokenTypeChecker // reports whether a token kind is whitespace
}

// buildlex creates a new scanner for the input string and starts it running.
func buildlex(input string, initial stateFn, isWhitespace tokenTypeChecker) *lexer {
	l := &lexer{
		input:        input,
		tokens:       make(chan lexeme),
		isWhitespace: isWhitespace,
	}
	go l.run(initial)
	return l
}

// run lexes the input by executing state functions until the state is nil.
func (l *lexer) run(initial stateFn) {
	for state := initial; state != nil; {
		state = state(l)
	}
	close(l.tokens)
}

// nextToken returns the next token from the input. Once the input is
// exhausted, EOF tokens are returned forever.
func (l *lexer) nextToken() lexeme {
	token, ok := <-l.tokens
	if !ok {
		return lexeme{tokenTypeEOF, l.pos, ""}
	}
	return token
}

// emit passes a lexeme back to the client.
func (l *lexer) emit(kind tokenType) {
	l.tokens <- lexeme{kind, l.start, l.input[l.start:l.pos]}
	l.start = l.pos
}

// next returns the next rune in the input.
func (l *lexer) next() rune {
	if int(l.pos) >= len(l.input) {
		l.width = 0
		return EOFRUNE
	}

	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += bytePosition(w)
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *lexer) backup() {
	l.pos -= bytePosition(l.width)
}

// accept consumes the next rune if it's from the valid set.
func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}

	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *lexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// acceptString consumes the given string if it is next in the input.
func (l *lexer) acceptString(s string) bool {
	if strings.HasPrefix(l.input[l.pos:], s) {
		l.pos += bytePosition(len(s))
		l.width = 0
		return true
	}
	return false
}

// drain consumes the remaining tokens so the lexing goroutine exits. Must
// be called once the caller stops reading tokens before EOF.
func (l *lexer) drain() {
	for range l.tokens {
	}
}

// errorf emits an error lexeme and terminates the scan.
func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.tokens <- lexeme{tokenTypeError, l.start, fmt.Sprintf(format, args...)}
	return nil
}

// buildLexUntil returns a stateFn that consumes runes while the checker
// reports true and then emits them as a single lexeme of the given kind.
func buildLexUntil(kind tokenType, checker func(r rune) (bool, error)) stateFn {
	return func(l *lexer) stateFn {
		for {
			cont, err := checker(l.peek())
			if err != nil {
				return l.errorf("%v", err)
			}
			if !cont {
				break
			}
			l.next()
		}

		l.emit(kind)
		return lexSource
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func isNewline(r rune) bool {
	return r == '\r' || r == '\n'
}

// isAlphaNumeric reports whether r is an alphabetic, digit, or underscore.
func isAlphaNumeric(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
