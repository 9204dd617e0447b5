// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package parser

import (
	"github.com/idlkit/webidl/ast"
)

// Parse parses the given WebIDL source into a parse tree.
func Parse(input string) *ast.File {
	l := lex(input)
	parser := buildParser(l, bytePosition(0))
	f := parser.consumeTopLevel()

	// The grammar may abort before EOF; unblock the lexing goroutine.
	l.drain()
	return f
}

// consumeTopLevel attempts to consume the top-level constructs of a WebIDL file.
func (p *sourceParser) consumeTopLevel() *ast.File {
	n := &ast.File{}
	defer p.node(n)()

	// Start at the first token.
	p.consumeToken()

	if p.currentToken.kind == tokenTypeError {
		p.emitError("%s", p.currentToken.value)
		return n
	}

Loop:
	for !p.isToken(tokenTypeEOF) {
		switch {
		case p.isToken(tokenTypeError):
			p.emitError("%s", p.currentToken.value)
			break Loop

		case p.isToken(tokenTypeLeftBracket) || p.isIdentifier("interface") ||
			p.isIdentifier("partial") || p.isIdentifier("callback") ||
			p.isIdentifier("dictionary") || p.isIdentifier("enum") ||
			p.isIdentifier("typedef") || p.isIdentifier("namespace"):
			n.Declarations = append(n.Declarations, p.consumeDeclaration())
			continue

		case p.isToken(tokenTypeIdentifier):
			name := p.consumeIdentifier()
			if p.tryConsumeKeyword("implements") {
				impl := &ast.Implementation{Name: name}
				impl.Source = p.consumeIdentifier()
				n.Declarations = append(n.Declarations, impl)
				p.consume(tokenTypeSemicolon)
				continue
			} else if p.tryConsumeKeyword("includes") {
				incl := &ast.Includes{Name: name}
				incl.Source = p.consumeIdentifier()
				n.Declarations = append(n.Declarations, incl)
				p.consume(tokenTypeSemicolon)
				continue
			}
		}
		p.emitError("Unexpected token at root level: %v", p.currentToken)
		break Loop
	}

	return n
}

// consumeDeclaration attempts to consume a declaration, with optional extended
// attributes.
func (p *sourceParser) consumeDeclaration() ast.Decl {
	base := &ast.Base{}
	finish := p.node(base)
	ann := p.tryConsumeAnnotations()
	switch {
	case p.isIdentifier("enum"):
		return p.consumeEnum(ann, base, finish)

	case p.isIdentifier("typedef"):
		return p.consumeTypedef(ann, base, finish)

	case p.isIdentifier("namespace"):
		return p.consumeNamespace(false, ann, base, finish)

	case p.isIdentifier("callback"):
		_ = p.consumeIdentifier()
		if p.tryConsumeKeyword("interface") {
			return p.consumeInterface(false, true, ann, base, finish)
		}
		name := p.consumeIdentifier()
		p.consume(tokenTypeEquals)
		ret := p.consumeType()
		par := p.consumeParameters()
		p.consume(tokenTypeSemicolon)
		finish()
		return &ast.Callback{Base: *base, Name: name, Annotations: ann, Return: ret, Parameters: par}

	case p.isIdentifier("partial"):
		_ = p.consumeIdentifier()
		switch {
		case p.isIdentifier("dictionary"):
			return p.consumeDictionary(true, ann, base, finish)
		case p.isIdentifier("namespace"):
			return p.consumeNamespace(true, ann, base, finish)
		default:
			p.consumeKeyword("interface")
			if p.tryConsumeKeyword("mixin") {
				return p.consumeMixin(true, ann, base, finish)
			}
			return p.consumeInterface(true, false, ann, base, finish)
		}

	case p.isIdentifier("interface"):
		_ = p.consumeIdentifier()
		if p.tryConsumeKeyword("mixin") {
			return p.consumeMixin(false, ann, base, finish)
		}
		return p.consumeInterface(false, false, ann, base, finish)

	case p.isIdentifier("dictionary"):
		return p.consumeDictionary(false, ann, base, finish)

	default:
		p.emitError("Expected declaration, got: %v", p.currentToken)
		// first, consume until '{'
		for !p.isToken(tokenTypeLeftBrace, tokenTypeEOF) {
			p.consumeToken()
		}
		// then consume until '}'
		for !p.isToken(tokenTypeRightBrace, tokenTypeEOF) {
			p.consumeToken()
		}
		p.consume(tokenTypeSemicolon)
		finish()
		return &ast.Interface{Base: *base}
	}
}

func (p *sourceParser) consumeInterface(partial, callback bool, ann []*ast.Annotation, base *ast.Base, finish func()) *ast.Interface {
	n := &ast.Interface{Annotations: ann, Partial: partial, Callback: callback}
	defer func() {
		finish()
		n.Base = *base
	}()

	n.Name = p.consumeIdentifier()

	if _, ok := p.tryConsume(tokenTypeColon); ok {
		n.Inherits = p.consumeIdentifier()
	}

	// {
	p.consume(tokenTypeLeftBrace)

loop:
	for {
		if p.isToken(tokenTypeRightBrace, tokenTypeEOF, tokenTypeError) {
			break
		}

		if p.isIdentifier("serializer") || p.isIdentifier("jsonifier") ||
			(p.isIdentifier("stringifier") && p.isNextToken(tokenTypeSemicolon)) {

			op := &ast.CustomOp{}
			finish := p.node(op)
			op.Name = p.consumeIdentifier()
			_, ok := p.consume(tokenTypeSemicolon)
			finish()

			n.CustomOps = append(n.CustomOps, op)

			if !ok {
				break loop
			}

			continue
		} else if p.isIdentifier("iterable") {
			p.consume(tokenTypeIdentifier)
			iter := &ast.Iterable{}
			finish := p.node(iter)
			p.consume(tokenTypeLeftTri)
			iter.Elem = p.consumeType()
			p.consume(tokenTypeRightTri)
			finish()
			n.Iterable = iter
			_, ok := p.consume(tokenTypeSemicolon)
			if !ok {
				break loop
			}

			continue
		}
		n.Members = append(n.Members, p.consumeMember(false))

		if _, ok := p.consume(tokenTypeSemicolon); !ok {
			break
		}
	}

	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)

	return n
}

func (p *sourceParser) consumeMixin(partial bool, ann []*ast.Annotation, base *ast.Base, finish func()) *ast.Mixin {
	n := &ast.Mixin{Annotations: ann, Partial: partial}
	defer func() {
		finish()
		n.Base = *base
	}()

	n.Name = p.consumeIdentifier()

	// {
	p.consume(tokenTypeLeftBrace)

loop:
	for {
		if p.isToken(tokenTypeRightBrace, tokenTypeEOF, tokenTypeError) {
			break
		}

		if p.isIdentifier("serializer") || p.isIdentifier("jsonifier") ||
			(p.isIdentifier("stringifier") && p.isNextToken(tokenTypeSemicolon)) {
			op := &ast.CustomOp{}
			finish := p.node(op)
			op.Name = p.consumeIdentifier()
			_, ok := p.consume(tokenTypeSemicolon)
			finish()

			n.CustomOps = append(n.CustomOps, op)

			if !ok {
				break loop
			}

			continue
		} else if p.isIdentifier("iterable") {
			p.consume(tokenTypeIdentifier)
			iter := &ast.Iterable{}
			finish := p.node(iter)
			p.consume(tokenTypeLeftTri)
			iter.Elem = p.consumeType()
			p.consume(tokenTypeRightTri)
			finish()
			n.Iterable = iter
			_, ok := p.consume(tokenTypeSemicolon)
			if !ok {
				break loop
			}

			continue
		}
		n.Members = append(n.Members, p.consumeMember(false))

		if _, ok := p.consume(tokenTypeSemicolon); !ok {
			break
		}
	}

	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)

	return n
}

func (p *sourceParser) consumeDictionary(partial bool, ann []*ast.Annotation, base *ast.Base, finish func()) *ast.Dictionary {
	n := &ast.Dictionary{Annotations: ann, Partial: partial}
	defer func() {
		finish()
		n.Base = *base
	}()
	p.consumeKeyword("dictionary")

	n.Name = p.consumeIdentifier()
	if _, ok := p.tryConsume(tokenTypeColon); ok {
		n.Inherits = p.consumeIdentifier()
	}

	// {
	p.consume(tokenTypeLeftBrace)
	for !p.isToken(tokenTypeRightBrace, tokenTypeEOF, tokenTypeError) {
		n.Members = append(n.Members, p.consumeMember(true))

		if _, ok := p.consume(tokenTypeSemicolon); !ok {
			break
		}
	}

	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)
	return n
}

func (p *sourceParser) consumeNamespace(partial bool, ann []*ast.Annotation, base *ast.Base, finish func()) *ast.Namespace {
	n := &ast.Namespace{Annotations: ann, Partial: partial}
	defer func() {
		finish()
		n.Base = *base
	}()
	p.consumeKeyword("namespace")

	n.Name = p.consumeIdentifier()

	// {
	p.consume(tokenTypeLeftBrace)
	for !p.isToken(tokenTypeRightBrace, tokenTypeEOF, tokenTypeError) {
		n.Members = append(n.Members, p.consumeMember(false))

		if _, ok := p.consume(tokenTypeSemicolon); !ok {
			break
		}
	}

	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)
	return n
}

func (p *sourceParser) consumeEnum(ann []*ast.Annotation, base *ast.Base, finish func()) *ast.Enum {
	n := &ast.Enum{Annotations: ann}
	defer func() {
		finish()
		n.Base = *base
	}()
	p.consumeKeyword("enum")
	n.Name = p.consumeIdentifier()

	// {
	p.consume(tokenTypeLeftBrace)
	for !p.isToken(tokenTypeRightBrace, tokenTypeEOF, tokenTypeError) {
		if len(n.Values) != 0 {
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
			// trailing comma
			if p.isToken(tokenTypeRightBrace) {
				break
			}
		}
		n.Values = append(n.Values, p.consumeLiteral())
	}
	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)
	return n
}

func (p *sourceParser) consumeTypedef(ann []*ast.Annotation, base *ast.Base, finish func()) *ast.Typedef {
	n := &ast.Typedef{Annotations: ann}
	defer func() {
		finish()
		n.Base = *base
	}()
	p.consumeKeyword("typedef")
	n.Type = p.consumeType()
	n.Name = p.consumeIdentifier()
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeMember attempts to consume a member definition in a declaration.
func (p *sourceParser) consumeMember(dict bool) *ast.Member {
	n := &ast.Member{}
	defer p.node(n)()

	n.Annotations = p.tryConsumeAnnotations()
	n.Attribute = dict

	if p.tryConsumeKeyword("stringifier") {
		n.Stringifier = true
	}

	if p.tryConsumeKeyword("static") {
		n.Static = true
	}

	// special operations: any combination of getter/setter/creator/deleter
	for p.isIdentifier("getter") || p.isIdentifier("setter") ||
		p.isIdentifier("creator") || p.isIdentifier("deleter") {
		n.Specials = append(n.Specials, p.consumeIdentifier())
	}

	if p.tryConsumeKeyword("legacycaller") {
		n.Legacycaller = true
	}

	if p.tryConsumeKeyword("const") {
		n.Const = true
	}

	if p.tryConsumeKeyword("inherit") {
		n.Inherit = true
	}

	if p.tryConsumeKeyword("readonly") {
		n.Readonly = true
	}

	if p.tryConsumeKeyword("required") {
		n.Required = true
	}

	if p.tryConsumeKeyword("attribute") {
		n.Attribute = true
	}

	if len(n.Annotations) == 0 {
		n.Annotations = p.tryConsumeAnnotations()
	}

	// Consume the type of the member.
	n.Type = p.consumeType()

	// Consume the member's name. Special operations may be nameless.
	n.Name, _ = p.tryConsumeIdentifier()

	// If not an attribute, consume the parameters of the member.
	if !n.Attribute && !n.Const {
		n.Parameters = p.consumeParameters()
	}
	n.Init = p.tryConsumeDefaultValue()
	return n
}

// tryConsumeAnnotations consumes any extended attributes found on the parent node.
func (p *sourceParser) tryConsumeAnnotations() (out []*ast.Annotation) {
	for {
		// [
		if !p.isToken(tokenTypeLeftBracket) || p.isNextToken(tokenTypeRightBracket) {
			return
		}
		p.consume(tokenTypeLeftBracket)

		for {
			// Foo()
			out = append(out, p.consumeAnnotationPart())

			// ,
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
		}

		// ]
		if _, ok := p.consume(tokenTypeRightBracket); !ok {
			return
		}
	}
}

// consumeAnnotationPart consumes an annotation, as found within a set of brackets `[]`.
func (p *sourceParser) consumeAnnotationPart() *ast.Annotation {
	n := &ast.Annotation{}
	defer p.node(n)()

	// Consume the name of the annotation.
	n.Name = p.consumeIdentifier()

	// "="
	if _, ok := p.tryConsume(tokenTypeEquals); ok {
		// Consume (optional) value.

		// "("
		if list, ok := p.tryConsumeIdentifiersList(); ok {
			n.Values = list
		} else {
			n.Value = p.consumeIdentifier()
		}
	} else if p.isToken(tokenTypeLeftParen) {
		// Consume (optional) parameters.
		n.Parameters = p.consumeParameters()
	}

	return n
}

func (p *sourceParser) tryConsumeIdentifiersList() ([]string, bool) {
	// "("
	_, ok := p.tryConsume(tokenTypeLeftParen)
	if !ok {
		return nil, false
	}
	// identifier list
	var list []string
	for {
		list = append(list, p.consumeIdentifier())
		// ","
		if _, ok := p.tryConsume(tokenTypeComma); !ok {
			break
		}
	}
	// ")"
	p.consume(tokenTypeRightParen)
	return list, true
}

// expandedTypeKeywords defines the keywords that form the prefixes for expanded types:
// multi-identifier type names.
var expandedTypeKeywords = map[string][]string{
	"unsigned":     {"short", "long"},
	"long":         {"long"},
	"unrestricted": {"float", "double"},
}

// parametrizedTypeNames are the builtin generic types.
var parametrizedTypeNames = map[string]bool{
	"Promise":     true,
	"record":      true,
	"FrozenArray": true,
}

// consumeType consumes a type reference, including any nullable and array
// suffixes.
func (p *sourceParser) consumeType() ast.Type {
	t := p.consumeTypeBase()
	for {
		if _, ok := p.tryConsume(tokenTypeQuestionMark); ok {
			nl := &ast.NullableType{Base: *t.NodeBase(), Type: t}
			nl.End++
			t = nl
			continue
		}
		if p.isToken(tokenTypeLeftBracket) && p.isNextToken(tokenTypeRightBracket) {
			p.consume(tokenTypeLeftBracket)
			p.consume(tokenTypeRightBracket)
			arr := &ast.ArrayType{Base: *t.NodeBase(), Elem: t}
			arr.End += 2
			t = arr
			continue
		}
		return t
	}
}

func (p *sourceParser) consumeTypeBase() ast.Type {
	base := &ast.Base{}
	finish := p.node(base)
	if p.tryConsumeKeyword("any") {
		finish()
		return &ast.AnyType{Base: *base}
	} else if p.tryConsumeKeyword("sequence") {
		seq := &ast.SequenceType{}
		p.consume(tokenTypeLeftTri)
		seq.Elem = p.consumeType()
		p.consume(tokenTypeRightTri)
		finish()
		seq.Base = *base
		return seq
	}
	if p.isToken(tokenTypeIdentifier) && parametrizedTypeNames[p.currentToken.value] && p.isNextToken(tokenTypeLeftTri) {
		pt := &ast.ParametrizedType{Name: p.consumeIdentifier()}
		p.consume(tokenTypeLeftTri)
		for {
			pt.Elems = append(pt.Elems, p.consumeType())
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
		}
		p.consume(tokenTypeRightTri)
		finish()
		pt.Base = *base
		return pt
	}
	if _, ok := p.tryConsume(tokenTypeLeftParen); ok {
		// "("
		var types []ast.Type
		for {
			types = append(types, p.consumeType())
			if !p.tryConsumeKeyword("or") {
				break
			}
		}
		// ")"
		p.consume(tokenTypeRightParen)
		finish()
		return &ast.UnionType{Base: *base, Types: types}
	}

	identifier := p.consumeIdentifier()
	typeName := identifier

	// If the identifier is the beginning of a possible expanded type name, check for the
	// secondary portion.
	if secondaries, ok := expandedTypeKeywords[identifier]; ok {
		for _, secondary := range secondaries {
			if p.isIdentifier(secondary) {
				typeName += " " + secondary
				p.consume(tokenTypeIdentifier)

				// unsigned long long
				if secondary == "long" && p.isIdentifier("long") {
					typeName += " long"
					p.consume(tokenTypeIdentifier)
				}
				break
			}
		}
	}
	finish()
	return &ast.TypeName{Base: *base, Name: typeName}
}

// consumeParameter attempts to consume a parameter.
func (p *sourceParser) consumeParameter() *ast.Parameter {
	n := &ast.Parameter{}
	defer p.node(n)()
	n.Annotations = p.tryConsumeAnnotations()

	// optional
	if p.tryConsumeKeyword("optional") {
		n.Optional = true
	}

	// Consume the parameter's type.
	n.Type = p.consumeType()
	if _, ok := p.tryConsume(tokenTypeVariadic); ok {
		n.Variadic = true
	}

	// Consume the parameter's name.
	n.Name = p.consumeIdentifier()

	n.Init = p.tryConsumeDefaultValue()

	return n
}

func (p *sourceParser) tryConsumeDefaultValue() *ast.Literal {
	if _, ok := p.tryConsume(tokenTypeEquals); ok {
		return p.consumeLiteral()
	}
	return nil
}

func (p *sourceParser) consumeLiteral() *ast.Literal {
	n := &ast.Literal{}
	defer p.node(n)()

	switch {
	case p.isToken(tokenTypeString):
		token, _ := p.consume(tokenTypeString)
		n.Kind = ast.LiteralString
		n.Value = unquote(token.value)

	case p.isToken(tokenTypeNumber):
		token, _ := p.consume(tokenTypeNumber)
		n.Kind = ast.LiteralNumber
		n.Value = token.value

	case p.isIdentifier("true") || p.isIdentifier("false"):
		n.Kind = ast.LiteralBool
		n.Value = p.consumeIdentifier()

	case p.isIdentifier("null"):
		n.Kind = ast.LiteralNull
		n.Value = p.consumeIdentifier()

	case p.isToken(tokenTypeLeftBracket):
		p.consume(tokenTypeLeftBracket)
		p.consume(tokenTypeRightBracket)
		n.Kind = ast.LiteralSequence

	default:
		p.emitError("Expected literal value, found: %v", p.currentToken.kind)
	}
	return n
}

// unquote strips the surrounding double quotes from a lexed string literal.
func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// consumeParameters attempts to consume a set of parameters.
func (p *sourceParser) consumeParameters() (out []*ast.Parameter) {
	p.consume(tokenTypeLeftParen)
	if _, ok := p.tryConsume(tokenTypeRightParen); ok {
		return
	}

	for {
		out = append(out, p.consumeParameter())
		if _, ok := p.tryConsume(tokenTypeRightParen); ok {
			return
		}

		if _, ok := p.consume(tokenTypeComma); !ok {
			return
		}
	}
}
