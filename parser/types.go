package parser

import (
	"strconv"

	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/token"
)

// parseType parses the full Union production, the entry point for any
// type expression context (property type, alias body, extends clause
// element, type argument, array element, ...).
func (p *Parser) parseType() (ast.TypeNode, error) {
	return p.parseUnion()
}

func (p *Parser) parseUnion() (ast.TypeNode, error) {
	if p.isPunct("|") {
		p.advance()
	}

	first, err := p.parseIntersection()
	if err != nil {
		return nil, err
	}

	members := []ast.TypeNode{first}

	for p.isPunct("|") {
		p.advance()

		m, err := p.parseIntersection()
		if err != nil {
			return nil, err
		}

		members = append(members, m)
	}

	if len(members) == 1 {
		return members[0], nil
	}

	return &ast.Union{Members: members}, nil
}

func (p *Parser) parseIntersection() (ast.TypeNode, error) {
	if p.isPunct("&") {
		p.advance()
	}

	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	members := []ast.TypeNode{first}

	for p.isPunct("&") {
		p.advance()

		m, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}

		members = append(members, m)
	}

	if len(members) == 1 {
		return members[0], nil
	}

	return &ast.Intersection{Members: members}, nil
}

func (p *Parser) parsePostfix() (ast.TypeNode, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.isPunct("[") && p.peekAt(1).Kind == token.Punctuation && p.peekAt(1).Value == "]" {
		p.advance() // [
		p.advance() // ]
		n = &ast.Array{Element: n}
	}

	return n, nil
}

func (p *Parser) parsePrimary() (ast.TypeNode, error) {
	tok := p.peek()

	switch {
	case tok.Kind == token.Primitive:
		p.advance()

		switch tok.Value {
		case "true":
			return &ast.LiteralBoolean{Value: true}, nil
		case "false":
			return &ast.LiteralBoolean{Value: false}, nil
		default:
			return &ast.Primitive{Kind: ast.PrimitiveKind(tok.Value)}, nil
		}

	case tok.Kind == token.String:
		p.advance()

		return &ast.LiteralString{Value: tok.Value}, nil

	case tok.Kind == token.Number:
		p.advance()

		f, _ := strconv.ParseFloat(tok.Value, 64)

		return &ast.LiteralNumber{Value: f}, nil

	case tok.Kind == token.Punctuation && tok.Value == "(":
		p.advance()

		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}

		if err := p.expectPunct(")", "')'"); err != nil {
			return nil, err
		}

		return &ast.Parenthesized{Inner: inner}, nil

	case tok.Kind == token.Punctuation && tok.Value == "[":
		return p.parseTuple()

	case tok.Kind == token.Punctuation && tok.Value == "{":
		return p.parseObjectType()

	case tok.Kind == token.Keyword && tok.Value == "readonly":
		p.advance()

		return p.parsePostfix()

	case tok.Kind == token.Identifier:
		return p.parseTypeReference()

	default:
		return nil, newParseError(tok, "a type")
	}
}

// parseTypeReference parses Ident ('<' Union (',' Union)* '>')? and
// resolves the fixed set of built-in generic names handled structurally
// by the parser itself (Array, Record, Promise); see spec 4.2.
func (p *Parser) parseTypeReference() (ast.TypeNode, error) {
	nameTok := p.advance()
	name := nameTok.Value

	var args []ast.TypeNode

	if p.isPunct("<") {
		p.advance()

		for {
			arg, err := p.parseUnion()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if p.isPunct(",") {
				p.advance()

				continue
			}

			break
		}

		if err := p.expectPunct(">", "'>'"); err != nil {
			return nil, err
		}
	}

	switch {
	case name == "Array" && len(args) == 1:
		return &ast.Array{Element: args[0]}, nil
	case name == "Record" && len(args) == 2:
		return &ast.Record{Key: args[0], Value: args[1]}, nil
	case name == "Promise" && len(args) == 1:
		return args[0], nil
	}

	if len(args) == 0 {
		return &ast.Reference{Name: name}, nil
	}

	return &ast.Reference{Name: name, TypeArgs: args}, nil
}

// parseTuple parses '[' (Element (',' Element)*)? ']'.
func (p *Parser) parseTuple() (ast.TypeNode, error) {
	if err := p.expectPunct("[", "'['"); err != nil {
		return nil, err
	}

	var elements []ast.TupleElement

	for !p.isPunct("]") {
		el, err := p.parseTupleElement()
		if err != nil {
			return nil, err
		}

		elements = append(elements, el)

		if p.isPunct(",") {
			p.advance()

			continue
		}

		break
	}

	if err := p.expectPunct("]", "']'"); err != nil {
		return nil, err
	}

	return &ast.Tuple{Elements: elements}, nil
}

func (p *Parser) parseTupleElement() (ast.TupleElement, error) {
	rest := p.consumeEllipsis()

	label := ""
	if p.peek().Kind == token.Identifier && p.peekAt(1).Kind == token.Punctuation && p.peekAt(1).Value == ":" {
		label = p.advance().Value
		p.advance() // ':'
	}

	typ, err := p.parseUnion()
	if err != nil {
		return ast.TupleElement{}, err
	}

	optional := false
	if p.isPunct("?") {
		p.advance()

		optional = true
	}

	return ast.TupleElement{Type: typ, Optional: optional, Label: label, Rest: rest}, nil
}

// consumeEllipsis consumes three consecutive '.' punctuation tokens, if
// present, and reports whether it did. The tokenizer emits each '.' as a
// separate single-char punctuation token (spec 4.1's punctuation set).
func (p *Parser) consumeEllipsis() bool {
	if p.isPunct(".") && p.peekAt(1).Kind == token.Punctuation && p.peekAt(1).Value == "." &&
		p.peekAt(2).Kind == token.Punctuation && p.peekAt(2).Value == "." {
		p.advance()
		p.advance()
		p.advance()

		return true
	}

	return false
}

// parseObjectType parses an inline object type, sharing the member grammar
// with interface bodies.
func (p *Parser) parseObjectType() (ast.TypeNode, error) {
	props, idx, err := p.parseObjectBody()
	if err != nil {
		return nil, err
	}

	return &ast.Object{Properties: props, Index: idx}, nil
}

// parseObjectBody parses "{ member (',' | ';' member)* (',' | ';')? }"
// shared by inline object types and interface bodies.
func (p *Parser) parseObjectBody() ([]ast.Property, *ast.IndexSignature, error) {
	if err := p.expectPunct("{", "'{'"); err != nil {
		return nil, nil, err
	}

	var (
		props []ast.Property
		index *ast.IndexSignature
	)

	for !p.isPunct("}") {
		if tok := p.peek(); tok.Kind == token.JSDoc {
			p.pendingDoc = token.ParseJSDoc(tok.Value)
			p.advance()

			continue
		}

		if p.looksLikeIndexSignature() {
			idx, err := p.parseIndexSignature()
			if err != nil {
				return nil, nil, err
			}

			index = idx
		} else {
			prop, err := p.parseProperty()
			if err != nil {
				return nil, nil, err
			}

			props = append(props, prop)
		}

		if p.isPunct(",") || p.isPunct(";") {
			p.advance()

			continue
		}

		break
	}

	if err := p.expectPunct("}", "'}'"); err != nil {
		return nil, nil, err
	}

	return props, index, nil
}

// looksLikeIndexSignature detects "[ identifier :" lookahead per spec 4.2.
func (p *Parser) looksLikeIndexSignature() bool {
	return p.isPunct("[") &&
		(p.peekAt(1).Kind == token.Identifier || p.peekAt(1).Kind == token.Keyword || p.peekAt(1).Kind == token.Primitive) &&
		p.peekAt(2).Kind == token.Punctuation && p.peekAt(2).Value == ":"
}

func (p *Parser) parseIndexSignature() (*ast.IndexSignature, error) {
	if err := p.expectPunct("[", "'['"); err != nil {
		return nil, err
	}

	p.advance() // key identifier name, not semantically used

	if err := p.expectPunct(":", "':'"); err != nil {
		return nil, err
	}

	keyType, err := p.parseUnion()
	if err != nil {
		return nil, err
	}

	if err := p.expectPunct("]", "']'"); err != nil {
		return nil, err
	}

	if err := p.expectPunct(":", "':'"); err != nil {
		return nil, err
	}

	valueType, err := p.parseUnion()
	if err != nil {
		return nil, err
	}

	return &ast.IndexSignature{KeyType: keyType, ValueType: valueType}, nil
}

func (p *Parser) parseProperty() (ast.Property, error) {
	doc := p.takeDoc()

	readonly := false
	if p.isKeyword("readonly") {
		readonly = true
		p.advance()
	}

	nameTok := p.peek()

	switch nameTok.Kind {
	case token.Identifier, token.Keyword, token.Primitive, token.String:
		p.advance()
	default:
		return ast.Property{}, newParseError(nameTok, "a property name")
	}

	optional := false
	if p.isPunct("?") {
		p.advance()

		optional = true
	}

	if err := p.expectPunct(":", "':'"); err != nil {
		return ast.Property{}, err
	}

	typ, err := p.parseUnion()
	if err != nil {
		return ast.Property{}, err
	}

	prop := ast.Property{
		Name:     nameTok.Value,
		Type:     typ,
		Optional: optional,
		Readonly: readonly,
	}

	if doc != nil {
		prop.Description = doc.Description
		prop.Tags = doc.Tags
	}

	return prop, nil
}
