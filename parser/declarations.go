package parser

import (
	"strconv"

	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/token"
)

func (p *Parser) parseInterface(exported bool) (ast.Declaration, error) {
	doc := p.takeDoc()

	p.advance() // 'interface'

	nameTok := p.peek()
	if nameTok.Kind != token.Identifier {
		return nil, newParseError(nameTok, "an interface name")
	}

	p.advance()

	typeParams := p.parseTypeParamNames()

	var extends []ast.TypeNode

	if p.isKeyword("extends") {
		p.advance()

		for {
			t, err := p.parseUnion()
			if err != nil {
				return nil, err
			}

			extends = append(extends, t)

			if p.isPunct(",") {
				p.advance()

				continue
			}

			break
		}
	}

	props, idx, err := p.parseObjectBody()
	if err != nil {
		return nil, err
	}

	decl := &ast.Interface{
		Base:       baseFrom(nameTok.Value, exported, doc),
		Properties: props,
		Index:      idx,
		Extends:    extends,
		TypeParams: typeParams,
	}

	return decl, nil
}

func (p *Parser) parseTypeAlias(exported bool) (ast.Declaration, error) {
	doc := p.takeDoc()

	p.advance() // 'type'

	nameTok := p.peek()
	if nameTok.Kind != token.Identifier {
		return nil, newParseError(nameTok, "a type alias name")
	}

	p.advance()

	typeParams := p.parseTypeParamNames()

	if err := p.expectPunct("=", "'='"); err != nil {
		return nil, err
	}

	typ, err := p.parseUnion()
	if err != nil {
		return nil, err
	}

	if p.isPunct(";") {
		p.advance()
	}

	decl := &ast.TypeAlias{
		Base:       baseFrom(nameTok.Value, exported, doc),
		Type:       typ,
		TypeParams: typeParams,
	}

	return decl, nil
}

func (p *Parser) parseEnum(exported bool) (ast.Declaration, error) {
	doc := p.takeDoc()

	p.advance() // 'enum'

	nameTok := p.peek()
	if nameTok.Kind != token.Identifier {
		return nil, newParseError(nameTok, "an enum name")
	}

	p.advance()

	if err := p.expectPunct("{", "'{'"); err != nil {
		return nil, err
	}

	var (
		members []ast.EnumMember
		next    float64
	)

	for !p.isPunct("}") {
		if tok := p.peek(); tok.Kind == token.JSDoc {
			p.advance()

			continue
		}

		memberTok := p.peek()
		if memberTok.Kind != token.Identifier && memberTok.Kind != token.Keyword {
			return nil, newParseError(memberTok, "an enum member name")
		}

		p.advance()

		member := ast.EnumMember{Name: memberTok.Value}

		if p.isPunct("=") {
			p.advance()

			val, consumed := p.parseEnumInitializer()
			if consumed {
				member.Value = val
			}
		}

		if member.Value == nil {
			member.Value = next
		}

		if f, ok := member.Value.(float64); ok {
			next = f + 1
		}

		members = append(members, member)

		if p.isPunct(",") {
			p.advance()

			continue
		}

		break
	}

	if err := p.expectPunct("}", "'}'"); err != nil {
		return nil, err
	}

	return &ast.Enum{
		Base:    baseFrom(nameTok.Value, exported, doc),
		Members: members,
	}, nil
}

// parseEnumInitializer parses a string or number literal initializer.
// Non-literal initializers (e.g. computed expressions) are tolerated by
// skipping tokens up to the next ',' or '}' at this nesting depth, per
// spec 4.2's "mixed or non-literal initializers are tolerated".
func (p *Parser) parseEnumInitializer() (any, bool) {
	tok := p.peek()

	switch tok.Kind {
	case token.String:
		p.advance()

		return tok.Value, true
	case token.Number:
		p.advance()

		f, _ := strconv.ParseFloat(tok.Value, 64)

		return f, true
	}

	depth := 0

	for {
		t := p.peek()
		if t.Kind == token.EOF {
			return nil, false
		}

		if t.Kind == token.Punctuation {
			switch t.Value {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					return nil, false
				}

				depth--
			case ",":
				if depth == 0 {
					return nil, false
				}
			}
		}

		p.advance()
	}
}

// parseTypeParamNames consumes an optional '<...>' type parameter list,
// retaining only the positional parameter names (spec 4.2).
func (p *Parser) parseTypeParamNames() []string {
	if !p.isPunct("<") {
		return nil
	}

	p.advance()

	var names []string

	depth := 1
	expectName := true

	for depth > 0 {
		tok := p.peek()
		if tok.Kind == token.EOF {
			break
		}

		if tok.Kind == token.Punctuation {
			switch tok.Value {
			case "<":
				depth++
				p.advance()

				continue
			case ">":
				depth--
				p.advance()

				continue
			case ",":
				if depth == 1 {
					expectName = true
				}

				p.advance()

				continue
			}
		}

		if expectName && depth == 1 && tok.Kind == token.Identifier {
			names = append(names, tok.Value)
			expectName = false
		}

		p.advance()
	}

	return names
}

func baseFrom(name string, exported bool, doc *ast.JSDoc) ast.Base {
	b := ast.Base{Name: name, Exported: exported}

	if doc != nil {
		b.Description = doc.Description
		b.Tags = doc.Tags
	}

	return b
}
