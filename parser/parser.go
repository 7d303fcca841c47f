package parser

import (
	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/token"
)

// Parser turns a Token sequence into an ordered list of declarations.
// Create one with New and call Parse once; a Parser is not reusable
// across calls to Parse.
type Parser struct {
	toks       []token.Token
	pos        int
	pendingDoc *ast.JSDoc
}

// New creates a Parser over toks (typically the output of token.Tokenize).
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// ParseDeclarations tokenizes src and parses it into a declaration list.
func ParseDeclarations(src string) ([]ast.Declaration, error) {
	return New(token.Tokenize(src)).Parse()
}

// Parse runs the top-level loop described in spec 4.2.
func (p *Parser) Parse() ([]ast.Declaration, error) {
	var decls []ast.Declaration

	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			return decls, nil
		}

		if tok.Kind == token.JSDoc {
			p.pendingDoc = token.ParseJSDoc(tok.Value)
			p.advance()

			continue
		}

		exported, declare := p.consumeModifiers()

		tok = p.peek()

		switch {
		case p.isKeyword("interface"):
			decl, err := p.parseInterface(exported)
			if err != nil {
				return nil, err
			}

			decls = append(decls, decl)

		case p.isKeyword("type") && p.peekKindAt(1) == token.Identifier:
			decl, err := p.parseTypeAlias(exported)
			if err != nil {
				return nil, err
			}

			decls = append(decls, decl)

		case p.isKeyword("const") && p.peekValueAt(1) == "enum":
			p.advance() // const

			decl, err := p.parseEnum(exported)
			if err != nil {
				return nil, err
			}

			decls = append(decls, decl)

		case p.isKeyword("enum"):
			decl, err := p.parseEnum(exported)
			if err != nil {
				return nil, err
			}

			decls = append(decls, decl)

		case p.isKeyword("import"):
			p.skipImportOrExportFromStatement()

		case tok.Kind == token.Identifier && tok.Value == "from":
			// Stray "from" of an export-from statement already consumed
			// elsewhere; guard against infinite loop by consuming it.
			p.advance()

		case exported && p.isPunct("*"):
			p.skipImportOrExportFromStatement()

		case exported && p.isPunct("{"):
			p.skipImportOrExportFromStatement()

		case exported && p.isKeyword("type") && p.peekValueAt(1) == "{":
			p.skipImportOrExportFromStatement()

		case p.isKeyword("function") || p.isKeyword("var") || p.isKeyword("let") ||
			p.isKeyword("const") || p.isKeyword("class") || p.isKeyword("namespace") ||
			p.isKeyword("module") || declare:
			p.skipBlock()

		default:
			return nil, newParseError(tok, "declaration (interface, type, enum)")
		}
	}
}

// consumeModifiers absorbs any run of "export"/"declare" keywords.
func (p *Parser) consumeModifiers() (exported, declare bool) {
	for {
		switch {
		case p.isKeyword("export"):
			exported = true
			p.advance()
		case p.isKeyword("declare"):
			declare = true
			p.advance()
		default:
			return exported, declare
		}
	}
}

// takeDoc returns and clears the pending JSDoc slot.
func (p *Parser) takeDoc() *ast.JSDoc {
	d := p.pendingDoc
	p.pendingDoc = nil

	return d
}

// --- token stream primitives ---

// peek returns the next non-Newline token without consuming it.
func (p *Parser) peek() token.Token {
	i := p.pos
	for i < len(p.toks) && p.toks[i].Kind == token.Newline {
		i++
	}

	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}

	return p.toks[i]
}

// peekAt returns the nth non-Newline token ahead (0 = peek()) without
// consuming anything.
func (p *Parser) peekAt(n int) token.Token {
	i := p.pos
	seen := -1

	for i < len(p.toks) {
		if p.toks[i].Kind != token.Newline {
			seen++
			if seen == n {
				return p.toks[i]
			}
		}

		i++
	}

	return token.Token{Kind: token.EOF}
}

func (p *Parser) peekKindAt(n int) token.Kind { return p.peekAt(n).Kind }
func (p *Parser) peekValueAt(n int) string    { return p.peekAt(n).Value }

// advance consumes and returns the next non-Newline token.
func (p *Parser) advance() token.Token {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind == token.Newline {
		p.pos++
	}

	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}

	tok := p.toks[p.pos]
	p.pos++

	return tok
}

func (p *Parser) isKeyword(v string) bool {
	t := p.peek()

	return t.Kind == token.Keyword && t.Value == v
}

func (p *Parser) isPunct(v string) bool {
	t := p.peek()

	return t.Kind == token.Punctuation && t.Value == v
}

func (p *Parser) expectPunct(v, expected string) error {
	if !p.isPunct(v) {
		return newParseError(p.peek(), expected)
	}

	p.advance()

	return nil
}

// skipBlock consumes tokens until the matched top-level boundary of a
// declare/export'd function/var/class/namespace/module statement: either
// a balanced brace block, or a top-level ';' if no brace ever appears.
func (p *Parser) skipBlock() {
	depth := 0
	seenBrace := false

	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			return
		}

		if tok.Kind == token.Punctuation {
			switch tok.Value {
			case "{":
				depth++
				seenBrace = true
				p.advance()

				continue
			case "}":
				depth--
				p.advance()

				if seenBrace && depth <= 0 {
					return
				}

				continue
			case ";":
				if depth == 0 {
					p.advance()

					return
				}
			}
		}

		p.advance()
	}
}

// skipImportOrExportFromStatement consumes tokens up through the closing
// ';' (or EOF) of an import/export-from statement. The import extractor
// parses these separately; the declaration parser only needs to not
// choke on them.
func (p *Parser) skipImportOrExportFromStatement() {
	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			return
		}

		p.advance()

		if tok.Kind == token.Punctuation && tok.Value == ";" {
			return
		}
	}
}
