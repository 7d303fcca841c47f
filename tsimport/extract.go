package tsimport

import "go.typeforge.dev/ts2schema/token"

// Import describes one import/export-from statement as recognized by
// spec 4.3. Renames ("X as Z") retain the original exported name in
// Names; the local alias is discarded, since only the name as declared
// in the source module matters for resolution.
type Import struct {
	Names          []string
	ModulePath     string
	IsDefault      bool
	IsNamespace    bool
	NamespaceAlias string
}

// Extract scans toks for import/export-from statements. It is
// fault-tolerant: the first statement it cannot classify stops
// extraction, returning whatever was found before it.
func Extract(toks []token.Token) []Import {
	e := &extractor{toks: toks}

	var imports []Import

	for {
		tok := e.peek()
		if tok.Kind == token.EOF {
			return imports
		}

		switch {
		case tok.Kind == token.Keyword && tok.Value == "import":
			imp, ok := e.parseImport()
			if !ok {
				return imports
			}

			imports = append(imports, imp)

		case tok.Kind == token.Keyword && tok.Value == "export":
			imp, ok, matched := e.parseExportFrom()
			if !matched {
				e.advance()

				continue
			}

			if !ok {
				return imports
			}

			imports = append(imports, imp)

		default:
			e.advance()
		}
	}
}

type extractor struct {
	toks []token.Token
	pos  int
}

func (e *extractor) peek() token.Token {
	i := e.pos
	for i < len(e.toks) && e.toks[i].Kind == token.Newline {
		i++
	}

	if i >= len(e.toks) {
		return token.Token{Kind: token.EOF}
	}

	return e.toks[i]
}

func (e *extractor) peekAt(n int) token.Token {
	i := e.pos
	seen := -1

	for i < len(e.toks) {
		if e.toks[i].Kind != token.Newline {
			seen++
			if seen == n {
				return e.toks[i]
			}
		}

		i++
	}

	return token.Token{Kind: token.EOF}
}

func (e *extractor) advance() token.Token {
	for e.pos < len(e.toks) && e.toks[e.pos].Kind == token.Newline {
		e.pos++
	}

	if e.pos >= len(e.toks) {
		return token.Token{Kind: token.EOF}
	}

	tok := e.toks[e.pos]
	e.pos++

	return tok
}

func (e *extractor) isPunct(v string) bool {
	t := e.peek()

	return t.Kind == token.Punctuation && t.Value == v
}

func (e *extractor) isKeyword(v string) bool {
	t := e.peek()

	return t.Kind == token.Keyword && t.Value == v
}

func (e *extractor) isIdentifier(v string) bool {
	t := e.peek()

	return t.Kind == token.Identifier && t.Value == v
}

// parseImport handles the three "import ..." forms of spec 4.3.
func (e *extractor) parseImport() (Import, bool) {
	e.advance() // 'import'

	// Optional "type" modifier: `import type { ... }` / `import type X`.
	if e.isKeyword("type") {
		e.advance()
	}

	switch {
	case e.isPunct("{"):
		names, ok := e.parseNamedBindings()
		if !ok {
			return Import{}, false
		}

		return e.finishWithFrom(Import{Names: names})

	case e.isPunct("*"):
		e.advance()

		if !e.isKeyword("as") {
			return Import{}, false
		}

		e.advance()

		aliasTok := e.peek()
		if aliasTok.Kind != token.Identifier {
			return Import{}, false
		}

		e.advance()

		return e.finishWithFrom(Import{IsNamespace: true, NamespaceAlias: aliasTok.Value})

	case e.peek().Kind == token.Identifier:
		nameTok := e.advance()

		return e.finishWithFrom(Import{Names: []string{nameTok.Value}, IsDefault: true})

	default:
		return Import{}, false
	}
}

// parseExportFrom handles the three "export ... from" forms. matched
// reports whether the statement even started looking like an
// export-from statement (as opposed to an unrelated exported
// declaration the caller should skip past token by token).
func (e *extractor) parseExportFrom() (imp Import, ok bool, matched bool) {
	start := e.pos

	e.advance() // 'export'

	if e.isKeyword("type") && e.peekAt(1).Kind == token.Punctuation && e.peekAt(1).Value == "{" {
		e.advance()
	}

	switch {
	case e.isPunct("{"):
		names, okNames := e.parseNamedBindings()
		if !okNames {
			e.pos = start

			return Import{}, false, false
		}

		imp, ok = e.finishWithFrom(Import{Names: names})

		return imp, ok, true

	case e.isPunct("*"):
		e.advance()

		namespaceAlias := ""

		if e.isKeyword("as") {
			e.advance()

			aliasTok := e.peek()
			if aliasTok.Kind != token.Identifier {
				e.pos = start

				return Import{}, false, false
			}

			namespaceAlias = aliasTok.Value
			e.advance()
		}

		imp, ok = e.finishWithFrom(Import{IsNamespace: true, NamespaceAlias: namespaceAlias})

		return imp, ok, true

	default:
		e.pos = start

		return Import{}, false, false
	}
}

// parseNamedBindings parses "{ X, Y as Z, ... }", returning the original
// (pre-"as") names.
func (e *extractor) parseNamedBindings() ([]string, bool) {
	e.advance() // '{'

	var names []string

	for !e.isPunct("}") {
		nameTok := e.peek()
		if nameTok.Kind != token.Identifier {
			return nil, false
		}

		e.advance()
		names = append(names, nameTok.Value)

		if e.isKeyword("as") {
			e.advance()

			aliasTok := e.peek()
			if aliasTok.Kind != token.Identifier {
				return nil, false
			}

			e.advance()
		}

		if e.isPunct(",") {
			e.advance()

			continue
		}

		break
	}

	if !e.isPunct("}") {
		return nil, false
	}

	e.advance()

	return names, true
}

// finishWithFrom expects "from <string>" and an optional trailing ';'.
func (e *extractor) finishWithFrom(imp Import) (Import, bool) {
	if !e.isKeyword("from") {
		return Import{}, false
	}

	e.advance()

	pathTok := e.peek()
	if pathTok.Kind != token.String {
		return Import{}, false
	}

	e.advance()

	imp.ModulePath = pathTok.Value

	if e.isPunct(";") {
		e.advance()
	}

	return imp, true
}
