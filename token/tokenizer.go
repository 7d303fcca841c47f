package token

import "strings"

const punctuationChars = "{}()[]:;,?|&=<>.*"

// Tokenize converts src into a Token sequence ending in a single EOF token.
// It never fails: characters it cannot classify are silently skipped.
func Tokenize(src string) []Token {
	t := &tokenizer{src: src, line: 1, column: 1}

	return t.run()
}

type tokenizer struct {
	src    string
	pos    int
	line   int
	column int
}

func (t *tokenizer) run() []Token {
	var toks []Token

	for {
		tok, ok := t.next()
		if ok {
			toks = append(toks, tok)
		}

		if tok.Kind == EOF {
			return toks
		}
	}
}

func (t *tokenizer) peekByte() (byte, bool) {
	if t.pos >= len(t.src) {
		return 0, false
	}

	return t.src[t.pos], true
}

func (t *tokenizer) peekByteAt(offset int) (byte, bool) {
	i := t.pos + offset
	if i >= len(t.src) {
		return 0, false
	}

	return t.src[i], true
}

// advance consumes one byte, updating line/column tracking.
func (t *tokenizer) advance() byte {
	b := t.src[t.pos]
	t.pos++

	if b == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}

	return b
}

// next returns the next token, and false if the caller should not emit it
// (used for skipped whitespace/comments, which produce no token object).
func (t *tokenizer) next() (Token, bool) {
	for {
		b, ok := t.peekByte()
		if !ok {
			return Token{Kind: EOF, Line: t.line, Column: t.column}, true
		}

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			t.advance()

			continue
		case b == '\n':
			line, col := t.line, t.column
			t.advance()

			return Token{Kind: Newline, Line: line, Column: col}, true
		case b == '/' && t.peekIs(1, '*'):
			if tok, emit, ok := t.lexBlockComment(); ok {
				if emit {
					return tok, true
				}

				continue
			}
		case b == '/' && t.peekIs(1, '/'):
			t.skipLineComment()

			continue
		case b == '"' || b == '\'' || b == '`':
			return t.lexString(b), true
		case isDigit(b) || (b == '-' && t.negativeNumberFollows()):
			return t.lexNumber(), true
		case isIdentStart(b):
			return t.lexWord(), true
		case strings.IndexByte(punctuationChars, b) != -1:
			line, col := t.line, t.column
			t.advance()

			return Token{Kind: Punctuation, Value: string(b), Line: line, Column: col}, true
		default:
			// Unknown character: skip silently (tokenizer never fails).
			t.advance()

			continue
		}
	}
}

func (t *tokenizer) peekIs(offset int, want byte) bool {
	b, ok := t.peekByteAt(offset)

	return ok && b == want
}

// negativeNumberFollows reports whether a '-' at the current position
// should be treated as the sign of a numeric literal: it requires a digit
// to follow directly.
func (t *tokenizer) negativeNumberFollows() bool {
	b, ok := t.peekByteAt(1)

	return ok && isDigit(b)
}

// lexBlockComment consumes /* ... */. If the comment opens with /** and is
// not the empty /**/ form, it returns a JSDoc token with the trimmed inner
// body and emit=true. Otherwise it consumes the comment and returns
// emit=false.
func (t *tokenizer) lexBlockComment() (Token, bool, bool) {
	line, col := t.line, t.column

	isDoc := t.peekIs(2, '*') && !t.peekIs(3, '/')

	t.advance() // '/'
	t.advance() // '*'

	var body strings.Builder

	for {
		b, ok := t.peekByte()
		if !ok {
			// Unterminated comment: stop at EOF.
			break
		}

		if b == '*' && t.peekIs(1, '/') {
			t.advance()
			t.advance()

			break
		}

		body.WriteByte(t.advance())
	}

	if !isDoc {
		return Token{}, false, true
	}

	raw := body.String()
	if strings.HasPrefix(raw, "*") {
		raw = raw[1:]
	}

	return Token{Kind: JSDoc, Value: trimJSDocBody(raw), Line: line, Column: col}, true, true
}

func (t *tokenizer) skipLineComment() {
	for {
		b, ok := t.peekByte()
		if !ok || b == '\n' {
			return
		}

		t.advance()
	}
}

func (t *tokenizer) lexString(quote byte) Token {
	line, col := t.line, t.column
	t.advance() // opening quote

	var sb strings.Builder

	for {
		b, ok := t.peekByte()
		if !ok || b == quote {
			if ok {
				t.advance() // closing quote
			}

			break
		}

		if b == '\\' {
			t.advance()

			esc, ok := t.peekByte()
			if ok {
				sb.WriteByte(unescape(esc))
				t.advance()
			}

			continue
		}

		sb.WriteByte(t.advance())
	}

	return Token{Kind: String, Value: sb.String(), Line: line, Column: col}
}

func unescape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return b
	}
}

func (t *tokenizer) lexNumber() Token {
	line, col := t.line, t.column

	var sb strings.Builder

	if b, ok := t.peekByte(); ok && b == '-' {
		sb.WriteByte(t.advance())
	}

	for {
		b, ok := t.peekByte()
		if !ok || !isDigit(b) {
			break
		}

		sb.WriteByte(t.advance())
	}

	if b, ok := t.peekByte(); ok && b == '.' {
		if next, ok2 := t.peekByteAt(1); ok2 && isDigit(next) {
			sb.WriteByte(t.advance()) // '.'

			for {
				b, ok := t.peekByte()
				if !ok || !isDigit(b) {
					break
				}

				sb.WriteByte(t.advance())
			}
		}
	}

	return Token{Kind: Number, Value: sb.String(), Line: line, Column: col}
}

func (t *tokenizer) lexWord() Token {
	line, col := t.line, t.column

	var sb strings.Builder

	for {
		b, ok := t.peekByte()
		if !ok || !isIdentPart(b) {
			break
		}

		sb.WriteByte(t.advance())
	}

	word := sb.String()

	switch {
	case keywords[word]:
		return Token{Kind: Keyword, Value: word, Line: line, Column: col}
	case primitives[word]:
		return Token{Kind: Primitive, Value: word, Line: line, Column: col}
	default:
		return Token{Kind: Identifier, Value: word, Line: line, Column: col}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// trimJSDocBody strips the leading " * " / "* " prefix from each line of a
// JSDoc comment body and trims surrounding blank lines.
func trimJSDocBody(raw string) string {
	lines := strings.Split(raw, "\n")

	var out []string

	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")

		trimmed := strings.TrimLeft(line, " \t")
		if i > 0 && strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed, "*")
			trimmed = strings.TrimPrefix(trimmed, " ")
		}

		out = append(out, trimmed)
	}

	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return strings.Join(out, "\n")
}
