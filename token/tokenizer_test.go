package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.typeforge.dev/ts2schema/stringtest"
	"go.typeforge.dev/ts2schema/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}

	return out
}

func TestTokenize_EndsInEOF(t *testing.T) {
	toks := token.Tokenize("interface Foo {}")

	require.NotEmpty(t, toks)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestTokenize_EmptyInput(t *testing.T) {
	toks := token.Tokenize("")

	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
}

func TestTokenize_NeverFailsOnGarbage(t *testing.T) {
	inputs := []string{
		"\x00\x01\x02",
		"@#$%^",
		"'unterminated string",
		"/* unterminated comment",
		"日本語 identifiers are skipped entirely",
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			toks := token.Tokenize(in)
			assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
		})
	}
}

func TestTokenize_PositionsMonotoneNonDecreasing(t *testing.T) {
	src := stringtest.JoinLF(
		"interface Foo {",
		"  bar: string;",
		"}",
	)

	toks := token.Tokenize(src)

	prevLine := 0
	for _, tk := range toks {
		assert.GreaterOrEqual(t, tk.Line, prevLine)

		if tk.Line > prevLine {
			prevLine = tk.Line
		}
	}
}

func TestTokenize_Keywords(t *testing.T) {
	toks := token.Tokenize("interface type enum export extends const readonly import from as declare namespace module")

	for _, tk := range toks {
		if tk.Kind == token.EOF || tk.Kind == token.Newline {
			continue
		}

		assert.Equal(t, token.Keyword, tk.Kind, "token %q", tk.Value)
	}
}

func TestTokenize_Primitives(t *testing.T) {
	toks := token.Tokenize("string number boolean null undefined any unknown never void object bigint true false")

	for _, tk := range toks {
		if tk.Kind == token.EOF || tk.Kind == token.Newline {
			continue
		}

		assert.Equal(t, token.Primitive, tk.Kind, "token %q", tk.Value)
	}
}

func TestTokenize_Identifier(t *testing.T) {
	toks := token.Tokenize("MyType")

	require.Len(t, toks, 2)
	assert.Equal(t, token.Identifier, toks[0].Kind)
	assert.Equal(t, "MyType", toks[0].Value)
}

func TestTokenize_StringLiterals(t *testing.T) {
	for _, src := range []string{`"hello"`, `'hello'`, "`hello`"} {
		toks := token.Tokenize(src)

		require.Len(t, toks, 2)
		assert.Equal(t, token.String, toks[0].Kind)
		assert.Equal(t, "hello", toks[0].Value)
	}
}

func TestTokenize_StringEscapes(t *testing.T) {
	toks := token.Tokenize(`"a\nb\tc\"d"`)

	require.Len(t, toks, 2)
	assert.Equal(t, "a\nb\tc\"d", toks[0].Value)
}

func TestTokenize_Numbers(t *testing.T) {
	toks := token.Tokenize("42 3.14 -7")

	var nums []string

	for _, tk := range toks {
		if tk.Kind == token.Number {
			nums = append(nums, tk.Value)
		}
	}

	assert.Equal(t, []string{"42", "3.14", "-7"}, nums)
}

func TestTokenize_Punctuation(t *testing.T) {
	toks := token.Tokenize("{}()[]:;,?|&=<>.*")

	var puncts []string

	for _, tk := range toks {
		if tk.Kind == token.Punctuation {
			puncts = append(puncts, tk.Value)
		}
	}

	assert.Equal(t, []string{"{", "}", "(", ")", "[", "]", ":", ";", ",", "?", "|", "&", "=", "<", ">", ".", "*"}, puncts)
}

func TestTokenize_JSDocPreserved(t *testing.T) {
	src := stringtest.JoinLF(
		"/**",
		" * A description.",
		" * @minimum 1",
		" */",
		"interface Foo {}",
	)

	toks := token.Tokenize(src)

	require.Equal(t, token.JSDoc, toks[0].Kind)
	assert.Contains(t, toks[0].Value, "A description.")
	assert.Contains(t, toks[0].Value, "@minimum 1")
}

func TestTokenize_EmptyDocCommentIsNotJSDoc(t *testing.T) {
	toks := token.Tokenize("/**/ interface Foo {}")

	assert.NotEqual(t, token.JSDoc, toks[0].Kind)
	assert.Equal(t, token.Keyword, toks[0].Kind)
}

func TestTokenize_BlockAndLineCommentsDiscarded(t *testing.T) {
	src := stringtest.JoinLF(
		"/* not a doc comment */",
		"// line comment",
		"interface Foo {}",
	)

	toks := token.Tokenize(src)

	for _, tk := range toks {
		assert.NotEqual(t, token.JSDoc, tk.Kind)
	}

	assert.Equal(t, token.Keyword, toks[0].Kind)
	assert.Equal(t, "interface", toks[0].Value)
}

func TestTokenize_NewlinesEmitted(t *testing.T) {
	toks := token.Tokenize("a\nb")

	assert.Equal(t, []token.Kind{token.Identifier, token.Newline, token.Identifier, token.EOF}, kinds(toks))
}

func TestParseJSDoc_DescriptionAndTags(t *testing.T) {
	raw := stringtest.JoinLF(
		"A description spanning",
		"two lines.",
		"@minimum 1",
		"@maximum 50",
		"@default 10",
	)

	doc := token.ParseJSDoc(raw)

	assert.Equal(t, "A description spanning\ntwo lines.", doc.Description)

	v, ok := doc.Tag("minimum")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = doc.Tag("maximum")
	require.True(t, ok)
	assert.Equal(t, "50", v)

	v, ok = doc.Tag("default")
	require.True(t, ok)
	assert.Equal(t, "10", v)
}

func TestParseJSDoc_UnknownTagPreserved(t *testing.T) {
	doc := token.ParseJSDoc("@customTag hello world")

	v, ok := doc.Tag("customTag")
	require.True(t, ok)
	assert.Equal(t, "hello world", v)
}

func TestParseJSDoc_MultilineTagValue(t *testing.T) {
	raw := stringtest.JoinLF(
		"@example",
		"continued line",
	)

	doc := token.ParseJSDoc(raw)

	v, ok := doc.Tag("example")
	require.True(t, ok)
	assert.Equal(t, "continued line", v)
}
