package token

// Kind classifies a Token.
type Kind int

// Token kinds.
const (
	EOF Kind = iota
	Keyword
	Primitive
	Identifier
	String
	Number
	Punctuation
	JSDoc
	Newline
)

// keyword and primitive Value sets recognized by the tokenizer. These are
// the closed vocabularies named in spec 4.1/4.2.
var keywords = map[string]bool{
	"interface": true, "type": true, "enum": true, "export": true,
	"extends": true, "const": true, "readonly": true, "import": true,
	"from": true, "as": true, "declare": true, "namespace": true,
	"module": true, "function": true, "var": true, "let": true,
	"class": true,
}

var primitives = map[string]bool{
	"string": true, "number": true, "boolean": true, "null": true,
	"undefined": true, "any": true, "unknown": true, "never": true,
	"void": true, "object": true, "bigint": true, "true": true,
	"false": true,
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "eof"
	case Keyword:
		return "keyword"
	case Primitive:
		return "primitive"
	case Identifier:
		return "identifier"
	case String:
		return "string"
	case Number:
		return "number"
	case Punctuation:
		return "punctuation"
	case JSDoc:
		return "jsdoc"
	case Newline:
		return "newline"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit.
type Token struct {
	Kind   Kind
	Value  string
	Line   int
	Column int
}
