// Package token implements the tokenizer: text in, a Token stream out.
//
// Tokenize never fails. Malformed or unrecognized input is skipped rather
// than rejected, so that partial or non-TypeScript text still yields a
// usable (if sparse) token stream for the parser to reject with a precise
// error instead of the tokenizer failing blind.
package token
