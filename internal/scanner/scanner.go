// Package scanner holds the stateless tokenizer primitives. Every function
// takes the complete input and a position and returns the position after
// whatever it consumed; the input bytes are never modified.
package scanner

const (
	classWhitespace uint8 = 1 << iota
	classStructural
	classDigit
	classHex
)

// charClass is the byte classifier lookup table.
var charClass = func() (t [256]uint8) {
	for _, c := range " \t\n\r" {
		t[c] = classWhitespace
	}
	for _, c := range "{}[]:," {
		t[c] = classStructural
	}
	for c := '0'; c <= '9'; c++ {
		t[c] = classDigit | classHex
	}
	for c := 'a'; c <= 'f'; c++ {
		t[c] = classHex
		t[c-'a'+'A'] = classHex
	}
	return t
}()

type TokenType uint8

const (
	TokenNone TokenType = iota
	TokenObjectBegin
	TokenObjectEnd
	TokenArrayBegin
	TokenArrayEnd
	TokenColon
	TokenComma
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
)

var tokenNames = [...]string{
	TokenNone:        "none",
	TokenObjectBegin: "'{'",
	TokenObjectEnd:   "'}'",
	TokenArrayBegin:  "'['",
	TokenArrayEnd:    "']'",
	TokenColon:       "':'",
	TokenComma:       "','",
	TokenString:      "string",
	TokenNumber:      "number",
	TokenTrue:        "true",
	TokenFalse:       "false",
	TokenNull:        "null",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "invalid"
}

// tokenOf maps the first byte of a token to its type.
var tokenOf = func() (t [256]TokenType) {
	t['{'] = TokenObjectBegin
	t['}'] = TokenObjectEnd
	t['['] = TokenArrayBegin
	t[']'] = TokenArrayEnd
	t[':'] = TokenColon
	t[','] = TokenComma
	t['"'] = TokenString
	t['-'] = TokenNumber
	for c := '0'; c <= '9'; c++ {
		t[c] = TokenNumber
	}
	t['t'] = TokenTrue
	t['f'] = TokenFalse
	t['n'] = TokenNull
	return t
}()

// IsWhitespace reports whether c is insignificant JSON whitespace.
func IsWhitespace(c byte) bool {
	return charClass[c]&classWhitespace != 0
}

// SkipWhitespace returns the position of the first non-whitespace byte at
// or after pos.
func SkipWhitespace(data []byte, pos int) int {
	for pos < len(data) && charClass[data[pos]]&classWhitespace != 0 {
		pos++
	}
	return pos
}

// Classify skips whitespace and reports the type of the token starting
// there, along with its position. Only the first byte is inspected; the
// scalar readers validate the rest. TokenNone means no valid token starts
// at the position, including the end of input.
func Classify(data []byte, pos int) (TokenType, int) {
	pos = SkipWhitespace(data, pos)
	if pos >= len(data) {
		return TokenNone, pos
	}
	return tokenOf[data[pos]], pos
}

// IsStructural reports whether c is one of {}[]:,
func IsStructural(c byte) bool {
	return charClass[c]&classStructural != 0
}
