package voltjson

import (
	"time"

	"github.com/google/uuid"

	"github.com/biggeezerdevelopment/voltjson/internal/scanner"
)

// TokenType identifies the next token under a Cursor.
type TokenType = scanner.TokenType

const (
	TokenNone        = scanner.TokenNone
	TokenObjectBegin = scanner.TokenObjectBegin
	TokenObjectEnd   = scanner.TokenObjectEnd
	TokenArrayBegin  = scanner.TokenArrayBegin
	TokenArrayEnd    = scanner.TokenArrayEnd
	TokenColon       = scanner.TokenColon
	TokenComma       = scanner.TokenComma
	TokenString      = scanner.TokenString
	TokenNumber      = scanner.TokenNumber
	TokenTrue        = scanner.TokenTrue
	TokenFalse       = scanner.TokenFalse
	TokenNull        = scanner.TokenNull
)

// Cursor is a read position over a complete input buffer. Reads consume a
// prefix of the remaining input and never modify the bytes. On failure a
// read leaves the position where it was and records the first failure for
// error reporting.
type Cursor struct {
	data    []byte
	pos     int
	scratch *[]byte

	failKind Kind
	failOff  int
}

// NewCursor returns a cursor at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the current position in the input.
func (c *Cursor) Offset() int { return c.pos }

// Remaining returns the unconsumed input.
func (c *Cursor) Remaining() []byte { return c.data[c.pos:] }

// AtEnd reports whether only whitespace remains.
func (c *Cursor) AtEnd() bool {
	return scanner.SkipWhitespace(c.data, c.pos) == len(c.data)
}

func (c *Cursor) seek(pos int) { c.pos = pos }

func (c *Cursor) skipWhitespace() int {
	c.pos = scanner.SkipWhitespace(c.data, c.pos)
	return c.pos
}

// Peek classifies the next token after any whitespace without consuming
// anything.
func (c *Cursor) Peek() TokenType {
	tok, _ := scanner.Classify(c.data, c.pos)
	return tok
}

// Consume moves past the whitespace and single-byte structural token that
// Peek just classified.
func (c *Cursor) Consume() {
	c.pos = scanner.SkipWhitespace(c.data, c.pos) + 1
}

// Fail records kind at the next token unless an earlier failure is already
// recorded. It always returns false so converters can write
// `return zero, c.Fail(KindStructure)`.
func (c *Cursor) Fail(kind Kind) bool {
	return c.failAtPos(scanner.SkipWhitespace(c.data, c.pos), kind)
}

// Unexpected records a failure for the token after the current position:
// truncation if the input is exhausted, malformed input otherwise.
func (c *Cursor) Unexpected() bool {
	return c.failAt(scanner.SkipWhitespace(c.data, c.pos))
}

func (c *Cursor) failAtPos(pos int, kind Kind) bool {
	if c.failKind == KindNone {
		c.failKind = kind
		c.failOff = pos
	}
	return false
}

// failAt classifies a failure reported by a scanner primitive.
func (c *Cursor) failAt(pos int) bool {
	if pos >= len(c.data) {
		return c.failAtPos(len(c.data), KindTruncated)
	}
	return c.failAtPos(pos, KindMalformed)
}

// Failure returns the first recorded failure and its offset.
func (c *Cursor) Failure() (Kind, int) {
	return c.failKind, c.failOff
}

// ReadString consumes a string and returns its decoded bytes. The result
// may alias the input or an internal scratch buffer; it is only valid until
// the next read on this cursor.
func (c *Cursor) ReadString() ([]byte, bool) {
	if c.scratch == nil {
		c.scratch = scanner.GetScratch()
	}
	quote := scanner.SkipWhitespace(c.data, c.pos)
	s, next, ok := scanner.ReadString(c.data, quote, *c.scratch)
	if !ok {
		return nil, c.failAt(next)
	}
	// Escapes always shrink, so a shorter result came from scratch.
	if len(s) < next-quote-2 && cap(s) > cap(*c.scratch) {
		*c.scratch = s[:0]
	}
	c.pos = next
	return s, true
}

// ReadInt consumes an integer that fits in bitSize bits.
func (c *Cursor) ReadInt(bitSize int) (int64, bool) {
	v, next, ok := scanner.ParseInt(c.data, c.pos, bitSize)
	if !ok {
		return 0, c.failAt(next)
	}
	c.pos = next
	return v, true
}

// ReadUint consumes a non-negative integer that fits in bitSize bits.
func (c *Cursor) ReadUint(bitSize int) (uint64, bool) {
	v, next, ok := scanner.ParseUint(c.data, c.pos, bitSize)
	if !ok {
		return 0, c.failAt(next)
	}
	c.pos = next
	return v, true
}

// ReadFloat consumes any number as a float of bitSize bits.
func (c *Cursor) ReadFloat(bitSize int) (float64, bool) {
	v, next, ok := scanner.ParseFloat(c.data, c.pos, bitSize)
	if !ok {
		return 0, c.failAt(next)
	}
	c.pos = next
	return v, true
}

// ReadBool consumes true or false.
func (c *Cursor) ReadBool() (bool, bool) {
	v, next, ok := scanner.ReadBool(c.data, c.pos)
	if !ok {
		return false, c.failAt(next)
	}
	c.pos = next
	return v, true
}

// ReadNull consumes the null literal.
func (c *Cursor) ReadNull() bool {
	next, ok := scanner.ReadNull(c.data, c.pos)
	if !ok {
		return c.failAt(next)
	}
	c.pos = next
	return true
}

// ReadUUID consumes a quoted unique identifier.
func (c *Cursor) ReadUUID() (uuid.UUID, bool) {
	v, next, ok := scanner.ReadUUID(c.data, c.pos)
	if !ok {
		return uuid.Nil, c.failAt(next)
	}
	c.pos = next
	return v, true
}

// ReadTime consumes a quoted RFC 3339 timestamp.
func (c *Cursor) ReadTime() (time.Time, bool) {
	v, next, ok := scanner.ReadTime(c.data, c.pos)
	if !ok {
		return time.Time{}, c.failAt(next)
	}
	c.pos = next
	return v, true
}

// Skip consumes one complete value of any depth.
func (c *Cursor) Skip() bool {
	next, ok := scanner.Skip(c.data, c.pos)
	if !ok {
		return c.failAt(next)
	}
	c.pos = next
	return true
}

// release hands pooled scratch space back.
func (c *Cursor) release() {
	if c.scratch != nil {
		scanner.PutScratch(c.scratch)
		c.scratch = nil
	}
}
