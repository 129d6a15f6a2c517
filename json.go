// Package voltjson reads and writes JSON directly against byte buffers
// through composable, schema-driven converters. There is no intermediate
// tree and no reflection on the hot path: every type is described once by
// a PropertyMap or a Converter and registered with a Registry.
package voltjson

import (
	"io"

	"github.com/biggeezerdevelopment/voltjson/internal/scanner"
)

// Valid reports whether data is exactly one well-formed JSON value with
// optional surrounding whitespace.
func Valid(data []byte) bool {
	return scanner.Valid(data)
}

// Compact appends src to dst with insignificant whitespace removed. src
// must be valid JSON; nothing is appended otherwise.
func Compact(dst *Buffer, src []byte) error {
	if !compact(dst, src) {
		c := NewCursor(src)
		if c.Skip() {
			c.failAtPos(c.skipWhitespace(), KindTrailingData)
		}
		kind, off := c.Failure()
		return &SyntaxError{Kind: kind, Offset: off, Type: "json"}
	}
	return nil
}

func compact(dst *Buffer, src []byte) bool {
	if !scanner.Valid(src) {
		return false
	}
	start := 0
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"':
			i, _ = scanner.SkipString(src, i)
		case scanner.IsWhitespace(c):
			dst.PushAll(src[start:i])
			i = scanner.SkipWhitespace(src, i)
			start = i
		default:
			i++
		}
	}
	dst.PushAll(src[start:])
	return true
}

// Decoder reads a value of T from a stream.
type Decoder[T any] struct {
	s *Serializer
	r io.Reader
}

// NewDecoder returns a decoder that reads all of r on each Decode.
func NewDecoder[T any](s *Serializer, r io.Reader) *Decoder[T] {
	return &Decoder[T]{s: s, r: r}
}

// Decode reads the rest of the stream and decodes it as one value.
func (d *Decoder[T]) Decode() (T, error) {
	return ReadFrom[T](d.s, d.r)
}

// Encoder writes values of T to a stream.
type Encoder[T any] struct {
	s *Serializer
	w io.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder[T any](s *Serializer, w io.Writer) *Encoder[T] {
	return &Encoder[T]{s: s, w: w}
}

// Encode writes the encoding of v.
func (e *Encoder[T]) Encode(v T) error {
	_, err := WriteTo(e.s, e.w, v)
	return err
}
