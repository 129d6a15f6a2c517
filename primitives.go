package voltjson

import (
	"bytes"
	"encoding/base64"
	"strconv"
	"unsafe"

	"github.com/biggeezerdevelopment/voltjson/internal/scanner"
)

// Signed is the set of integer types Int accepts.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of integer types Uint accepts.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// String converts Go strings. JSON null is not a string and fails.
func String() Converter[string] { return stringConverter{} }

type stringConverter struct{}

func (stringConverter) CanWrite(v string, p Policy) bool { return valueCanWrite(v, p) }

func (stringConverter) TryRead(c *Cursor, _ Policy) (string, bool) {
	s, ok := c.ReadString()
	if !ok {
		return "", false
	}
	return string(s), true
}

func (stringConverter) TryWrite(b *Buffer, v string, _ Policy) bool {
	WriteString(b, v)
	return true
}

// Bool converts true and false.
func Bool() Converter[bool] { return boolConverter{} }

type boolConverter struct{}

func (boolConverter) CanWrite(v bool, p Policy) bool { return valueCanWrite(v, p) }

func (boolConverter) TryRead(c *Cursor, _ Policy) (bool, bool) { return c.ReadBool() }

func (boolConverter) TryWrite(b *Buffer, v bool, _ Policy) bool {
	WriteBool(b, v)
	return true
}

// Int converts any signed integer type, including named enum types.
// Values that do not fit in T fail to read.
func Int[T Signed]() Converter[T] { return intConverter[T]{} }

type intConverter[T Signed] struct{}

func (intConverter[T]) CanWrite(v T, p Policy) bool { return valueCanWrite(v, p) }

func (intConverter[T]) TryRead(c *Cursor, _ Policy) (T, bool) {
	var zero T
	v, ok := c.ReadInt(int(unsafe.Sizeof(zero)) * 8)
	return T(v), ok
}

func (intConverter[T]) TryWrite(b *Buffer, v T, _ Policy) bool {
	WriteInt(b, int64(v))
	return true
}

// Uint converts any unsigned integer type.
func Uint[T Unsigned]() Converter[T] { return uintConverter[T]{} }

type uintConverter[T Unsigned] struct{}

func (uintConverter[T]) CanWrite(v T, p Policy) bool { return valueCanWrite(v, p) }

func (uintConverter[T]) TryRead(c *Cursor, _ Policy) (T, bool) {
	var zero T
	v, ok := c.ReadUint(int(unsafe.Sizeof(zero)) * 8)
	return T(v), ok
}

func (uintConverter[T]) TryWrite(b *Buffer, v T, _ Policy) bool {
	WriteUint(b, uint64(v))
	return true
}

// Float64 converts float64. NaN and infinities fail to write.
func Float64() Converter[float64] { return float64Converter{} }

type float64Converter struct{}

func (float64Converter) CanWrite(v float64, p Policy) bool { return valueCanWrite(v, p) }

func (float64Converter) TryRead(c *Cursor, _ Policy) (float64, bool) { return c.ReadFloat(64) }

func (float64Converter) TryWrite(b *Buffer, v float64, _ Policy) bool {
	return WriteFloat(b, v, 64)
}

// Float32 converts float32.
func Float32() Converter[float32] { return float32Converter{} }

type float32Converter struct{}

func (float32Converter) CanWrite(v float32, p Policy) bool { return valueCanWrite(v, p) }

func (float32Converter) TryRead(c *Cursor, _ Policy) (float32, bool) {
	v, ok := c.ReadFloat(32)
	return float32(v), ok
}

func (float32Converter) TryWrite(b *Buffer, v float32, _ Policy) bool {
	return WriteFloat(b, float64(v), 32)
}

// QuotedInt64 carries a 64-bit integer as a JSON string, the usual form
// for identifiers that exceed the safe range of double-precision readers.
// Bare numbers are accepted on read.
func QuotedInt64() Converter[int64] { return quotedInt64Converter{} }

type quotedInt64Converter struct{}

func (quotedInt64Converter) CanWrite(v int64, p Policy) bool { return valueCanWrite(v, p) }

func (quotedInt64Converter) TryRead(c *Cursor, _ Policy) (int64, bool) {
	if c.Peek() == TokenNumber {
		return c.ReadInt(64)
	}
	start := c.Offset()
	s, ok := c.ReadString()
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(bytesString(s), 10, 64)
	if err != nil {
		c.seek(start)
		return 0, c.Fail(KindMalformed)
	}
	return v, true
}

func (quotedInt64Converter) TryWrite(b *Buffer, v int64, _ Policy) bool {
	WriteQuotedInt(b, v)
	return true
}

// QuotedUint64 is QuotedInt64 for unsigned identifiers.
func QuotedUint64() Converter[uint64] { return quotedUint64Converter{} }

type quotedUint64Converter struct{}

func (quotedUint64Converter) CanWrite(v uint64, p Policy) bool { return valueCanWrite(v, p) }

func (quotedUint64Converter) TryRead(c *Cursor, _ Policy) (uint64, bool) {
	if c.Peek() == TokenNumber {
		return c.ReadUint(64)
	}
	start := c.Offset()
	s, ok := c.ReadString()
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(bytesString(s), 10, 64)
	if err != nil {
		c.seek(start)
		return 0, c.Fail(KindMalformed)
	}
	return v, true
}

func (quotedUint64Converter) TryWrite(b *Buffer, v uint64, _ Policy) bool {
	WriteQuotedUint(b, v)
	return true
}

// Bytes carries a byte slice as a standard base64 string. A nil slice is
// null, an empty one is "".
func Bytes() Converter[[]byte] { return bytesConverter{} }

type bytesConverter struct{}

func (bytesConverter) CanWrite(v []byte, p Policy) bool {
	if v == nil {
		return nullableCanWrite(true, p)
	}
	return !p.Has(ExcludeDefault) || len(v) > 0
}

func (bytesConverter) TryRead(c *Cursor, _ Policy) ([]byte, bool) {
	if c.Peek() == TokenNull {
		return nil, c.ReadNull()
	}
	start := c.Offset()
	s, ok := c.ReadString()
	if !ok {
		return nil, false
	}
	out := make([]byte, base64.StdEncoding.DecodedLen(len(s)))
	n, err := base64.StdEncoding.Decode(out, s)
	if err != nil {
		c.seek(start)
		return nil, c.Fail(KindMalformed)
	}
	return out[:n], true
}

func (bytesConverter) TryWrite(b *Buffer, v []byte, _ Policy) bool {
	if v == nil {
		WriteNull(b)
		return true
	}
	WriteBytes(b, v)
	return true
}

// Raw captures any JSON value verbatim. Reading validates and copies the
// value's bytes; writing validates and emits them compacted. A nil Raw is
// null.
func Raw() Converter[RawMessage] { return rawConverter{} }

// RawMessage is an encoded JSON value.
type RawMessage []byte

type rawConverter struct{}

func (rawConverter) CanWrite(v RawMessage, p Policy) bool {
	isNull := v == nil || bytes.Equal(v, []byte("null"))
	return nullableCanWrite(isNull, p)
}

func (rawConverter) TryRead(c *Cursor, _ Policy) (RawMessage, bool) {
	start := scanner.SkipWhitespace(c.data, c.Offset())
	if !c.Skip() {
		return nil, false
	}
	return bytes.Clone(c.data[start:c.Offset()]), true
}

func (rawConverter) TryWrite(b *Buffer, v RawMessage, _ Policy) bool {
	if v == nil {
		WriteNull(b)
		return true
	}
	return compact(b, v)
}
