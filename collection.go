package voltjson

import "github.com/biggeezerdevelopment/voltjson/buffer"

// arrayReader walks the elements of one array with the separator rules
// shared by every collection: no leading, missing or trailing commas.
type arrayReader struct {
	c     *Cursor
	first bool
}

// beginArray consumes `[` or a null literal.
func beginArray(c *Cursor) (r arrayReader, isNull, ok bool) {
	switch c.Peek() {
	case TokenNull:
		return r, true, c.ReadNull()
	case TokenArrayBegin:
		c.Consume()
		return arrayReader{c: c, first: true}, false, true
	}
	return r, false, c.Unexpected()
}

// next positions the cursor at the next element. It returns more=false
// once `]` has been consumed.
func (r *arrayReader) next() (more, ok bool) {
	c := r.c
	if r.first {
		r.first = false
		if c.Peek() == TokenArrayEnd {
			c.Consume()
			return false, true
		}
	} else {
		switch c.Peek() {
		case TokenComma:
			c.Consume()
		case TokenArrayEnd:
			c.Consume()
			return false, true
		case TokenNone:
			return false, c.Unexpected()
		default:
			return false, c.Fail(KindStructure)
		}
	}
	switch c.Peek() {
	case TokenComma, TokenArrayEnd:
		return false, c.Fail(KindStructure)
	case TokenNone:
		return false, c.Unexpected()
	}
	return true, true
}

// objectReader walks the members of one object with the same rules.
type objectReader struct {
	c     *Cursor
	first bool
}

// beginObject consumes `{` or a null literal.
func beginObject(c *Cursor) (r objectReader, isNull, ok bool) {
	switch c.Peek() {
	case TokenNull:
		return r, true, c.ReadNull()
	case TokenObjectBegin:
		c.Consume()
		return objectReader{c: c, first: true}, false, true
	}
	return r, false, c.Unexpected()
}

// next reads the next key and its `:` and leaves the cursor at the value.
// keyStart is the offset of the key's opening quote. It returns more=false
// once `}` has been consumed.
func (r *objectReader) next() (key []byte, keyStart int, more, ok bool) {
	c := r.c
	if r.first {
		r.first = false
		if c.Peek() == TokenObjectEnd {
			c.Consume()
			return nil, 0, false, true
		}
	} else {
		switch c.Peek() {
		case TokenComma:
			c.Consume()
		case TokenObjectEnd:
			c.Consume()
			return nil, 0, false, true
		case TokenNone:
			return nil, 0, false, c.Unexpected()
		default:
			return nil, 0, false, c.Fail(KindStructure)
		}
	}
	switch c.Peek() {
	case TokenString:
	case TokenComma, TokenObjectEnd:
		return nil, 0, false, c.Fail(KindStructure)
	default:
		return nil, 0, false, c.Unexpected()
	}
	keyStart = c.skipWhitespace()
	key, ok = readKey(c)
	return key, keyStart, ok, ok
}

// readKey reads a member name and the `:` after it.
func readKey(c *Cursor) ([]byte, bool) {
	key, ok := c.ReadString()
	if !ok {
		return nil, false
	}
	switch c.Peek() {
	case TokenColon:
		c.Consume()
		return key, true
	case TokenNone:
		return nil, c.Unexpected()
	}
	return nil, c.Fail(KindStructure)
}

// maxPooledElements bounds the element builders kept by Slice.
const maxPooledElements = 4096

// Slice converts []V using inner for every element. A nil slice is null
// and an empty one is [], and both round-trip exactly.
func Slice[V any](inner Converter[V]) Converter[[]V] {
	return &sliceConverter[V]{
		inner: inner,
		pool:  buffer.NewSlicePool[V](maxPooledElements),
	}
}

type sliceConverter[V any] struct {
	inner Converter[V]
	pool  *buffer.SlicePool[V]
}

func (s *sliceConverter[V]) CanWrite(v []V, p Policy) bool {
	return nullableCanWrite(v == nil, p)
}

func (s *sliceConverter[V]) TryRead(c *Cursor, p Policy) ([]V, bool) {
	start := c.Offset()
	r, isNull, ok := beginArray(c)
	if !ok || isNull {
		return nil, ok
	}
	builder := buffer.New[V](0, s.pool)
	defer builder.Release()
	for {
		more, ok := r.next()
		if !ok {
			c.seek(start)
			return nil, false
		}
		if !more {
			return builder.ToOwned(), true
		}
		v, ok := s.inner.TryRead(c, p)
		if !ok {
			c.seek(start)
			return nil, false
		}
		builder.Push(v)
	}
}

func (s *sliceConverter[V]) TryWrite(b *Buffer, v []V, p Policy) bool {
	if v == nil {
		WriteNull(b)
		return true
	}
	b.Push('[')
	for i := range v {
		if i > 0 {
			b.Push(',')
		}
		if !s.inner.TryWrite(b, v[i], p) {
			return false
		}
	}
	b.Push(']')
	return true
}
