package voltjson

// Pointer makes inner nullable: nil is written as null and null reads as
// nil.
func Pointer[V any](inner Converter[V]) Converter[*V] {
	return pointerConverter[V]{inner: inner}
}

type pointerConverter[V any] struct {
	inner Converter[V]
}

func (pc pointerConverter[V]) CanWrite(v *V, p Policy) bool {
	return nullableCanWrite(v == nil, p)
}

func (pc pointerConverter[V]) TryRead(c *Cursor, p Policy) (*V, bool) {
	if c.Peek() == TokenNull {
		return nil, c.ReadNull()
	}
	v, ok := pc.inner.TryRead(c, p)
	if !ok {
		return nil, false
	}
	return &v, true
}

func (pc pointerConverter[V]) TryWrite(b *Buffer, v *V, p Policy) bool {
	if v == nil {
		WriteNull(b)
		return true
	}
	return pc.inner.TryWrite(b, *v, p)
}
