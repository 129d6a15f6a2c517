package voltjson

// StringEnum converts a closed set of values carried as strings on the
// wire. Reading an unlisted name or writing an unlisted value fails.
func StringEnum[T comparable](names map[T]string) Converter[T] {
	e := &stringEnum[T]{
		names:  make(map[T]string, len(names)),
		values: make(map[string]T, len(names)),
	}
	for v, name := range names {
		e.names[v] = name
		e.values[name] = v
	}
	return e
}

type stringEnum[T comparable] struct {
	names  map[T]string
	values map[string]T
}

func (e *stringEnum[T]) CanWrite(v T, p Policy) bool { return valueCanWrite(v, p) }

func (e *stringEnum[T]) TryRead(c *Cursor, _ Policy) (T, bool) {
	start := c.Offset()
	s, ok := c.ReadString()
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := e.values[string(s)]
	if !ok {
		c.seek(start)
		return v, c.Fail(KindMalformed)
	}
	return v, true
}

func (e *stringEnum[T]) TryWrite(b *Buffer, v T, _ Policy) bool {
	name, ok := e.names[v]
	if !ok {
		return false
	}
	WriteString(b, name)
	return true
}
