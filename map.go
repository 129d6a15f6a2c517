package voltjson

import (
	"slices"
	"strings"
)

// Map converts map[string]V as a JSON object. Keys are written in sorted
// order so output is deterministic. A repeated key keeps its last value.
func Map[V any](inner Converter[V]) Converter[map[string]V] {
	return mapConverter[V]{inner: inner}
}

type mapConverter[V any] struct {
	inner Converter[V]
}

func (m mapConverter[V]) CanWrite(v map[string]V, p Policy) bool {
	return nullableCanWrite(v == nil, p)
}

func (m mapConverter[V]) TryRead(c *Cursor, p Policy) (map[string]V, bool) {
	start := c.Offset()
	r, isNull, ok := beginObject(c)
	if !ok || isNull {
		return nil, ok
	}
	out := make(map[string]V)
	for {
		key, _, more, ok := r.next()
		if !ok {
			c.seek(start)
			return nil, false
		}
		if !more {
			return out, true
		}
		k := string(key)
		v, ok := m.inner.TryRead(c, p)
		if !ok {
			c.seek(start)
			return nil, false
		}
		out[k] = v
	}
}

func (m mapConverter[V]) TryWrite(b *Buffer, v map[string]V, p Policy) bool {
	if v == nil {
		WriteNull(b)
		return true
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, strings.Compare)
	b.Push('{')
	for i, k := range keys {
		if i > 0 {
			b.Push(',')
		}
		WriteString(b, k)
		b.Push(':')
		if !m.inner.TryWrite(b, v[k], p) {
			return false
		}
	}
	b.Push('}')
	return true
}
