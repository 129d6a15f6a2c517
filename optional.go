package voltjson

// Optional distinguishes a property that was absent from the document from
// one that was present, including present with a null value.
type Optional[T any] struct {
	value T
	has   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, has: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Has reports whether the value is present.
func (o Optional[T]) Has() bool { return o.has }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.has }

// Value returns the value, or the zero value when absent.
func (o Optional[T]) Value() T { return o.value }

// OrElse returns the value when present and def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.has {
		return o.value
	}
	return def
}

// OptionalOf wraps inner so that absent values are never written,
// whatever the policy, and every successfully read value is present.
func OptionalOf[T any](inner Converter[T]) Converter[Optional[T]] {
	return optionalConverter[T]{inner: inner}
}

type optionalConverter[T any] struct {
	inner Converter[T]
}

func (o optionalConverter[T]) CanWrite(v Optional[T], p Policy) bool {
	return v.has && o.inner.CanWrite(v.value, p)
}

func (o optionalConverter[T]) TryRead(c *Cursor, p Policy) (Optional[T], bool) {
	v, ok := o.inner.TryRead(c, p)
	if !ok {
		return Optional[T]{}, false
	}
	return Some(v), true
}

func (o optionalConverter[T]) TryWrite(b *Buffer, v Optional[T], p Policy) bool {
	if !v.has {
		WriteNull(b)
		return true
	}
	return o.inner.TryWrite(b, v.value, p)
}
