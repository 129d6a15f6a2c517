package voltjson

import "sync"

// Policy carries write-time exclusion flags down through every converter.
// Policies are never visible on the wire.
type Policy uint8

const (
	// ExcludeNull omits properties whose value is null.
	ExcludeNull Policy = 1 << iota
	// ExcludeDefault omits properties whose value is the zero value of
	// their type. Null counts as a default.
	ExcludeDefault
)

// Has reports whether every flag in f is set.
func (p Policy) Has(f Policy) bool { return p&f == f }

// Converter reads and writes one logical type. Converters signal failure
// by returning false and never panic on malformed input. On a failed read
// the cursor is left where it was.
type Converter[T any] interface {
	// CanWrite reports whether v should be emitted at all under p. It is
	// true whenever p is zero.
	CanWrite(v T, p Policy) bool
	// TryRead consumes exactly one JSON value.
	TryRead(c *Cursor, p Policy) (T, bool)
	// TryWrite appends exactly one JSON value, or null.
	TryWrite(b *Buffer, v T, p Policy) bool
}

// valueCanWrite is CanWrite for non-nullable values: only ExcludeDefault
// can drop them.
func valueCanWrite[T comparable](v T, p Policy) bool {
	var zero T
	return !p.Has(ExcludeDefault) || v != zero
}

// nullableCanWrite is CanWrite for values that may be null: either flag
// drops a null.
func nullableCanWrite(isNull bool, p Policy) bool {
	return !isNull || p&(ExcludeNull|ExcludeDefault) == 0
}

// ConverterFuncs adapts plain functions to Converter. A nil CanWriteFunc
// always writes.
type ConverterFuncs[T any] struct {
	CanWriteFunc func(v T, p Policy) bool
	ReadFunc     func(c *Cursor, p Policy) (T, bool)
	WriteFunc    func(b *Buffer, v T, p Policy) bool
}

func (f ConverterFuncs[T]) CanWrite(v T, p Policy) bool {
	if f.CanWriteFunc == nil {
		return true
	}
	return f.CanWriteFunc(v, p)
}

func (f ConverterFuncs[T]) TryRead(c *Cursor, p Policy) (T, bool) {
	start := c.Offset()
	kind, off := c.failKind, c.failOff
	v, ok := f.ReadFunc(c, p)
	if !ok {
		c.seek(start)
		return v, false
	}
	// Failures from attempts the function recovered from are not failures.
	c.failKind, c.failOff = kind, off
	return v, true
}

func (f ConverterFuncs[T]) TryWrite(b *Buffer, v T, p Policy) bool {
	return f.WriteFunc(b, v, p)
}

// Lazy defers building a converter until first use, which lets recursive
// schemas refer to themselves.
func Lazy[T any](build func() Converter[T]) Converter[T] {
	return &lazyConverter[T]{build: build}
}

type lazyConverter[T any] struct {
	once  sync.Once
	build func() Converter[T]
	conv  Converter[T]
}

func (l *lazyConverter[T]) get() Converter[T] {
	l.once.Do(func() { l.conv = l.build() })
	return l.conv
}

func (l *lazyConverter[T]) CanWrite(v T, p Policy) bool { return l.get().CanWrite(v, p) }

func (l *lazyConverter[T]) TryRead(c *Cursor, p Policy) (T, bool) { return l.get().TryRead(c, p) }

func (l *lazyConverter[T]) TryWrite(b *Buffer, v T, p Policy) bool {
	return l.get().TryWrite(b, v, p)
}
