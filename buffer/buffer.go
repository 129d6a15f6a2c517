// Package buffer provides a growable, contiguous store whose backing slices
// may be rented from and returned to a shared pool.
package buffer

// growthFactor is applied to the current capacity whenever a push or
// reservation does not fit.
const growthFactor = 2

// Resizable is an append-only store of T. Only the region [0, Len()) is
// ever exposed. The zero value is usable and allocates without a pool.
//
// A Resizable is owned by a single goroutine; call Release when done so the
// backing slice can be reused.
type Resizable[T any] struct {
	data []T
	n    int
	pool Pool[T]
}

// New returns a buffer with at least capacity elements of backing storage,
// rented from pool when pool is non-nil.
func New[T any](capacity int, pool Pool[T]) Resizable[T] {
	r := Resizable[T]{pool: pool}
	if capacity > 0 {
		r.data = r.rent(capacity)
	}
	return r
}

func (r *Resizable[T]) rent(n int) []T {
	if r.pool != nil {
		return r.pool.Rent(n)
	}
	return make([]T, n)
}

func (r *Resizable[T]) giveBack(s []T) {
	if r.pool != nil && s != nil {
		r.pool.Return(s)
	}
}

// Len returns the number of committed elements.
func (r *Resizable[T]) Len() int { return r.n }

// Cap returns the capacity of the backing store.
func (r *Resizable[T]) Cap() int { return len(r.data) }

// View returns the committed elements. The slice aliases the backing store
// and is only valid until the next mutation or Release.
func (r *Resizable[T]) View() []T { return r.data[:r.n] }

// Push appends one element.
func (r *Resizable[T]) Push(v T) {
	if r.n == len(r.data) {
		r.grow(1)
	}
	r.data[r.n] = v
	r.n++
}

// PushAll appends every element of vs.
func (r *Resizable[T]) PushAll(vs []T) {
	if len(vs) == 0 {
		return
	}
	if r.n+len(vs) > len(r.data) {
		r.grow(len(vs))
	}
	r.n += copy(r.data[r.n:], vs)
}

// ReserveSegment returns a writable region of at least n elements that
// starts right after the committed content. Nothing becomes visible until
// Advance is called.
func (r *Resizable[T]) ReserveSegment(n int) []T {
	if r.n+n > len(r.data) {
		r.grow(n)
	}
	return r.data[r.n:]
}

// Advance commits the first k elements of the last reserved segment.
func (r *Resizable[T]) Advance(k int) {
	if k < 0 || r.n+k > len(r.data) {
		panic("buffer: advance past reserved segment")
	}
	r.n += k
}

// Truncate drops committed elements beyond n.
func (r *Resizable[T]) Truncate(n int) {
	if n < 0 || n > r.n {
		panic("buffer: truncate out of range")
	}
	r.n = n
}

// Reset discards the content but keeps the backing store.
func (r *Resizable[T]) Reset() { r.n = 0 }

// ToOwned returns an independent copy sized exactly to Len. The result is
// never nil, so an empty buffer yields an empty, non-nil slice.
func (r *Resizable[T]) ToOwned() []T {
	out := make([]T, r.n)
	copy(out, r.data[:r.n])
	return out
}

// Release returns the backing store to the pool and empties the buffer.
// It is safe to call more than once.
func (r *Resizable[T]) Release() {
	clear(r.data[:r.n])
	r.giveBack(r.data)
	r.data = nil
	r.n = 0
}

func (r *Resizable[T]) grow(extra int) {
	need := r.n + extra
	size := len(r.data) * growthFactor
	if size < minRent {
		size = minRent
	}
	for size < need {
		size *= growthFactor
	}
	next := r.rent(size)
	copy(next, r.data[:r.n])
	old := r.data
	clear(old[:r.n])
	r.giveBack(old)
	r.data = next
}
