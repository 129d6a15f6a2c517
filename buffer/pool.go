package buffer

import (
	"math/bits"
	"sync"
)

const (
	// minRent is the smallest backing store handed out by a SlicePool.
	minRent = 16

	// DefaultMaxPooled bounds the slices a SlicePool keeps for reuse.
	// Larger stores are allocated on demand and dropped on return.
	DefaultMaxPooled = 64 * 1024
)

// Pool hands out backing slices for Resizable buffers.
type Pool[T any] interface {
	// Rent returns a slice of length at least n.
	Rent(n int) []T
	// Return gives a slice back for reuse. The caller must not touch it
	// afterwards.
	Return(s []T)
}

// SlicePool is a Pool made of power-of-two size classes, each backed by a
// sync.Pool. It is safe for concurrent use.
type SlicePool[T any] struct {
	classes   []sync.Pool
	maxPooled int
}

// NewSlicePool returns a pool that recycles slices up to maxPooled
// elements. A non-positive maxPooled selects DefaultMaxPooled.
func NewSlicePool[T any](maxPooled int) *SlicePool[T] {
	if maxPooled <= 0 {
		maxPooled = DefaultMaxPooled
	}
	if maxPooled < minRent {
		maxPooled = minRent
	}
	n := classOf(maxPooled) + 1
	p := &SlicePool[T]{
		classes:   make([]sync.Pool, n),
		maxPooled: minRent << (n - 1),
	}
	return p
}

// classOf maps a requested length to its size class; class c holds slices
// of exactly minRent<<c elements.
func classOf(n int) int {
	if n <= minRent {
		return 0
	}
	return bits.Len(uint(n-1)) - bits.Len(uint(minRent-1))
}

// Rent implements Pool.
func (p *SlicePool[T]) Rent(n int) []T {
	if n > p.maxPooled {
		return make([]T, n)
	}
	c := classOf(n)
	if v := p.classes[c].Get(); v != nil {
		s := v.(*[]T)
		return *s
	}
	return make([]T, minRent<<c)
}

// Return implements Pool. Slices whose length is not an exact size class
// were not rented from this pool and are ignored.
func (p *SlicePool[T]) Return(s []T) {
	n := cap(s)
	if n < minRent || n > p.maxPooled || n&(n-1) != 0 {
		return
	}
	s = s[:n]
	c := classOf(n)
	p.classes[c].Put(&s)
}

// MaxPooled reports the largest slice length the pool keeps.
func (p *SlicePool[T]) MaxPooled() int { return p.maxPooled }
