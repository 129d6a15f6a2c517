package buffer

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizable_Push(t *testing.T) {
	tests := []struct {
		name string
		pool Pool[int]
	}{
		{"no pool", nil},
		{"slice pool", NewSlicePool[int](0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New[int](0, tt.pool)
			defer r.Release()

			for i := 0; i < 1000; i++ {
				r.Push(i)
			}
			require.Equal(t, 1000, r.Len())
			assert.GreaterOrEqual(t, r.Cap(), r.Len())
			for i, v := range r.View() {
				if v != i {
					t.Fatalf("element %d: got %d", i, v)
				}
			}
		})
	}
}

func TestResizable_ReserveAndAdvance(t *testing.T) {
	r := New[byte](4, NewSlicePool[byte](0))
	defer r.Release()

	r.PushAll([]byte("ab"))
	seg := r.ReserveSegment(10)
	require.GreaterOrEqual(t, len(seg), 10)
	n := copy(seg, "cdefg")
	// Reserved but uncommitted bytes stay invisible.
	assert.Equal(t, "ab", string(r.View()))
	r.Advance(n)
	assert.Equal(t, "abcdefg", string(r.View()))

	assert.Panics(t, func() { r.Advance(r.Cap()) })
}

func TestResizable_ToOwned(t *testing.T) {
	r := New[string](0, nil)
	empty := r.ToOwned()
	require.NotNil(t, empty)
	assert.Len(t, empty, 0)

	r.Push("x")
	r.Push("y")
	owned := r.ToOwned()
	r.Release()
	assert.Equal(t, []string{"x", "y"}, owned)
	assert.Equal(t, 0, r.Len())
}

func TestResizable_TruncateReset(t *testing.T) {
	r := New[byte](0, nil)
	r.PushAll([]byte("hello"))
	r.Truncate(2)
	assert.Equal(t, "he", string(r.View()))
	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Panics(t, func() { r.Truncate(1) })
}

func TestSlicePool_Classes(t *testing.T) {
	p := NewSlicePool[byte](1000)
	assert.Equal(t, 1024, p.MaxPooled())

	tests := []struct {
		request int
		want    int
	}{
		{1, 16},
		{16, 16},
		{17, 32},
		{1000, 1024},
		{1025, 1025},
	}
	for _, tt := range tests {
		s := p.Rent(tt.request)
		assert.Len(t, s, tt.want, "request %d", tt.request)
		p.Return(s)
	}

	// Foreign slices are not adopted.
	p.Return(make([]byte, 17))
	assert.Len(t, p.Rent(17), 32)
}

func TestReadAll(t *testing.T) {
	src := strings.Repeat("0123456789", 1000)

	r := New[byte](0, NewSlicePool[byte](0))
	defer r.Release()
	n, err := ReadAll(&r, strings.NewReader(src), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), n)
	assert.True(t, bytes.Equal([]byte(src), r.View()))
}

func TestReadAll_Limit(t *testing.T) {
	r := New[byte](0, nil)
	n, err := ReadAll(&r, strings.NewReader("abcdefgh"), 5)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, "abcde", string(r.View()))

	r.Reset()
	n, err = ReadAll(&r, strings.NewReader("abcde"), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestReadAll_Error(t *testing.T) {
	r := New[byte](0, nil)
	_, err := ReadAll(&r, failingReader{}, 0)
	assert.True(t, errors.Is(err, io.ErrClosedPipe))
}
