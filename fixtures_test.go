package voltjson

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/biggeezerdevelopment/voltjson/buffer"
)

type leaf struct {
	C []int
}

type node struct {
	A int
	B *leaf
}

var leafMap = MustPropertyMap(
	Field("c", Slice(Int[int]()),
		func(l *leaf) []int { return l.C },
		func(l *leaf, v []int) { l.C = v }),
)

var nodeMap = MustPropertyMap(
	Field("a", Int[int](),
		func(n *node) int { return n.A },
		func(n *node, v int) { n.A = v }),
	Field[node, *leaf]("b", Object(leafMap),
		func(n *node) *leaf { return n.B },
		func(n *node, v *leaf) { n.B = v }),
)

// pair has y depending on x. XAtY captures what x held when y was read,
// which shows whether the deferred pass ran after x.
type pair struct {
	X    int
	Y    int
	XAtY int
}

var pairMap = MustPropertyMap(
	FieldFunc("y",
		func(c *Cursor, v *pair, p Policy) bool {
			y, ok := Int[int]().TryRead(c, p)
			if !ok {
				return false
			}
			v.Y = y
			v.XAtY = v.X
			return true
		},
		func(b *Buffer, v *pair, _ Policy) bool {
			WriteInt(b, int64(v.Y))
			return true
		}).DependsOn("x"),
	Field("x", Int[int](),
		func(v *pair) int { return v.X },
		func(v *pair, x int) { v.X = x }),
)

func encode[T any](t *testing.T, conv Converter[T], v T, p Policy) string {
	t.Helper()
	b := buffer.New[byte](0, nil)
	defer b.Release()
	require.True(t, conv.TryWrite(&b, v, p), "write %v", v)
	return string(b.View())
}

func decode[T any](conv Converter[T], input string) (T, *Cursor, bool) {
	c := NewCursor([]byte(input))
	v, ok := conv.TryRead(c, 0)
	return v, c, ok
}

func roundTrip[T any](t *testing.T, conv Converter[T], v T) T {
	t.Helper()
	out := encode(t, conv, v, 0)
	got, c, ok := decode(conv, out)
	require.True(t, ok, "read back %s", out)
	require.True(t, c.AtEnd(), "unconsumed input after %s", out)
	return got
}
