package voltjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type triple struct {
	A, B, C int
}

func tripleField(key string, get func(*triple) *int) *Property[triple] {
	return Field(key, Int[int](),
		func(v *triple) int { return *get(v) },
		func(v *triple, x int) { *get(v) = x })
}

func tripleA(v *triple) *int { return &v.A }
func tripleB(v *triple) *int { return &v.B }
func tripleC(v *triple) *int { return &v.C }

func TestSchemaBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		props func() []*Property[triple]
		err   error
	}{
		{
			name: "duplicate key",
			props: func() []*Property[triple] {
				return []*Property[triple]{tripleField("a", tripleA), tripleField("a", tripleB)}
			},
			err: ErrDuplicateProperty,
		},
		{
			name: "unknown dependency",
			props: func() []*Property[triple] {
				return []*Property[triple]{tripleField("a", tripleA).DependsOn("missing")}
			},
			err: ErrUnknownDependency,
		},
		{
			name: "self dependency",
			props: func() []*Property[triple] {
				return []*Property[triple]{tripleField("a", tripleA).DependsOn("a")}
			},
			err: ErrSelfDependency,
		},
		{
			name: "dependency chain",
			props: func() []*Property[triple] {
				return []*Property[triple]{
					tripleField("a", tripleA).DependsOn("b"),
					tripleField("b", tripleB).DependsOn("c"),
					tripleField("c", tripleC),
				}
			},
			err: ErrDependencyChain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewPropertyMap(tt.props()...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, m)
		})
	}
}

func TestSchemaTooManyDependencyTargets(t *testing.T) {
	type flat struct{ V [2*MaxDependencySlots + 2]int }

	field := func(key string, i int) *Property[flat] {
		return Field(key, Int[int](),
			func(v *flat) int { return v.V[i] },
			func(v *flat, x int) { v.V[i] = x })
	}

	var props []*Property[flat]
	for i := 0; i <= MaxDependencySlots; i++ {
		target := string(rune('a' + i))
		props = append(props, field(target, 2*i), field(target+"_dep", 2*i+1).DependsOn(target))
	}

	_, err := NewPropertyMap(props...)
	assert.ErrorIs(t, err, ErrTooManyDependencies)

	// Exactly at the limit is fine.
	m, err := NewPropertyMap(props[:2*MaxDependencySlots]...)
	require.NoError(t, err)
	assert.Equal(t, MaxDependencySlots, m.DependencySlots())
}

func TestSchemaSharedDependencyTarget(t *testing.T) {
	m, err := NewPropertyMap(
		tripleField("b", tripleB).DependsOn("a"),
		tripleField("c", tripleC).DependsOn("a"),
		tripleField("a", tripleA),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, m.DependencySlots())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"b", "c", "a"}, m.Keys())

	got, _, ok := decode(Object(m), `{"c":3,"b":2,"a":1}`)
	require.True(t, ok)
	assert.Equal(t, &triple{A: 1, B: 2, C: 3}, got)
}

func TestSchemaBuildCopiesProperties(t *testing.T) {
	a := tripleField("a", tripleA)
	m1 := MustPropertyMap(a, tripleField("b", tripleB))

	// Reconfiguring the builder afterwards must not leak into m1.
	a.DisableRead()
	m2 := MustPropertyMap(a)

	got, _, ok := decode(Object(m1), `{"a":1}`)
	require.True(t, ok)
	assert.Equal(t, 1, got.A)

	_, _, ok = decode(Object(m2), `{"a":1}`)
	assert.False(t, ok)
}

func TestSchemaQuotedKeys(t *testing.T) {
	m := MustPropertyMap(
		Field("we\"ird\n", Int[int](),
			func(v *triple) int { return v.A },
			func(v *triple, x int) { v.A = x }),
	)
	conv := Object(m)
	out := encode(t, conv, &triple{A: 2}, 0)
	assert.Equal(t, `{"we\"ird\n":2}`, out)

	got, _, ok := decode(conv, out)
	require.True(t, ok)
	assert.Equal(t, 2, got.A)
}

func TestSchemaIgnoredDependencyTarget(t *testing.T) {
	_, err := Schema[triple]{
		Properties: []*Property[triple]{
			tripleField("a", tripleA).DependsOn("b"),
			tripleField("b", tripleB),
		},
		Ignored: []string{"b"},
	}.Build()
	assert.ErrorIs(t, err, ErrUnknownDependency)
}

func TestMustPropertyMapPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustPropertyMap(tripleField("a", tripleA), tripleField("a", tripleA))
	})
}

func TestFieldWithoutAccessors(t *testing.T) {
	m := MustPropertyMap(
		Field[triple, int]("ro", Int[int](), func(v *triple) int { return v.A }, nil),
		Field[triple, int]("wo", Int[int](), nil, func(v *triple, x int) { v.B = x }),
	)
	conv := Object(m)
	assert.Equal(t, `{"ro":4}`, encode(t, conv, &triple{A: 4, B: 5}, 0))

	got, _, ok := decode(conv, `{"wo":6}`)
	require.True(t, ok)
	assert.Equal(t, 6, got.B)

	_, c, ok := decode(conv, `{"ro":6}`)
	require.False(t, ok)
	kind, off := c.Failure()
	assert.Equal(t, KindReadDisabled, kind)
	assert.Equal(t, 1, off)
}
