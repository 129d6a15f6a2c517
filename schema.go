package voltjson

import "fmt"

// MaxDependencySlots is the number of distinct dependency targets one
// property map may declare. Each target owns one bit of the per-parse
// satisfied set.
const MaxDependencySlots = 8

const noSlot = -1

// Property describes one wire key of T: how to read it into a *T, how to
// write it from one, and whether it must wait for another property.
// Properties are configured with chained calls and frozen by Build.
type Property[T any] struct {
	key       string
	read      func(c *Cursor, v *T, p Policy) bool
	write     func(b *Buffer, v *T, p Policy) bool
	canWrite  func(v *T, p Policy) bool
	readable  bool
	writable  bool
	exclude   Policy
	dependsOn string
	hasDep    bool

	// resolved by Build
	quoted []byte
	dep    int
	slot   int
}

// Field binds key to a field of T through a value converter. A nil set
// makes the property unreadable and a nil get makes it unwritable.
func Field[T, V any](key string, conv Converter[V], get func(*T) V, set func(*T, V)) *Property[T] {
	prop := &Property[T]{key: key, readable: set != nil, writable: get != nil}
	if set != nil {
		prop.read = func(c *Cursor, v *T, p Policy) bool {
			val, ok := conv.TryRead(c, p)
			if ok {
				set(v, val)
			}
			return ok
		}
	}
	if get != nil {
		prop.write = func(b *Buffer, v *T, p Policy) bool {
			return conv.TryWrite(b, get(v), p)
		}
		prop.canWrite = func(v *T, p Policy) bool {
			return conv.CanWrite(get(v), p)
		}
	}
	return prop
}

// FieldFunc binds key to hand-written read and write functions. The read
// function sees the partially decoded value, which is how a property
// chooses its format from one it depends on. Either function may be nil.
func FieldFunc[T any](key string, read func(c *Cursor, v *T, p Policy) bool, write func(b *Buffer, v *T, p Policy) bool) *Property[T] {
	return &Property[T]{
		key:      key,
		read:     read,
		write:    write,
		readable: read != nil,
		writable: write != nil,
	}
}

// Key returns the wire name.
func (prop *Property[T]) Key() string { return prop.key }

// DependsOn defers reading this property until the property named key has
// been read from the same object.
func (prop *Property[T]) DependsOn(key string) *Property[T] {
	prop.dependsOn = key
	prop.hasDep = true
	return prop
}

// DisableRead makes the key forbidden on input: an object carrying it
// fails to decode.
func (prop *Property[T]) DisableRead() *Property[T] {
	prop.readable = false
	return prop
}

// DisableWrite keeps the property out of the output.
func (prop *Property[T]) DisableWrite() *Property[T] {
	prop.writable = false
	return prop
}

// Exclude adds exclusion flags that apply to this property on every
// write, on top of the caller's policy.
func (prop *Property[T]) Exclude(p Policy) *Property[T] {
	prop.exclude |= p
	return prop
}

func (prop *Property[T]) shouldWrite(v *T, p Policy) bool {
	if !prop.writable {
		return false
	}
	return prop.canWrite == nil || prop.canWrite(v, p)
}

// Schema lists the properties of T before they are validated into a
// PropertyMap.
type Schema[T any] struct {
	Properties []*Property[T]
	// Ignored keys are dropped from Properties and skipped on input like
	// unknown keys.
	Ignored []string
	// New constructs the value a read decodes into. It defaults to new(T).
	New func() *T
}

// PropertyMap is the validated, immutable schema of T. It is safe for
// concurrent use.
type PropertyMap[T any] struct {
	props []*Property[T]
	index map[string]int
	slots int
	alloc func() *T
}

// NewPropertyMap validates props into a PropertyMap.
func NewPropertyMap[T any](props ...*Property[T]) (*PropertyMap[T], error) {
	return Schema[T]{Properties: props}.Build()
}

// MustPropertyMap is NewPropertyMap that panics on a schema error. It is
// meant for package-level schema variables.
func MustPropertyMap[T any](props ...*Property[T]) *PropertyMap[T] {
	m, err := NewPropertyMap(props...)
	if err != nil {
		panic(err)
	}
	return m
}

// Build validates the schema: keys are unique, every dependency names
// another property that has no dependency of its own, and at most
// MaxDependencySlots properties are dependency targets.
func (s Schema[T]) Build() (*PropertyMap[T], error) {
	ignored := make(map[string]struct{}, len(s.Ignored))
	for _, key := range s.Ignored {
		ignored[key] = struct{}{}
	}

	m := &PropertyMap[T]{
		props: make([]*Property[T], 0, len(s.Properties)),
		index: make(map[string]int, len(s.Properties)),
		alloc: s.New,
	}
	if m.alloc == nil {
		m.alloc = func() *T { return new(T) }
	}
	for _, prop := range s.Properties {
		if _, skip := ignored[prop.key]; skip {
			continue
		}
		if _, dup := m.index[prop.key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProperty, prop.key)
		}
		cp := *prop
		cp.quoted = append(appendQuoted(nil, prop.key), ':')
		cp.dep = noSlot
		cp.slot = noSlot
		m.index[prop.key] = len(m.props)
		m.props = append(m.props, &cp)
	}

	for _, prop := range m.props {
		if !prop.hasDep {
			continue
		}
		if prop.dependsOn == prop.key {
			return nil, fmt.Errorf("%w: %q", ErrSelfDependency, prop.key)
		}
		i, ok := m.index[prop.dependsOn]
		if !ok {
			return nil, fmt.Errorf("%w: %q depends on %q", ErrUnknownDependency, prop.key, prop.dependsOn)
		}
		target := m.props[i]
		if target.hasDep {
			return nil, fmt.Errorf("%w: %q -> %q -> %q", ErrDependencyChain, prop.key, target.key, target.dependsOn)
		}
		if target.slot == noSlot {
			if m.slots == MaxDependencySlots {
				return nil, fmt.Errorf("%w: more than %d targets", ErrTooManyDependencies, MaxDependencySlots)
			}
			target.slot = m.slots
			m.slots++
		}
		prop.dep = target.slot
	}
	return m, nil
}

// Len returns the number of properties.
func (m *PropertyMap[T]) Len() int { return len(m.props) }

// Keys returns the wire names in declared order.
func (m *PropertyMap[T]) Keys() []string {
	keys := make([]string, len(m.props))
	for i, prop := range m.props {
		keys[i] = prop.key
	}
	return keys
}

// DependencySlots returns how many dependency targets the map tracks.
func (m *PropertyMap[T]) DependencySlots() int { return m.slots }

func (m *PropertyMap[T]) lookup(key []byte) (*Property[T], bool) {
	i, ok := m.index[string(key)]
	if !ok {
		return nil, false
	}
	return m.props[i], true
}

// slotSet records which dependency targets have been read.
type slotSet uint8

func (s *slotSet) set(slot int) { *s |= 1 << slot }

func (s slotSet) has(slot int) bool { return s&(1<<slot) != 0 }
