package voltjson

// ObjectConverter reads and writes *T through a PropertyMap. Reading runs
// in two passes: properties whose dependency has not been read yet are
// remembered by offset and decoded once the rest of the object is done.
type ObjectConverter[T any] struct {
	m *PropertyMap[T]
}

// Object returns the converter for m.
func Object[T any](m *PropertyMap[T]) *ObjectConverter[T] {
	return &ObjectConverter[T]{m: m}
}

// PropertyMap returns the schema the converter was built from.
func (o *ObjectConverter[T]) PropertyMap() *PropertyMap[T] { return o.m }

func (o *ObjectConverter[T]) CanWrite(v *T, p Policy) bool {
	return nullableCanWrite(v == nil, p)
}

// TryRead decodes one object. null yields nil and {} a fresh value with
// nothing set. Unknown keys are skipped. Nothing is returned on failure.
func (o *ObjectConverter[T]) TryRead(c *Cursor, p Policy) (*T, bool) {
	start := c.Offset()
	r, isNull, ok := beginObject(c)
	if !ok || isNull {
		return nil, ok
	}
	v := o.m.alloc()

	var satisfied slotSet
	var deferredBuf [MaxDependencySlots]int
	deferred := deferredBuf[:0]

	for {
		key, keyStart, more, ok := r.next()
		if !ok {
			c.seek(start)
			return nil, false
		}
		if !more {
			break
		}
		prop, found := o.m.lookup(key)
		if !found {
			if !c.Skip() {
				c.seek(start)
				return nil, false
			}
			continue
		}
		if !prop.readable {
			c.failAtPos(keyStart, KindReadDisabled)
			c.seek(start)
			return nil, false
		}
		if prop.dep != noSlot && !satisfied.has(prop.dep) {
			deferred = append(deferred, keyStart)
			if !c.Skip() {
				c.seek(start)
				return nil, false
			}
			continue
		}
		if !prop.read(c, v, p) {
			c.seek(start)
			return nil, false
		}
		if prop.slot != noSlot {
			satisfied.set(prop.slot)
		}
	}

	if len(deferred) == 0 {
		return v, true
	}
	end := c.Offset()
	for _, off := range deferred {
		if !o.readDeferred(c, v, p, off) {
			c.seek(start)
			return nil, false
		}
	}
	c.seek(end)
	return v, true
}

// readDeferred decodes the member whose key starts at off. Its value was
// already validated by the skip in the first pass.
func (o *ObjectConverter[T]) readDeferred(c *Cursor, v *T, p Policy, off int) bool {
	c.seek(off)
	key, ok := readKey(c)
	if !ok {
		return false
	}
	prop, found := o.m.lookup(key)
	if !found || prop.dep >= MaxDependencySlots {
		return c.failAtPos(off, KindUnresolvedDependency)
	}
	return prop.read(c, v, p)
}

// TryWrite emits the writable properties of v in declared order. A nil v
// is written as null.
func (o *ObjectConverter[T]) TryWrite(b *Buffer, v *T, p Policy) bool {
	if v == nil {
		WriteNull(b)
		return true
	}
	b.Push('{')
	first := true
	for _, prop := range o.m.props {
		pp := p | prop.exclude
		if !prop.shouldWrite(v, pp) {
			continue
		}
		if !first {
			b.Push(',')
		}
		first = false
		b.PushAll(prop.quoted)
		if !prop.write(b, v, pp) {
			return false
		}
	}
	b.Push('}')
	return true
}
