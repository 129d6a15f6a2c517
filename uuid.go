package voltjson

import "github.com/google/uuid"

// UUID converts quoted unique identifiers. uuid.Nil is the default value.
func UUID() Converter[uuid.UUID] { return uuidConverter{} }

type uuidConverter struct{}

func (uuidConverter) CanWrite(v uuid.UUID, p Policy) bool { return valueCanWrite(v, p) }

func (uuidConverter) TryRead(c *Cursor, _ Policy) (uuid.UUID, bool) { return c.ReadUUID() }

func (uuidConverter) TryWrite(b *Buffer, v uuid.UUID, _ Policy) bool {
	WriteUUID(b, v)
	return true
}
