package scanner

import (
	"time"

	"github.com/google/uuid"
)

// ReadLiteral consumes the exact keyword lit (true, false or null).
func ReadLiteral(data []byte, pos int, lit string) (int, bool) {
	pos = SkipWhitespace(data, pos)
	for i := 0; i < len(lit); i++ {
		if pos+i >= len(data) {
			return len(data), false
		}
		if data[pos+i] != lit[i] {
			return pos + i, false
		}
	}
	end := pos + len(lit)
	if !atDelimiter(data, end) {
		return end, false
	}
	return end, true
}

// ReadBool consumes true or false.
func ReadBool(data []byte, pos int) (bool, int, bool) {
	tok, pos := Classify(data, pos)
	switch tok {
	case TokenTrue:
		next, ok := ReadLiteral(data, pos, "true")
		return ok, next, ok
	case TokenFalse:
		next, ok := ReadLiteral(data, pos, "false")
		return false, next, ok
	}
	return false, pos, false
}

// ReadNull consumes null.
func ReadNull(data []byte, pos int) (int, bool) {
	return ReadLiteral(data, pos, "null")
}

// ReadUUID consumes a quoted unique identifier. Any form accepted by
// uuid.ParseBytes is allowed inside the quotes.
func ReadUUID(data []byte, pos int) (uuid.UUID, int, bool) {
	s, next, ok := ReadString(data, pos, nil)
	if !ok {
		return uuid.Nil, next, false
	}
	id, err := uuid.ParseBytes(s)
	if err != nil {
		return uuid.Nil, SkipWhitespace(data, pos), false
	}
	return id, next, true
}

// ReadTime consumes a quoted RFC 3339 timestamp, fractional seconds
// optional.
func ReadTime(data []byte, pos int) (time.Time, int, bool) {
	s, next, ok := ReadString(data, pos, nil)
	if !ok {
		return time.Time{}, next, false
	}
	t, err := time.Parse(time.RFC3339Nano, string(s))
	if err != nil {
		return time.Time{}, SkipWhitespace(data, pos), false
	}
	return t, next, true
}
