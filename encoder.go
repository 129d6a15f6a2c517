package voltjson

import (
	"encoding/base64"
	"math"
	"strconv"
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/google/uuid"

	"github.com/biggeezerdevelopment/voltjson/buffer"
)

// Buffer is the growable byte store every writer appends into.
type Buffer = buffer.Resizable[byte]

const hexDigits = "0123456789abcdef"

// commit finalizes an append into a reserved segment. If the append had to
// reallocate, out no longer aliases the buffer and is copied in instead.
func commit(b *Buffer, seg, out []byte) {
	if len(out) <= cap(seg) {
		b.Advance(len(out))
		return
	}
	b.PushAll(out)
}

// reserve returns the free tail of b with capacity clipped to its length,
// so appends beyond it reallocate rather than run past the segment.
func reserve(b *Buffer, n int) []byte {
	seg := b.ReserveSegment(n)
	return seg[:0:len(seg)]
}

// WriteRaw appends pre-encoded JSON.
func WriteRaw(b *Buffer, raw []byte) { b.PushAll(raw) }

// WriteNull appends the null literal.
func WriteNull(b *Buffer) { b.PushAll([]byte("null")) }

// WriteBool appends true or false.
func WriteBool(b *Buffer, v bool) {
	if v {
		b.PushAll([]byte("true"))
	} else {
		b.PushAll([]byte("false"))
	}
}

// WriteInt appends a base-10 integer.
func WriteInt(b *Buffer, v int64) {
	seg := reserve(b, 20)
	commit(b, seg, strconv.AppendInt(seg, v, 10))
}

// WriteUint appends a base-10 unsigned integer.
func WriteUint(b *Buffer, v uint64) {
	seg := reserve(b, 20)
	commit(b, seg, strconv.AppendUint(seg, v, 10))
}

// WriteQuotedInt appends an integer inside quotes.
func WriteQuotedInt(b *Buffer, v int64) {
	seg := reserve(b, 22)
	out := append(seg, '"')
	out = strconv.AppendInt(out, v, 10)
	commit(b, seg, append(out, '"'))
}

// WriteQuotedUint appends an unsigned integer inside quotes.
func WriteQuotedUint(b *Buffer, v uint64) {
	seg := reserve(b, 22)
	out := append(seg, '"')
	out = strconv.AppendUint(out, v, 10)
	commit(b, seg, append(out, '"'))
}

// WriteFloat appends the shortest representation of f that round-trips at
// bitSize. NaN and infinities have no JSON form and fail.
func WriteFloat(b *Buffer, f float64, bitSize int) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	seg := reserve(b, 32)
	commit(b, seg, appendFloat(seg, f, bitSize))
	return true
}

// appendFloat formats like encoding/json: plain decimal for ordinary
// magnitudes, exponent form with a trimmed exponent otherwise.
func appendFloat(dst []byte, f float64, bitSize int) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bitSize == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bitSize == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	dst = strconv.AppendFloat(dst, f, format, -1, bitSize)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// WriteString appends s as a quoted, escaped JSON string. Invalid UTF-8 is
// replaced with an escaped U+FFFD.
func WriteString(b *Buffer, s string) {
	seg := reserve(b, len(s)+8)
	commit(b, seg, appendQuoted(seg, s))
}

// WriteUTF8 is WriteString for a byte slice.
func WriteUTF8(b *Buffer, s []byte) {
	WriteString(b, bytesString(s))
}

// bytesString views b as a string without copying. The result must not
// outlive b.
func bytesString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	dst = appendEscaped(dst, s)
	return append(dst, '"')
}

func appendEscaped(dst []byte, s string) []byte {
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			dst = append(dst, s[start:i]...)
			switch c {
			case '"', '\\':
				dst = append(dst, '\\', c)
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, s[start:i]...)
			dst = append(dst, `\ufffd`...)
			i++
			start = i
			continue
		}
		// U+2028 and U+2029 are escaped as encoding/json does.
		if r == '\u2028' || r == '\u2029' {
			dst = append(dst, s[start:i]...)
			dst = append(dst, '\\', 'u', '2', '0', '2', hexDigits[r&0xf])
			i += size
			start = i
			continue
		}
		i += size
	}
	return append(dst, s[start:]...)
}

// WriteBytes appends p as a quoted standard base64 string.
func WriteBytes(b *Buffer, p []byte) {
	n := base64.StdEncoding.EncodedLen(len(p))
	seg := b.ReserveSegment(n + 2)
	seg[0] = '"'
	base64.StdEncoding.Encode(seg[1:], p)
	seg[n+1] = '"'
	b.Advance(n + 2)
}

// WriteUUID appends id in its canonical quoted form.
func WriteUUID(b *Buffer, id uuid.UUID) {
	seg := b.ReserveSegment(38)
	seg[0] = '"'
	j := 1
	for i, v := range id {
		if i == 4 || i == 6 || i == 8 || i == 10 {
			seg[j] = '-'
			j++
		}
		seg[j] = hexDigits[v>>4]
		seg[j+1] = hexDigits[v&0xf]
		j += 2
	}
	seg[37] = '"'
	b.Advance(38)
}

// WriteTime appends t as a quoted RFC 3339 timestamp with nanoseconds.
func WriteTime(b *Buffer, t time.Time) {
	seg := reserve(b, len(time.RFC3339Nano)+8)
	out := append(seg, '"')
	out = t.AppendFormat(out, time.RFC3339Nano)
	commit(b, seg, append(out, '"'))
}
