package scanner

import (
	"encoding/binary"
	"math/bits"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	swarLow  uint64 = 0x0101010101010101
	swarHigh uint64 = 0x8080808080808080
)

// swarZero sets the high bit of every zero byte of x. Bits above the first
// hit may be spurious, so only the lowest one is meaningful.
func swarZero(x uint64) uint64 {
	return (x - swarLow) & ^x & swarHigh
}

// IndexSpecial returns the index of the first byte of s that terminates a
// raw string run: a quote, a backslash or a control byte. It returns -1
// when there is none.
func IndexSpecial(s []byte) int {
	i := 0
	if wideScan {
		for ; i+8 <= len(s); i += 8 {
			x := binary.LittleEndian.Uint64(s[i:])
			m := swarZero(x^(swarLow*'"')) | swarZero(x^(swarLow*'\\')) | ((x - swarLow*0x20) & ^x & swarHigh)
			if m != 0 {
				return i + bits.TrailingZeros64(m)>>3
			}
		}
	}
	for ; i < len(s); i++ {
		if c := s[i]; c == '"' || c == '\\' || c < 0x20 {
			return i
		}
	}
	return -1
}

// ReadString consumes a quoted string at or after pos (leading whitespace
// is skipped) and returns its decoded UTF-8 content. Without escapes the
// result aliases data; otherwise it is decoded into scratch (which may be
// nil) and the grown scratch is returned. On failure next is the offset of
// the offending byte, or len(data) if the input ended.
func ReadString(data []byte, pos int, scratch []byte) (s []byte, next int, ok bool) {
	pos = SkipWhitespace(data, pos)
	if pos >= len(data) || data[pos] != '"' {
		return nil, pos, false
	}
	start := pos + 1
	i := IndexSpecial(data[start:])
	if i < 0 {
		return nil, len(data), false
	}
	end := start + i
	if data[end] == '"' {
		s = data[start:end]
		if !utf8.Valid(s) {
			return nil, start, false
		}
		return s, end + 1, true
	}
	return unescape(data, start, scratch[:0])
}

func unescape(data []byte, pos int, dst []byte) ([]byte, int, bool) {
	for {
		i := IndexSpecial(data[pos:])
		if i < 0 {
			return nil, len(data), false
		}
		dst = append(dst, data[pos:pos+i]...)
		pos += i
		switch c := data[pos]; {
		case c == '"':
			if !utf8.Valid(dst) {
				return nil, pos, false
			}
			return dst, pos + 1, true
		case c < 0x20:
			return nil, pos, false
		}
		if pos+1 >= len(data) {
			return nil, len(data), false
		}
		switch data[pos+1] {
		case '"', '\\', '/':
			dst = append(dst, data[pos+1])
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			r, next, ok := readHex4(data, pos+2)
			if !ok {
				return nil, next, false
			}
			pos = next
			if utf16.IsSurrogate(r) {
				// A lone surrogate decodes to U+FFFD like encoding/json does.
				if r2, next2, ok2 := readUnicodeEscape(data, pos); ok2 {
					if pair := utf16.DecodeRune(r, r2); pair != utf8.RuneError {
						r = pair
						pos = next2
					} else {
						r = utf8.RuneError
					}
				} else {
					r = utf8.RuneError
				}
			}
			dst = utf8.AppendRune(dst, r)
			continue
		default:
			return nil, pos + 1, false
		}
		pos += 2
	}
}

func readUnicodeEscape(data []byte, pos int) (rune, int, bool) {
	if pos+1 >= len(data) || data[pos] != '\\' || data[pos+1] != 'u' {
		return 0, pos, false
	}
	return readHex4(data, pos+2)
}

func readHex4(data []byte, pos int) (rune, int, bool) {
	if pos+4 > len(data) {
		return 0, len(data), false
	}
	var r rune
	for _, c := range data[pos : pos+4] {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, pos, false
		}
		r = r<<4 | rune(d)
	}
	return r, pos + 4, true
}

// SkipString validates and consumes a quoted string without decoding it.
func SkipString(data []byte, pos int) (int, bool) {
	pos = SkipWhitespace(data, pos)
	if pos >= len(data) || data[pos] != '"' {
		return pos, false
	}
	start := pos + 1
	pos = start
	for {
		i := IndexSpecial(data[pos:])
		if i < 0 {
			return len(data), false
		}
		pos += i
		c := data[pos]
		if c == '"' {
			if !utf8.Valid(data[start:pos]) {
				return start, false
			}
			return pos + 1, true
		}
		if c < 0x20 {
			return pos, false
		}
		if pos+1 >= len(data) {
			return len(data), false
		}
		switch data[pos+1] {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			pos += 2
		case 'u':
			_, next, ok := readHex4(data, pos+2)
			if !ok {
				return next, false
			}
			pos = next
		default:
			return pos + 1, false
		}
	}
}
