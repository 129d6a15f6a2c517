package scanner

import (
	"math"
	"strconv"
	"unsafe"
)

func isDigit(c byte) bool {
	return charClass[c]&classDigit != 0
}

// atDelimiter reports whether a scalar ending at pos is properly
// terminated: by the end of input, whitespace or structural punctuation.
func atDelimiter(data []byte, pos int) bool {
	return pos >= len(data) || charClass[data[pos]]&(classWhitespace|classStructural) != 0
}

// ScanNumber validates a JSON number at or after pos and returns its extent.
// The grammar is the strict RFC 8259 one: optional minus, no leading
// zeros, digits required after '.' and in the exponent. isInt reports that
// there was neither a fraction nor an exponent.
func ScanNumber(data []byte, pos int) (start, end int, isInt, ok bool) {
	i := SkipWhitespace(data, pos)
	start = i
	if i < len(data) && data[i] == '-' {
		i++
	}
	if i >= len(data) {
		return start, i, false, false
	}
	switch {
	case data[i] == '0':
		i++
	case isDigit(data[i]):
		for i < len(data) && isDigit(data[i]) {
			i++
		}
	default:
		return start, i, false, false
	}
	isInt = true
	if i < len(data) && data[i] == '.' {
		isInt = false
		i++
		if i >= len(data) || !isDigit(data[i]) {
			return start, i, false, false
		}
		for i < len(data) && isDigit(data[i]) {
			i++
		}
	}
	if i < len(data) && (data[i] == 'e' || data[i] == 'E') {
		isInt = false
		i++
		if i < len(data) && (data[i] == '+' || data[i] == '-') {
			i++
		}
		if i >= len(data) || !isDigit(data[i]) {
			return start, i, false, false
		}
		for i < len(data) && isDigit(data[i]) {
			i++
		}
	}
	if !atDelimiter(data, i) {
		return start, i, false, false
	}
	return start, i, isInt, true
}

// ParseInt reads an integer literal that must fit in bitSize bits.
func ParseInt(data []byte, pos, bitSize int) (int64, int, bool) {
	start, end, isInt, ok := ScanNumber(data, pos)
	if !ok {
		return 0, end, false
	}
	if !isInt {
		return 0, start, false
	}
	digits := data[start:end]
	neg := digits[0] == '-'
	if neg {
		digits = digits[1:]
	}
	u, ok := accumulate(digits)
	if !ok {
		return 0, start, false
	}
	limit := uint64(1) << (bitSize - 1)
	if neg {
		if u > limit {
			return 0, start, false
		}
		return -int64(u), end, true
	}
	if u >= limit {
		return 0, start, false
	}
	return int64(u), end, true
}

// ParseUint reads a non-negative integer literal that must fit in bitSize
// bits.
func ParseUint(data []byte, pos, bitSize int) (uint64, int, bool) {
	start, end, isInt, ok := ScanNumber(data, pos)
	if !ok {
		return 0, end, false
	}
	if !isInt || data[start] == '-' {
		return 0, start, false
	}
	u, ok := accumulate(data[start:end])
	if !ok || (bitSize < 64 && u >= uint64(1)<<bitSize) {
		return 0, start, false
	}
	return u, end, true
}

func accumulate(digits []byte) (uint64, bool) {
	var u uint64
	for _, c := range digits {
		d := uint64(c - '0')
		if u > (math.MaxUint64-d)/10 {
			return 0, false
		}
		u = u*10 + d
	}
	return u, true
}

// ParseFloat reads any number literal as a float of bitSize bits. Values
// out of range fail rather than saturating to infinity.
func ParseFloat(data []byte, pos, bitSize int) (float64, int, bool) {
	start, end, _, ok := ScanNumber(data, pos)
	if !ok {
		return 0, end, false
	}
	f, err := strconv.ParseFloat(unsafeString(data[start:end]), bitSize)
	if err != nil {
		return 0, start, false
	}
	return f, end, true
}

// unsafeString converts without copying; the result must not outlive b.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
