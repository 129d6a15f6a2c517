package scanner

// Skip consumes exactly one value of any nesting depth starting at or after
// pos. Containers are tracked on an explicit stack, so depth is bounded by
// memory rather than the goroutine stack. Separators and scalars are fully
// validated.
func Skip(data []byte, pos int) (int, bool) {
	var stackBuf [32]byte
	stack := stackBuf[:0]

	for {
		// A value is expected at pos.
		tok, p := Classify(data, pos)
		var ok bool
		switch tok {
		case TokenObjectBegin:
			p++
			next, q := Classify(data, p)
			if next == TokenObjectEnd {
				pos = q + 1
				break
			}
			stack = append(stack, '{')
			if pos, ok = skipKey(data, p); !ok {
				return pos, false
			}
			continue
		case TokenArrayBegin:
			p++
			next, q := Classify(data, p)
			if next == TokenArrayEnd {
				pos = q + 1
				break
			}
			stack = append(stack, '[')
			pos = p
			continue
		case TokenString:
			if pos, ok = SkipString(data, p); !ok {
				return pos, false
			}
		case TokenNumber:
			var end int
			if _, end, _, ok = ScanNumber(data, p); !ok {
				return end, false
			}
			pos = end
		case TokenTrue:
			if pos, ok = ReadLiteral(data, p, "true"); !ok {
				return pos, false
			}
		case TokenFalse:
			if pos, ok = ReadLiteral(data, p, "false"); !ok {
				return pos, false
			}
		case TokenNull:
			if pos, ok = ReadLiteral(data, p, "null"); !ok {
				return pos, false
			}
		default:
			return p, false
		}

		// A value just ended; close containers until another value is due.
		for {
			if len(stack) == 0 {
				return pos, true
			}
			top := stack[len(stack)-1]
			tok, p := Classify(data, pos)
			switch {
			case tok == TokenComma:
				pos = p + 1
				if top == '{' {
					if pos, ok = skipKey(data, pos); !ok {
						return pos, false
					}
				}
			case tok == TokenObjectEnd && top == '{', tok == TokenArrayEnd && top == '[':
				pos = p + 1
				stack = stack[:len(stack)-1]
				continue
			default:
				return p, false
			}
			break
		}
	}
}

// skipKey consumes `"key" :` and leaves pos at the value.
func skipKey(data []byte, pos int) (int, bool) {
	pos, ok := SkipString(data, pos)
	if !ok {
		return pos, false
	}
	tok, p := Classify(data, pos)
	if tok != TokenColon {
		return p, false
	}
	return p + 1, true
}

// Valid reports whether data holds exactly one JSON value surrounded by
// optional whitespace.
func Valid(data []byte) bool {
	pos, ok := Skip(data, 0)
	return ok && SkipWhitespace(data, pos) == len(data)
}
