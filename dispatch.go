package jflow

// dispatchItem is the pure-from-the-caller's-perspective core of the
// parser: given the first non-whitespace byte of a value, it either
// consumes an immediate value inline (null, a bool, a number), opens a
// new sub-parser handle (for a string, array, or object) acquiring the
// cursor on behalf of child, or reports a syntax error.
//
// parent is the handle (or nil, for the root Parser) that currently holds
// the cursor; any handle this call opens is registered as parent's child
// in the session so the exclusivity invariant keeps holding.
func dispatchItem(s *session, parent any, first byte, loc LineCol) (Value, error) {
	switch {
	case isDigit(first) || first == '-':
		text := scanNumber(s.cursor, first)
		n, kind, err := parseNumber(text)
		if err != nil {
			return Value{}, syntaxErrorf(kind, loc, nil, "%v", err)
		}
		return valueNumber(n), nil

	case first == '"':
		ps := newParseString(s, parent)
		return valueString(ps), nil

	case first == '[':
		pa := newParseArray(s, parent)
		return valueArray(pa), nil

	case first == '{':
		po := newParseObject(s, parent)
		return valueObject(po), nil

	case isASCIILetter(first):
		ident := scanIdentifier(s.cursor, first)
		switch {
		case first == 't' && ident == "true":
			return valueBool(true), nil
		case first == 'f' && ident == "false":
			return valueBool(false), nil
		case first == 'n' && ident == "null":
			return valueNull(), nil
		default:
			return Value{}, syntaxErrorf(KindInvalidIdentifier, loc, nil, "invalid identifier %q", ident)
		}

	default:
		return Value{}, syntaxErrorf(KindInvalidIdentifier, loc, nil, "unexpected byte %q", first)
	}
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// scanIdentifier consumes a bare identifier run: the given first byte plus
// everything up to the next whitespace byte or end-of-stream, matching
// spec §4.1's eat_until_whitespace semantics exactly (it does not stop at
// structural bytes like ',' or ']').
func scanIdentifier(c *ByteCursor, first byte) string {
	buf := []byte{first}
	for {
		b, ok := c.Peek()
		if !ok || isJSONSpace(b) {
			return string(buf)
		}
		c.Advance()
		buf = append(buf, b)
	}
}

// scanNumber accumulates bytes while the lookahead matches the number
// character class [0-9 . e E + -], per spec §4.4. No validation beyond
// that class membership is performed here; malformed accumulations (like
// "1.2.3") are caught when parseNumber narrows the text.
func scanNumber(c *ByteCursor, first byte) []byte {
	buf := []byte{first}
	for {
		b, ok := c.Peek()
		if !ok || !isNumberByte(b) {
			return buf
		}
		c.Advance()
		buf = append(buf, b)
	}
}

func isNumberByte(b byte) bool {
	return isDigit(b) || b == '.' || b == 'e' || b == 'E' || b == '+' || b == '-'
}

func errEOF(kind Kind, loc LineCol, context string) error {
	return syntaxErrorf(kind, loc, nil, "unexpected end of input while parsing %s", context)
}
