package jflow

import (
	"unicode/utf8"

	"github.com/arcspan/jflow/internal/escape"
)

// A ParseString reads the body of a JSON string. The opening quote has
// already been consumed by whoever constructed the handle (dispatchItem,
// or ParseObject for a key). It is the exclusive cursor holder for its
// lifetime; construct one via a Value returned by Parser/ParseArray/
// ParseObject/KeyVal, never directly.
type ParseString struct {
	s      *session
	parent any
	ended  bool // the closing quote has been consumed
	closed bool
}

func newParseString(s *session, parent any) *ParseString {
	ps := &ParseString{s: s, parent: parent}
	s.acquire(parent, ps)
	return ps
}

// ReadOwned allocates a buffer, decodes the string body up to (and
// including) the closing quote, and returns it.
func (ps *ParseString) ReadOwned() (string, error) {
	out, err := ps.readBody(nil)
	return string(out), err
}

// ReadInto decodes the string body, appending it to buf, which may be
// reused across calls to amortize allocation.
func (ps *ParseString) ReadInto(buf []byte) ([]byte, error) {
	return ps.readBody(buf)
}

// ReadChars returns an iterator that yields one decoded character at a
// time. The returned ParseChars shares ps's cursor ownership: ps remains
// the session's registered holder until the ParseChars (or ps itself) is
// closed.
func (ps *ParseString) ReadChars() *ParseChars {
	return &ParseChars{ps: ps}
}

// Close discards ps. If its body was not fully consumed, this enqueues a
// deferred skip that finishes consuming it (including the closing quote)
// on the session's next active read.
func (ps *ParseString) Close() error {
	if ps.closed {
		return nil
	}
	ps.s.checkHolder(ps)
	if !ps.ended {
		ps.s.skip.push(skipJob{kind: skipStringJob})
	}
	ps.closed = true
	ps.s.release(ps, ps.parent)
	return nil
}

func (ps *ParseString) readBody(dst []byte) ([]byte, error) {
	ps.s.checkHolder(ps)
	c := ps.s.cursor
	for !ps.ended {
		b, ok := c.Advance()
		if !ok {
			return dst, ps.eofErr()
		}
		switch {
		case b == '"':
			ps.ended = true
		case b == '\\':
			dec, err := escape.DecodeEscape(c)
			if err != nil {
				return dst, ps.escapeErr(err)
			}
			dst = append(dst, dec...)
		case b < 0x20:
			return dst, syntaxErrorf(KindControlCharacterWhileParsingString, c.LineCol(), nil, "unescaped control byte %#02x", b)
		default:
			dst = append(dst, b)
		}
	}
	return dst, nil
}

// skipToEnd scans to the closing quote without decoding into an output
// buffer, for use by the deferred skip job.
func (ps *ParseString) skipToEnd() error {
	ps.s.checkHolder(ps)
	c := ps.s.cursor
	for !ps.ended {
		b, ok := c.Advance()
		if !ok {
			return ps.eofErr()
		}
		switch {
		case b == '"':
			ps.ended = true
		case b == '\\':
			if _, err := escape.DecodeEscape(c); err != nil {
				return ps.escapeErr(err)
			}
		case b < 0x20:
			return syntaxErrorf(KindControlCharacterWhileParsingString, c.LineCol(), nil, "unescaped control byte %#02x", b)
		}
	}
	return nil
}

func (ps *ParseString) eofErr() error {
	if err := ps.s.cursor.Err(); err != nil {
		return err
	}
	return errEOF(KindEofWhileParsingString, ps.s.cursor.LineCol(), "string")
}

func (ps *ParseString) escapeErr(err error) error {
	return syntaxErrorf(escapeErrKind(err), ps.s.cursor.LineCol(), err, "%v", err)
}

func escapeErrKind(err error) Kind {
	switch {
	case isEscapeErr(err, escape.ErrInvalidUnicodeCodePoint):
		return KindInvalidUnicodeCodePoint
	case isEscapeErr(err, escape.ErrLoneLeadingSurrogate):
		return KindLoneLeadingSurrogateInHexEscape
	case isEscapeErr(err, escape.ErrUnexpectedEndOfHexEscape):
		return KindUnexpectedEndOfHexEscape
	default:
		return KindInvalidEscape
	}
}

func isEscapeErr(err, target error) bool {
	for err != nil {
		if err == target {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// A ParseChars is a single-character-at-a-time iterator over the body of
// a ParseString.
type ParseChars struct {
	ps   *ParseString
	done bool
}

// Next returns the next decoded character, or ok=false when the closing
// quote has been reached. Dropping a ParseChars before it is exhausted
// enqueues the same deferred skip as dropping its underlying ParseString,
// since the two share one cursor-ownership record.
func (pc *ParseChars) Next() (rune, bool, error) {
	if pc.done {
		return 0, false, nil
	}
	ps := pc.ps
	ps.s.checkHolder(ps)
	if ps.ended {
		pc.done = true
		return 0, false, nil
	}
	c := ps.s.cursor
	b, ok := c.Advance()
	if !ok {
		return 0, false, ps.eofErr()
	}
	switch {
	case b == '"':
		ps.ended = true
		pc.done = true
		return 0, false, nil
	case b == '\\':
		dec, err := escape.DecodeEscape(c)
		if err != nil {
			return 0, false, ps.escapeErr(err)
		}
		r, _ := utf8.DecodeRune(dec)
		return r, true, nil
	case b < 0x20:
		return 0, false, syntaxErrorf(KindControlCharacterWhileParsingString, c.LineCol(), nil, "unescaped control byte %#02x", b)
	case b < utf8.RuneSelf:
		return rune(b), true, nil
	default:
		return decodeRawRune(c, b), true, nil
	}
}

// Close closes the underlying ParseString. It is equivalent to calling
// Close on the ParseString directly.
func (pc *ParseChars) Close() error { return pc.ps.Close() }

// decodeRawRune decodes one multi-byte UTF-8 rune starting with the
// already-consumed lead byte first, consuming its continuation bytes.
// Malformed sequences yield utf8.RuneError, consistent with this codec's
// policy of not re-validating UTF-8 in raw string bytes.
func decodeRawRune(c *ByteCursor, first byte) rune {
	size := utf8LeadSize(first)
	buf := [utf8.UTFMax]byte{first}
	n := 1
	for n < size {
		b, ok := c.Peek()
		if !ok || b&0xC0 != 0x80 {
			break
		}
		c.Advance()
		buf[n] = b
		n++
	}
	r, _ := utf8.DecodeRune(buf[:n])
	return r
}

func utf8LeadSize(b byte) int {
	switch {
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// runSkipString drives a transient ParseString to exhaustion on behalf of
// holder, for the deferred SkipString job.
func runSkipString(s *session, holder any) error {
	ps := newParseString(s, holder)
	if err := ps.skipToEnd(); err != nil {
		return err
	}
	return ps.Close()
}
