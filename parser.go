package jflow

import "io"

// A Parser reads a sequence of whitespace-separated top-level JSON values
// from an io.Reader. It is the root of a session: it holds the cursor
// (session.holder == nil) whenever no sub-parser handle is live.
type Parser struct {
	s *session
}

// NewParser returns a Parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{s: newSession(NewByteCursor(r))}
}

// Next reads the next top-level value.
//
//   - (non-nil, nil): a value was read.
//   - (nil, nil): clean end of input; no more values follow.
//   - (nil, err) where err is a *SyntaxError: a recoverable fault; the
//     caller may call Next again to continue past it.
//   - (nil, err) otherwise: a fatal I/O fault.
//
// Any handle returned by a previous call must be closed before calling
// Next again; failing to do so panics, per the session's cursor
// exclusivity invariant.
func (p *Parser) Next() (*Value, error) {
	p.s.checkHolder(nil)
	if err := p.s.drain(nil); err != nil {
		return nil, err
	}

	c := p.s.cursor
	for {
		b, ok := c.Peek()
		if !ok {
			if err := c.Err(); err != nil {
				return nil, err
			}
			return nil, nil
		}
		if isJSONSpace(b) {
			c.Advance()
			continue
		}
		c.Advance()
		loc := c.LineCol()
		v, err := dispatchItem(p.s, nil, b, loc)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}
