package jflow

import "errors"

// A ParseArray reads the elements of a JSON array. The opening '[' has
// already been consumed by whoever constructed the handle.
type ParseArray struct {
	s      *session
	parent any

	ended      bool
	needsComma bool
	closed     bool
}

func newParseArray(s *session, parent any) *ParseArray {
	pa := &ParseArray{s: s, parent: parent}
	s.acquire(parent, pa)
	return pa
}

// Next advances to the next array element.
//
//   - (non-nil, nil): a value was read; it is the new cursor holder if it
//     is itself a handle kind.
//   - (nil, nil): the closing ']' was reached; the array is exhausted.
//   - (nil, err) where err is a *SyntaxError: a recoverable fault (a
//     missing or trailing comma); the array is not exhausted and the
//     caller should call Next again.
//   - (nil, err) otherwise: a fatal I/O fault.
func (pa *ParseArray) Next() (*Value, error) {
	pa.s.checkHolder(pa)
	if pa.ended {
		return nil, nil
	}
	if err := pa.s.drain(pa); err != nil {
		return nil, err
	}

	c := pa.s.cursor
	for {
		b, ok := c.Peek()
		if !ok {
			if err := c.Err(); err != nil {
				return nil, err
			}
			pa.ended = true // liberal EOF handling, per spec §4.5 step 4
			return nil, nil
		}

		switch {
		case b == ']':
			c.Advance()
			pa.ended = true
			return nil, nil

		case b == ',':
			c.Advance()
			if pa.needsComma {
				pa.needsComma = false
				continue
			}
			return nil, syntaxErrorf(KindTrailingComma, c.LineCol(), nil, "unexpected extra ,")

		case isJSONSpace(b):
			c.Advance()
			continue

		default:
			if pa.needsComma {
				pa.needsComma = false
				return nil, syntaxErrorf(KindMissingComma, c.LineCol(), nil, "missing , before array element")
			}
			c.Advance()
			loc := c.LineCol()
			v, err := dispatchItem(pa.s, pa, b, loc)
			pa.needsComma = true
			if err != nil {
				return nil, err
			}
			return &v, nil
		}
	}
}

// Close discards pa. If the array was not exhausted, this enqueues a
// deferred SkipArray job.
func (pa *ParseArray) Close() error {
	if pa.closed {
		return nil
	}
	pa.s.checkHolder(pa)
	if !pa.ended {
		pa.s.skip.push(skipJob{kind: skipArrayJob})
	}
	pa.closed = true
	pa.s.release(pa, pa.parent)
	return nil
}

// runSkipArray drives a transient ParseArray to exhaustion on behalf of
// holder, closing every element it yields without reading it.
func runSkipArray(s *session, holder any) error {
	pa := newParseArray(s, holder)
	for {
		v, err := pa.Next()
		if v == nil {
			if err == nil {
				break
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				return err
			}
			continue // recoverable fault: keep skipping forward
		}
		if err := v.Close(); err != nil {
			return err
		}
	}
	return pa.Close()
}
