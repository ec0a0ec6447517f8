package jflow

import "errors"

// A ParseObject reads the key/value pairs of a JSON object. The opening
// '{' has already been consumed by whoever constructed the handle.
type ParseObject struct {
	s      *session
	parent any

	ended      bool
	needsComma bool
	closed     bool
}

func newParseObject(s *session, parent any) *ParseObject {
	po := &ParseObject{s: s, parent: parent}
	s.acquire(parent, po)
	return po
}

// Next advances to the next key/value pair, returning a KeyVal that owns
// the cursor until it is closed. Its (nil, nil) / (nil, err) / non-nil
// cases follow the same contract as ParseArray.Next.
func (po *ParseObject) Next() (*KeyVal, error) {
	po.s.checkHolder(po)
	if po.ended {
		return nil, nil
	}
	if err := po.s.drain(po); err != nil {
		return nil, err
	}

	c := po.s.cursor
	for {
		b, ok := c.Peek()
		if !ok {
			if err := c.Err(); err != nil {
				return nil, err
			}
			po.ended = true
			return nil, nil
		}

		switch {
		case b == '}':
			c.Advance()
			po.ended = true
			return nil, nil

		case b == ',':
			c.Advance()
			if po.needsComma {
				po.needsComma = false
				continue
			}
			return nil, syntaxErrorf(KindTrailingComma, c.LineCol(), nil, "unexpected extra ,")

		case isJSONSpace(b):
			c.Advance()
			continue

		case b == '"':
			if po.needsComma {
				po.needsComma = false
				return nil, syntaxErrorf(KindMissingComma, c.LineCol(), nil, "missing , before object key")
			}
			c.Advance()
			kv := newKeyVal(po.s, po)
			po.needsComma = true
			return kv, nil

		default:
			c.Advance()
			loc := c.LineCol()
			po.needsComma = true
			return nil, syntaxErrorf(KindKeyMustBeAString, loc, nil, "object key must be a string, found %q", b)
		}
	}
}

// Close discards po. If it was not exhausted, this enqueues a deferred
// SkipObject job.
func (po *ParseObject) Close() error {
	if po.closed {
		return nil
	}
	po.s.checkHolder(po)
	if !po.ended {
		po.s.skip.push(skipJob{kind: skipObjectJob})
	}
	po.closed = true
	po.s.release(po, po.parent)
	return nil
}

// runSkipObject drives a transient ParseObject to exhaustion on behalf of
// holder, closing every pair it yields without reading either side.
func runSkipObject(s *session, holder any) error {
	po := newParseObject(s, holder)
	for {
		kv, err := po.Next()
		if kv == nil {
			if err == nil {
				break
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				return err
			}
			continue
		}
		v, err := kv.Value()
		if err != nil {
			var se *SyntaxError
			if !errors.As(err, &se) {
				return err
			}
		} else if err := v.Close(); err != nil {
			return err
		}
		if err := kv.Close(); err != nil {
			return err
		}
	}
	return po.Close()
}

// A KeyVal is one key/value pair of a ParseObject, returned by Next. The
// opening quote of the key has already been consumed; Key returns a
// handle onto it. Value may be called whether or not Key was called
// first: if the key was never read, Value skips it before reading the
// colon and the value that follows.
type KeyVal struct {
	s      *session
	parent any

	keyRequested  bool
	valueConsumed bool
	closed        bool
}

func newKeyVal(s *session, parent any) *KeyVal {
	kv := &KeyVal{s: s, parent: parent}
	s.acquire(parent, kv)
	return kv
}

// Key returns a handle onto the pair's key string. It may be called at
// most once per KeyVal; calling it a second time is a programmer-contract
// violation and panics, matching the parser's treatment of exclusivity
// faults elsewhere.
func (kv *KeyVal) Key() *ParseString {
	if kv.keyRequested {
		panic("jflow: KeyVal.Key called more than once")
	}
	kv.keyRequested = true
	return newParseString(kv.s, kv)
}

// Value skips the key (if Key was never called), consumes the separating
// colon, and dispatches the pair's value.
func (kv *KeyVal) Value() (Value, error) {
	kv.s.checkHolder(kv)
	if !kv.keyRequested {
		kv.keyRequested = true
		if err := runSkipString(kv.s, kv); err != nil {
			return Value{}, err
		}
	}
	kv.valueConsumed = true

	c := kv.s.cursor
	if err := kv.eatSpaceExpecting(c, ':', KindExpectedColon, "object separator"); err != nil {
		return Value{}, err
	}
	if err := kv.eatSpace(c, KindEofWhileParsingValue, "object value"); err != nil {
		return Value{}, err
	}
	b, ok := c.Advance()
	if !ok {
		return Value{}, errEOF(KindEofWhileParsingValue, c.LineCol(), "object value")
	}
	loc := c.LineCol()
	return dispatchItem(kv.s, kv, b, loc)
}

func (kv *KeyVal) eatSpace(c *ByteCursor, eofKind Kind, context string) error {
	for {
		b, ok := c.Peek()
		if !ok {
			if err := c.Err(); err != nil {
				return err
			}
			return errEOF(eofKind, c.LineCol(), context)
		}
		if !isJSONSpace(b) {
			return nil
		}
		c.Advance()
	}
}

func (kv *KeyVal) eatSpaceExpecting(c *ByteCursor, want byte, wantKind Kind, context string) error {
	for {
		b, ok := c.Peek()
		if !ok {
			if err := c.Err(); err != nil {
				return err
			}
			return errEOF(KindEofWhileParsingObject, c.LineCol(), context)
		}
		if isJSONSpace(b) {
			c.Advance()
			continue
		}
		if b != want {
			return syntaxErrorf(wantKind, c.LineCol(), nil, "expected %q, found %q", want, b)
		}
		c.Advance()
		return nil
	}
}

// Close discards kv. If its value was never consumed via Value, this
// enqueues a deferred job that skips the key (if unread) and the value.
func (kv *KeyVal) Close() error {
	if kv.closed {
		return nil
	}
	kv.s.checkHolder(kv)
	if !kv.valueConsumed {
		kv.s.skip.push(skipJob{kind: skipObjectValueJob, keyConsumed: kv.keyRequested})
	}
	kv.closed = true
	kv.s.release(kv, kv.parent)
	return nil
}

// runSkipObjectValue drives a transient KeyVal to completion on behalf of
// holder: it skips the key if keyConsumed is false (the key was never
// read before the drop), then skips the value.
func runSkipObjectValue(s *session, holder any, keyConsumed bool) error {
	kv := &KeyVal{s: s, parent: holder, keyRequested: keyConsumed}
	s.acquire(holder, kv)
	v, err := kv.Value()
	if err != nil {
		var se *SyntaxError
		if !errors.As(err, &se) {
			return err
		}
	} else if err := v.Close(); err != nil {
		return err
	}
	return kv.Close()
}
