package jflow

// An EmitString is a scoped handle for writing a JSON string's body
// incrementally, for callers assembling a large value piece by piece
// instead of handing the whole thing to Emitter.String at once. It
// writes bytes verbatim, same as the whole-string convenience methods:
// escaping is the caller's responsibility if the payload needs it.
type EmitString struct {
	e      *Emitter
	parent any

	closed bool
	err    error
}

func newEmitString(e *Emitter, parent any) *EmitString {
	es := &EmitString{e: e, parent: parent}
	e.acquire(parent, es)
	es.err = e.write([]byte(`"`))
	return es
}

// OpenString opens a streaming string value at the top level, preceded
// by the top-level separator newline if this is not the first value
// written.
func (e *Emitter) OpenString() *EmitString {
	e.checkHolder(nil)
	sepErr := e.sep()
	child := newEmitString(e, nil)
	if sepErr != nil && child.err == nil {
		child.err = sepErr
	}
	return child
}

// OpenString opens a streaming string element.
func (ea *EmitArray) OpenString() *EmitString {
	ea.e.checkHolder(ea)
	ea.sep()
	child := newEmitString(ea.e, ea)
	if ea.err != nil && child.err == nil {
		child.err = ea.err
	}
	return child
}

// OpenString opens a streaming string value under k.
func (eo *EmitObject) OpenString(k string) *EmitString {
	eo.e.checkHolder(eo)
	eo.key(k)
	child := newEmitString(eo.e, eo)
	if eo.err != nil && child.err == nil {
		child.err = eo.err
	}
	return child
}

// Write appends p to the string body verbatim.
func (es *EmitString) Write(p []byte) (int, error) {
	es.e.checkHolder(es)
	if es.err != nil {
		return 0, es.err
	}
	if es.err = es.e.write(p); es.err != nil {
		return 0, es.err
	}
	return len(p), nil
}

// Close writes the closing quote and releases the cursor back to es's
// parent.
func (es *EmitString) Close() error {
	if es.closed {
		return nil
	}
	es.e.checkHolder(es)
	es.closed = true
	es.e.release(es, es.parent)
	if es.err != nil {
		return es.err
	}
	return es.e.write([]byte(`"`))
}
