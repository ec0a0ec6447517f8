package jflow

import (
	"io"
	"strconv"

	"go4.org/mem"

	"github.com/arcspan/jflow/internal/escape"
)

// An Emitter writes a stream of JSON values to an underlying io.Writer. It
// mirrors Parser's scoping: Array and Object return scoped handles
// (EmitArray, EmitObject) that must be closed before the next sibling may
// be written, enforced by the same single-current-holder discipline the
// parser side uses, minus the deferred-skip machinery (there is nothing
// to skip when writing).
type Emitter struct {
	w       io.Writer
	holder  any
	started bool
}

// NewEmitter returns an Emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// sep writes a newline ahead of every top-level value after the first,
// mirroring the comma EmitArray/EmitObject write between siblings.
func (e *Emitter) sep() error {
	if !e.started {
		e.started = true
		return nil
	}
	return e.write([]byte("\n"))
}

func (e *Emitter) acquire(parent, child any) {
	if e.holder != parent {
		panic("jflow: cannot open a new emit handle while another is live")
	}
	e.holder = child
}

func (e *Emitter) release(child, parent any) {
	if e.holder != child {
		panic("jflow: emit handle closed out of turn")
	}
	e.holder = parent
}

func (e *Emitter) checkHolder(h any) {
	if e.holder != h {
		panic("jflow: write attempted on a suspended or already-closed emit handle")
	}
}

func (e *Emitter) write(p []byte) error {
	_, err := e.w.Write(p)
	return err
}

// Null writes the literal null.
func (e *Emitter) Null() error {
	e.checkHolder(nil)
	if err := e.sep(); err != nil {
		return err
	}
	return e.write([]byte("null"))
}

// Bool writes b as true or false.
func (e *Emitter) Bool(b bool) error {
	e.checkHolder(nil)
	if err := e.sep(); err != nil {
		return err
	}
	return writeBool(e.w, b)
}

// Number writes n in whichever of its triad forms it was narrowed to.
func (e *Emitter) Number(n Number) error {
	e.checkHolder(nil)
	if err := e.sep(); err != nil {
		return err
	}
	return writeNumber(e.w, n)
}

// String writes s as a quoted string, verbatim: it does not escape
// control bytes, quotes, or backslashes. This matches spec.md's base
// EmitString, which trades correctness for simplicity on the producer
// side; use EmitEscapedString when the payload may need escaping.
func (e *Emitter) String(s string) error {
	e.checkHolder(nil)
	if err := e.sep(); err != nil {
		return err
	}
	return writeRawString(e.w, s)
}

// EmitEscapedString writes s as a quoted, RFC 8259-escaped string, using
// internal/escape's WriteQuoted. This is the expansion counterpart to
// String, for producers that need correct output rather than the base
// format's documented verbatim shortcut.
func (e *Emitter) EmitEscapedString(s string) error {
	e.checkHolder(nil)
	if err := e.sep(); err != nil {
		return err
	}
	return writeEscapedString(e.w, s)
}

// Array opens a scoped array-writing handle, preceded by the top-level
// separator newline if this is not the first value written. Check the
// returned handle's Close error, which surfaces any separator-write
// failure from this call too.
func (e *Emitter) Array() *EmitArray {
	e.checkHolder(nil)
	sepErr := e.sep()
	child := newEmitArray(e, nil)
	if sepErr != nil && child.err == nil {
		child.err = sepErr
	}
	return child
}

// Object opens a scoped object-writing handle, preceded by the
// top-level separator newline if this is not the first value written.
// Check the returned handle's Close error, which surfaces any
// separator-write failure from this call too.
func (e *Emitter) Object() *EmitObject {
	e.checkHolder(nil)
	sepErr := e.sep()
	child := newEmitObject(e, nil)
	if sepErr != nil && child.err == nil {
		child.err = sepErr
	}
	return child
}

func writeBool(w io.Writer, b bool) error {
	s := "false"
	if b {
		s = "true"
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeNumber(w io.Writer, n Number) error {
	var s string
	switch n.Kind() {
	case Unsigned:
		u, _ := n.Uint64()
		s = strconv.FormatUint(u, 10)
	case Signed:
		i, _ := n.Int64()
		s = strconv.FormatInt(i, 10)
	default:
		f, _ := n.Float64()
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	_, err := io.WriteString(w, s)
	return err
}

func writeRawString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, `"`); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := io.WriteString(w, `"`)
	return err
}

func writeEscapedString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, `"`); err != nil {
		return err
	}
	if err := escape.WriteQuoted(w, mem.S(s)); err != nil {
		return err
	}
	_, err := io.WriteString(w, `"`)
	return err
}
