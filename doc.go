// Package jflow implements a streaming, pull-based JSON codec.
//
// # Parsing
//
// The Parser type reads a sequence of whitespace-separated top-level JSON
// values from an io.Reader. Call Next to read one value at a time:
//
//	p := jflow.NewParser(input)
//	for {
//	    v, err := p.Next()
//	    if v == nil && err == nil {
//	        break // clean end of input
//	    }
//	    var se *jflow.SyntaxError
//	    if errors.As(err, &se) {
//	        log.Printf("syntax error: %v", err)
//	        continue
//	    }
//	    if err != nil {
//	        return err // I/O failure: fatal
//	    }
//	    handle(*v)
//	}
//
// Null, Bool, and Number values are returned immediately, in full. String,
// Array, and Object values are returned as scoped handles (*ParseString,
// *ParseArray, *ParseObject) that hold exclusive access to the underlying
// byte cursor: no sibling value, and no ancestor's remaining content, can
// be read until the handle is closed.
//
//	arr, _ := v.Array()
//	for {
//	    elem, err := arr.Next()
//	    if elem == nil {
//	        break
//	    }
//	    ...
//	    elem.Close()
//	}
//	arr.Close()
//
// Closing a handle before it is fully read does not do the work of
// skipping its remaining content inline. Instead it enqueues a deferred
// job that runs the next time the session performs a real read, so a tree
// of dropped handles ten levels deep still costs one traversal, not ten.
//
// # Object members
//
// ParseObject.Next returns a *KeyVal rather than a key and a value
// directly, because the key itself is a string and may need to be read or
// skipped independently of the value:
//
//	obj, _ := v.Object()
//	for {
//	    kv, err := obj.Next()
//	    if kv == nil {
//	        break
//	    }
//	    ks := kv.Key()
//	    key, _ := ks.ReadOwned()
//	    ks.Close()
//	    val, _ := kv.Value()
//	    ...
//	    val.Close()
//	    kv.Close()
//	}
//	obj.Close()
//
// Calling Value before Key skips the key automatically; calling Key twice
// on the same KeyVal panics, since the key string's bytes would already
// be gone.
//
// # Emitting
//
// The Emitter type is the write-side mirror of Parser: Array and Object
// open scoped handles (*EmitArray, *EmitObject) whose Close writes the
// matching closing delimiter.
//
//	e := jflow.NewEmitter(output)
//	arr := e.Array()
//	arr.Number(jflow.NewNumberFromInt64(1))
//	arr.String("two")
//	arr.Close()
//
// # Errors
//
// Syntax faults are reported as *SyntaxError, whose Kind field
// identifies the taxonomy entry (KindMissingComma, KindInvalidEscape,
// and so on) without requiring callers to parse error text. Violating the
// single-current-holder discipline above — reading from a handle that is
// not (or is no longer) the session's current holder — is a programmer
// error, not a data error, and panics rather than returning one.
package jflow
