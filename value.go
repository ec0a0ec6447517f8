package jflow

// ValueKind identifies which alternative of the Value tagged union is
// populated.
type ValueKind byte

// Constants defining the valid ValueKind values.
const (
	NullValue ValueKind = iota
	BoolValue
	NumberValue
	StringValue
	ArrayValue
	ObjectValue
)

// A Value is a single JSON value read from a Parser, ParseArray, or
// KeyVal. Null, Bool, and Number are immediate: they fit in memory by
// definition and are returned whole. String, Array, and Object are
// returned only as scoped handles that must be closed before the parser
// can continue — see the package doc for the ownership rules.
type Value struct {
	kind ValueKind
	b    bool
	num  Number
	str  *ParseString
	arr  *ParseArray
	obj  *ParseObject
}

// Kind reports which alternative v holds.
func (v Value) Kind() ValueKind { return v.kind }

// Bool returns v's boolean payload and whether v is a BoolValue.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == BoolValue }

// Number returns v's numeric payload and whether v is a NumberValue.
func (v Value) Number() (Number, bool) { return v.num, v.kind == NumberValue }

// String returns v's string handle and whether v is a StringValue. The
// handle is the exclusive cursor holder until it is closed, even after
// its body has been read to completion.
func (v Value) String() (*ParseString, bool) { return v.str, v.kind == StringValue }

// Array returns v's array handle and whether v is an ArrayValue.
func (v Value) Array() (*ParseArray, bool) { return v.arr, v.kind == ArrayValue }

// Object returns v's object handle and whether v is an ObjectValue.
func (v Value) Object() (*ParseObject, bool) { return v.obj, v.kind == ObjectValue }

// Close discards v. For the immediate kinds (Null, Bool, Number) this is a
// no-op. For a handle kind, it closes the handle: if the handle was not
// fully read, this enqueues a deferred skip that runs on the session's
// next active read (see skipQueue).
func (v Value) Close() error {
	switch v.kind {
	case StringValue:
		return v.str.Close()
	case ArrayValue:
		return v.arr.Close()
	case ObjectValue:
		return v.obj.Close()
	default:
		return nil
	}
}

func valueNull() Value           { return Value{kind: NullValue} }
func valueBool(b bool) Value     { return Value{kind: BoolValue, b: b} }
func valueNumber(n Number) Value { return Value{kind: NumberValue, num: n} }
func valueString(s *ParseString) Value { return Value{kind: StringValue, str: s} }
func valueArray(a *ParseArray) Value   { return Value{kind: ArrayValue, arr: a} }
func valueObject(o *ParseObject) Value { return Value{kind: ObjectValue, obj: o} }
