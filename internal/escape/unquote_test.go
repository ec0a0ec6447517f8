package escape_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/arcspan/jflow"
	"github.com/arcspan/jflow/internal/escape"
)

// fakeReader adapts a strings.Reader to escape.ByteReader for tests.
type fakeReader struct {
	s   string
	pos int
}

func (r *fakeReader) Peek() (byte, bool) {
	if r.pos >= len(r.s) {
		return 0, false
	}
	return r.s[r.pos], true
}

func (r *fakeReader) Advance() (byte, bool) {
	b, ok := r.Peek()
	if ok {
		r.pos++
	}
	return b, ok
}

func TestDecodeEscape_simple(t *testing.T) {
	tests := []struct {
		input string // text following the backslash
		want  string
	}{
		{`"`, "\""},
		{`\`, "\\"},
		{`/`, "/"},
		{`b`, "\b"},
		{`f`, "\f"},
		{`n`, "\n"},
		{`r`, "\r"},
		{`t`, "\t"},
	}
	for _, test := range tests {
		r := &fakeReader{s: test.input}
		got, err := escape.DecodeEscape(r)
		if err != nil {
			t.Errorf("DecodeEscape(%q): %v", test.input, err)
			continue
		}
		if string(got) != test.want {
			t.Errorf("DecodeEscape(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestDecodeEscape_bracedUnicode(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{`u{41}`, 'A'},
		{`u{1234}`, 0x1234},
		{`u{1F600}`, 0x1F600},
	}
	for _, test := range tests {
		r := &fakeReader{s: test.input}
		got, err := escape.DecodeEscape(r)
		if err != nil {
			t.Errorf("DecodeEscape(%q): %v", test.input, err)
			continue
		}
		if string(got) != string(test.want) {
			t.Errorf("DecodeEscape(%q) = %q, want %q", test.input, got, string(test.want))
		}
	}
}

func TestDecodeEscape_standardUnicode(t *testing.T) {
	r := &fakeReader{s: `u00e9`} // é
	got, err := escape.DecodeEscape(r)
	if err != nil {
		t.Fatalf("DecodeEscape: %v", err)
	}
	if string(got) != "é" {
		t.Errorf("DecodeEscape = %q, want %q", got, "é")
	}
}

func TestDecodeEscape_surrogatePair(t *testing.T) {
	r := &fakeReader{s: `uD83D\uDE00`} // U+1F600
	got, err := escape.DecodeEscape(r)
	if err != nil {
		t.Fatalf("DecodeEscape: %v", err)
	}
	if string(got) != "\U0001F600" {
		t.Errorf("DecodeEscape = %q, want %q", got, "\U0001F600")
	}
}

func TestDecodeEscape_loneLowSurrogate(t *testing.T) {
	r := &fakeReader{s: `uDC00`}
	_, err := escape.DecodeEscape(r)
	if !errors.Is(err, escape.ErrLoneLeadingSurrogate) {
		t.Fatalf("err = %v, want ErrLoneLeadingSurrogate", err)
	}
}

func TestDecodeEscape_unpairedHighSurrogate(t *testing.T) {
	r := &fakeReader{s: `uD800x`}
	_, err := escape.DecodeEscape(r)
	if !errors.Is(err, escape.ErrLoneLeadingSurrogate) {
		t.Fatalf("err = %v, want ErrLoneLeadingSurrogate", err)
	}
}

func TestDecodeEscape_invalidEscape(t *testing.T) {
	r := &fakeReader{s: `q`}
	_, err := escape.DecodeEscape(r)
	if !errors.Is(err, escape.ErrInvalidEscape) {
		t.Fatalf("err = %v, want ErrInvalidEscape", err)
	}
}

func TestDecodeEscape_bracedTooLong(t *testing.T) {
	r := &fakeReader{s: `u{1234567}`}
	_, err := escape.DecodeEscape(r)
	if !errors.Is(err, escape.ErrInvalidUnicodeCodePoint) {
		t.Fatalf("err = %v, want ErrInvalidUnicodeCodePoint", err)
	}
}

func TestDecodeEscape_bracedUnterminated(t *testing.T) {
	r := &fakeReader{s: `u{12`}
	_, err := escape.DecodeEscape(r)
	if !errors.Is(err, escape.ErrUnexpectedEndOfHexEscape) {
		t.Fatalf("err = %v, want ErrUnexpectedEndOfHexEscape", err)
	}
}

func TestDecodeEscape_truncatedHex4(t *testing.T) {
	r := &fakeReader{s: `u12`}
	_, err := escape.DecodeEscape(r)
	if !errors.Is(err, escape.ErrUnexpectedEndOfHexEscape) {
		t.Fatalf("err = %v, want ErrUnexpectedEndOfHexEscape", err)
	}
}

func TestDecodeEscape_byteCursorSatisfiesByteReader(t *testing.T) {
	// escape.ByteReader is satisfied structurally; strings.Reader does
	// not implement it directly, which is exactly why fakeReader exists
	// for these tests. jflow.ByteCursor exposes Peek/Advance with this
	// exact shape; this external test package can import jflow without
	// a cycle.
	var _ escape.ByteReader = (*jflow.ByteCursor)(nil)
	var _ escape.ByteReader = &fakeReader{}
	_ = strings.NewReader("")
}
