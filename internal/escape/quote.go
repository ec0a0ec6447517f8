package escape

import (
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// WriteQuoted writes src to w as the escaped body of a JSON string
// (excluding the surrounding quotes), one decoded rune at a time — the
// write-side mirror of DecodeEscape's one-escape-at-a-time pull.
// Unlike a buffer-then-return Quote, nothing here is held in memory
// longer than a single rune's encoding, matching the rest of this
// package's and the Emitter family's write-as-you-go style.
func WriteQuoted(w io.Writer, src mem.RO) error {
	var scratch [8]byte
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		b := appendQuotedRune(scratch[:0], r)
		if _, err := w.Write(b); err != nil {
			return err
		}
		src = src.SliceFrom(n)
	}
	return nil
}

func appendQuotedRune(buf []byte, r rune) []byte {
	if r < utf8.RuneSelf {
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				return append(buf, '\\', b)
			}
			return append(buf, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
		case r == '\\' || r == '"':
			return append(buf, '\\', byte(r))
		default:
			return append(buf, byte(r))
		}
	}

	switch r {
	case '�': // replacement rune
		return append(buf, "\\ufffd"...)
	case ' ': // line separator
		return append(buf, "\\u2028"...)
	case ' ': // paragraph separator
		return append(buf, "\\u2029"...)
	default:
		return utf8.AppendRune(buf, r)
	}
}
