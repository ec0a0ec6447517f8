package escape_test

import (
	"strings"
	"testing"

	"go4.org/mem"

	"github.com/arcspan/jflow/internal/escape"
)

func TestWriteQuoted(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a\"b", "a\\\"b"},
		{"a\\b", "a\\\\b"},
		{"a\nb\tc", "a\\nb\\tc"},
		{"a\x01b", "a\\u0001b"},
		{"a�b", "a\\ufffdb"},
		{"a b", "a\\u2028b"},
		{"héllo", "héllo"}, // ordinary multi-byte runes pass through
	}
	for _, test := range tests {
		var buf strings.Builder
		if err := escape.WriteQuoted(&buf, mem.S(test.input)); err != nil {
			t.Errorf("WriteQuoted(%q): %v", test.input, err)
			continue
		}
		if got := buf.String(); got != test.want {
			t.Errorf("WriteQuoted(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}
