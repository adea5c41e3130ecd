package ingest

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ============================================================================
// sanitizeUTF8 Tests
// ============================================================================

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{
			name:  "valid UTF-8 unchanged",
			input: []byte("hello world"),
			want:  []byte("hello world"),
		},
		{
			name:  "valid unicode",
			input: []byte("hello \xe4\xb8\x96\xe7\x95\x8c"), // hello 世界
			want:  []byte("hello \xe4\xb8\x96\xe7\x95\x8c"),
		},
		{
			name:  "invalid byte replaced with replacement char",
			input: []byte{0x80},
			want:  []byte("\uFFFD"),
		},
		{
			name:  "truncated multibyte sequence",
			input: []byte{0xc3},
			want:  []byte("\uFFFD"),
		},
		{
			name:  "mixed valid and invalid",
			input: []byte("hello\x80world"),
			want:  []byte("hello\uFFFDworld"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeUTF8(tt.input)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("sanitizeUTF8(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ============================================================================
// decodeText Tests
// ============================================================================

func TestDecodeText_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,value")...)
	got, enc := decodeText(input)
	if string(got) != "id,value" {
		t.Errorf("got %q, want %q", got, "id,value")
	}
	if enc != "utf-8" {
		t.Errorf("encoding = %q, want utf-8", enc)
	}
}

func TestDecodeText_OnlyBOM(t *testing.T) {
	got, _ := decodeText([]byte{0xEF, 0xBB, 0xBF})
	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}

func TestDecodeText_UTF16WithBOM(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, enc := decodeText(encoded)
	if string(got) != "a,b\n1,2\n" {
		t.Errorf("got %q, want %q", got, "a,b\n1,2\n")
	}
	if enc != "utf-16" {
		t.Errorf("encoding = %q, want utf-16", enc)
	}
}

func TestDecodeText_LegacyEncoding(t *testing.T) {
	// Windows-1252 text: é = 0xE9, ü = 0xFC, ß = 0xDF.
	input := []byte("name,city,note\n" +
		"Jos\xe9,M\xfcnchen,Stra\xdfe gegen\xfcber dem Caf\xe9\n" +
		"Ren\xe9e,Z\xfcrich,Gr\xfc\xdfe aus der Schweiz\n")

	got, _ := decodeText(input)
	if !utf8.Valid(got) {
		t.Fatalf("decoded text is not valid UTF-8: %q", got)
	}
	if !bytes.HasPrefix(got, []byte("name,city,note\n")) {
		t.Errorf("ASCII header altered: %q", got)
	}
}
