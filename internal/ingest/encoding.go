package ingest

// encoding.go normalizes uploaded text to UTF-8 before parsing.
//
// Spreadsheet exports regularly arrive as Windows-1252, Latin-1 or UTF-16
// with a byte order mark. Valid UTF-8 passes through untouched (minus a
// leading BOM); anything else is sniffed with chardet and transcoded. If
// no decoder fits, invalid bytes are replaced with U+FFFD.

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// minDetectConfidence is the chardet confidence below which the
// Windows-1252 fallback is used instead of the detected charset.
const minDetectConfidence = 30

// decodeText returns data as UTF-8 along with the source encoding name.
func decodeText(data []byte) ([]byte, string) {
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		out, err := transcode(data, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
		if err == nil {
			return out, "utf-16"
		}
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, "utf-8"
	}

	enc, name := detectEncoding(data)
	out, err := transcode(data, enc.NewDecoder())
	if err != nil {
		return sanitizeUTF8(data), "utf-8"
	}
	return out, name
}

// detectEncoding guesses the charset of non-UTF-8 text.
func detectEncoding(data []byte) (encoding.Encoding, string) {
	res, err := chardet.NewTextDetector().DetectBest(data)
	if err == nil && res != nil && res.Confidence >= minDetectConfidence {
		name := strings.ToLower(res.Charset)
		if enc, err := htmlindex.Get(name); err == nil && !strings.HasPrefix(name, "utf-8") {
			return enc, name
		}
	}
	return charmap.Windows1252, "windows-1252"
}

func transcode(data []byte, t transform.Transformer) ([]byte, error) {
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), t))
}

// sanitizeUTF8 replaces invalid byte sequences with the replacement rune.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('\uFFFD')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
