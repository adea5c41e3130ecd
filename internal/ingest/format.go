// Package ingest turns uploaded file bytes into a dataset.Dataset.
//
// The file extension alone decides how content is read; nothing is sniffed.
// Delimited text without a declared separator (.txt, .log) goes through an
// ordered chain of parse strategies, and archives are resolved to their
// first CSV member before parsing.
package ingest

import (
	"fmt"
	"strings"
)

// Format is a recognized upload format, named by its lowercase extension.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
	FormatLog  Format = "log"
	FormatJSON Format = "json"
	FormatZip  Format = "zip"
)

// Formats lists every recognized format in display order.
var Formats = []Format{FormatCSV, FormatTXT, FormatLog, FormatJSON, FormatZip}

// Detect returns the format for a file name.
// Only the text after the final '.' of the base name is considered, and it
// is matched case-insensitively.
func Detect(name string) (Format, error) {
	base := name[strings.LastIndexAny(name, `/\`)+1:]
	dot := strings.LastIndexByte(base, '.')
	if dot < 0 || dot == len(base)-1 {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, base)
	}

	ext := Format(strings.ToLower(base[dot+1:]))
	for _, f := range Formats {
		if ext == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
}

// ambiguous reports whether the format's delimiter must be inferred.
func (f Format) ambiguous() bool {
	return f == FormatTXT || f == FormatLog
}
