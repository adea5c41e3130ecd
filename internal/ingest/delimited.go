package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"github.com/JonMunkholm/graphtool/internal/dataset"
)

// strategy is one way of splitting delimited text into a header and rows.
type strategy struct {
	name  string
	parse func(text []byte) (*dataset.Dataset, error)

	// permissive strategies split almost anything. A permissive win over an
	// earlier single-column parse is low confidence.
	permissive bool
}

var (
	tabStrategy        = strategy{name: "tab", parse: delimitedParser('\t')}
	commaStrategy      = strategy{name: "comma", parse: delimitedParser(',')}
	whitespaceStrategy = strategy{name: "whitespace", parse: parseWhitespace, permissive: true}
)

// textChain is the fixed order used for .txt and .log files. Whitespace
// splitting is the most permissive and must stay last so it cannot mask a
// genuine tab or comma layout.
var textChain = []strategy{tabStrategy, commaStrategy, whitespaceStrategy}

// delimitedParser returns a parser for a single-character separator.
// Quoted fields are honored; stray quotes are tolerated.
func delimitedParser(sep rune) func([]byte) (*dataset.Dataset, error) {
	return func(text []byte) (*dataset.Dataset, error) {
		r := csv.NewReader(bytes.NewReader(text))
		r.Comma = sep
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		records, err := r.ReadAll()
		if err != nil {
			return nil, err
		}
		return fromRecords(records)
	}
}

// whitespaceRun matches one or more spaces or tabs.
var whitespaceRun = regexp.MustCompile(`[ \t]+`)

// parseWhitespace splits each line on runs of spaces and tabs, which suits
// column-aligned tool output such as ping or iperf logs.
func parseWhitespace(text []byte) (*dataset.Dataset, error) {
	var records [][]string
	for _, line := range strings.Split(string(text), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		records = append(records, whitespaceRun.Split(line, -1))
	}
	return fromRecords(records)
}

// fromRecords treats the first record as the header.
func fromRecords(records [][]string) (*dataset.Dataset, error) {
	if len(records) == 0 {
		return nil, dataset.ErrNoColumns
	}
	ds, err := dataset.New(records[0], records[1:])
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return ds, nil
}
