package dataset

// convert.go classifies raw cell text as missing, numeric or textual.
//
// Uploaded files come from spreadsheets, log exporters and JSON dumps, so
// the same "no value" idea shows up under many spellings (NA, NULL, #N/A,
// an empty field). Every spelling in naTokens is treated as missing before
// numeric inference runs.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a plain decimal or scientific number.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// infinityRegex matches the spellings of infinity that spreadsheets export.
var infinityRegex = regexp.MustCompile(`(?i)^[+-]?inf(inity)?$`)

// naTokens are the cell values read as missing.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw cell should be treated as a missing value.
func IsMissing(s string) bool {
	_, ok := naTokens[strings.TrimSpace(s)]
	return ok
}

// ParseNumber converts a raw cell to a float64.
// Returns false for missing cells and anything that is not a number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if !numericRegex.MatchString(s) && !infinityRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out-of-range literals still parse to ±Inf with ErrRange.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// FormatNumber renders a float the way it is written back to CSV.
// NaN becomes the empty string so it reads back as missing.
func FormatNumber(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// CleanHeader trims whitespace and stray quotes from a header cell.
func CleanHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

// UniqueNames returns header names made unique.
// Blank names become "Unnamed: <i>" and repeats get ".1", ".2" suffixes.
func UniqueNames(header []string) []string {
	out := make([]string, len(header))
	original := make(map[string]bool, len(header))
	for i, h := range header {
		name := CleanHeader(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		out[i] = name
		original[name] = true
	}

	used := make(map[string]bool, len(out))
	for i, name := range out {
		if !used[name] {
			used[name] = true
			continue
		}
		// Suffixes skip names already present in the header.
		for n := 1; ; n++ {
			candidate := name + "." + strconv.Itoa(n)
			if !used[candidate] && !original[candidate] {
				out[i] = candidate
				used[candidate] = true
				break
			}
		}
	}
	return out
}
