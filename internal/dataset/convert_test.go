package dataset

import (
	"math"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseNumber Tests
// ----------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   float64
	}{
		// Valid: Basic integers
		{name: "positive integer", input: "123", wantOK: true, want: 123},
		{name: "zero", input: "0", wantOK: true, want: 0},
		{name: "negative integer", input: "-456", wantOK: true, want: -456},
		{name: "explicit plus", input: "+7", wantOK: true, want: 7},

		// Valid: Decimals
		{name: "decimal number", input: "123.45", wantOK: true, want: 123.45},
		{name: "leading decimal point", input: ".99", wantOK: true, want: 0.99},
		{name: "trailing decimal point", input: "99.", wantOK: true, want: 99},
		{name: "surrounding whitespace", input: "  42.5 ", wantOK: true, want: 42.5},

		// Valid: Scientific notation
		{name: "exponent", input: "1.5e3", wantOK: true, want: 1500},
		{name: "negative exponent", input: "2E-2", wantOK: true, want: 0.02},

		// Invalid
		{name: "empty", input: "", wantOK: false},
		{name: "text", input: "abc", wantOK: false},
		{name: "thousands separator", input: "1,000", wantOK: false},
		{name: "hex literal", input: "0x1F", wantOK: false},
		{name: "underscore literal", input: "1_000", wantOK: false},
		{name: "date", input: "2024-01-15", wantOK: false},
		{name: "ip address", input: "10.0.0.1", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumber_Infinity(t *testing.T) {
	for _, in := range []string{"inf", "-inf", "Infinity", "+INF"} {
		got, ok := ParseNumber(in)
		if !ok || !math.IsInf(got, 0) {
			t.Errorf("ParseNumber(%q) = %v, %v, want ±Inf, true", in, got, ok)
		}
	}
}

// ----------------------------------------------------------------------------
// IsMissing Tests
// ----------------------------------------------------------------------------

func TestIsMissing(t *testing.T) {
	missing := []string{"", "  ", "NA", "N/A", "n/a", "NaN", "nan", "NULL", "null", "None", "#N/A", "<NA>"}
	for _, s := range missing {
		if !IsMissing(s) {
			t.Errorf("IsMissing(%q) = false, want true", s)
		}
	}

	present := []string{"0", "none", "na", "-", "missing"}
	for _, s := range present {
		if IsMissing(s) {
			t.Errorf("IsMissing(%q) = true, want false", s)
		}
	}
}

// ----------------------------------------------------------------------------
// FormatNumber Tests
// ----------------------------------------------------------------------------

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3, "3"},
		{2.5, "2.5"},
		{-0.125, "-0.125"},
		{math.NaN(), ""},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// UniqueNames Tests
// ----------------------------------------------------------------------------

func TestUniqueNames(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{
			name:   "already unique",
			header: []string{"a", "b", "c"},
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "duplicates get suffixes",
			header: []string{"a", "a", "a"},
			want:   []string{"a", "a.1", "a.2"},
		},
		{
			name:   "suffix avoids existing name",
			header: []string{"a", "a", "a.1"},
			want:   []string{"a", "a.2", "a.1"},
		},
		{
			name:   "blank names",
			header: []string{"x", "", " "},
			want:   []string{"x", "Unnamed: 1", "Unnamed: 2"},
		},
		{
			name:   "trims quotes and space",
			header: []string{` "id" `, "value "},
			want:   []string{"id", "value"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueNames(tt.header)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("name[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
