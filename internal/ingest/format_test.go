package ingest

import (
	"errors"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    Format
		wantErr bool
	}{
		{name: "csv", file: "data.csv", want: FormatCSV},
		{name: "uppercase extension", file: "DATA.CSV", want: FormatCSV},
		{name: "mixed case", file: "ping.Log", want: FormatLog},
		{name: "txt", file: "iperf.txt", want: FormatTXT},
		{name: "json", file: "records.json", want: FormatJSON},
		{name: "zip", file: "bundle.zip", want: FormatZip},
		{name: "multiple dots", file: "report.2024.01.csv", want: FormatCSV},
		{name: "path prefix", file: "uploads/v1.2/data.json", want: FormatJSON},
		{name: "windows path", file: `C:\exports\run.txt`, want: FormatTXT},
		{name: "no extension", file: "README", wantErr: true},
		{name: "trailing dot", file: "data.", wantErr: true},
		{name: "unsupported", file: "sheet.xlsx", wantErr: true},
		{name: "extension only in dir", file: "data.csv/file", wantErr: true},
		{name: "empty", file: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.file)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("Detect(%q) error = %v, want ErrUnsupportedFormat", tt.file, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect(%q) unexpected error: %v", tt.file, err)
			}
			if got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}
