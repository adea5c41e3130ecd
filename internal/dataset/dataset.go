// Package dataset holds the in-memory tabular result of an upload.
//
// A Dataset is an ordered list of named columns with aligned rows. Column
// kinds (numeric or text) are inferred once when the dataset is built and
// never change afterwards; operations that need a different classification
// build a new Dataset instead of mutating an existing one.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrNoColumns is returned when a dataset would have no columns at all.
var ErrNoColumns = errors.New("no columns to parse from file")

// Kind is the inferred type of a column.
type Kind int

const (
	Numeric Kind = iota
	Text
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "text"
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names MarshalText writes.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "numeric":
		*k = Numeric
	case "text":
		*k = Text
	default:
		return fmt.Errorf("unknown column kind %q", b)
	}
	return nil
}

// Descriptor names a column and its inferred kind.
type Descriptor struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Dataset is an immutable, column-oriented table.
type Dataset struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// RowWidthError reports a record with more fields than the header.
type RowWidthError struct {
	Row      int // 1-based data row number
	Expected int
	Got      int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("row %d: expected %d fields, saw %d", e.Row, e.Expected, e.Got)
}

// New builds a dataset from a header and raw string records.
// Header names are made unique, short records are padded with missing
// cells, and records wider than the header are rejected.
func New(header []string, records [][]string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, ErrNoColumns
	}

	names := UniqueNames(header)
	width := len(names)

	cells := make([][]string, width)
	for c := range cells {
		cells[c] = make([]string, len(records))
	}

	for r, rec := range records {
		if len(rec) > width {
			return nil, &RowWidthError{Row: r + 1, Expected: width, Got: len(rec)}
		}
		for c := range width {
			if c < len(rec) {
				cells[c][r] = rec[c]
			}
		}
	}

	ds := &Dataset{
		columns: make([]*Column, width),
		index:   make(map[string]int, width),
		rows:    len(records),
	}
	for c, name := range names {
		ds.columns[c] = newColumn(name, cells[c])
		ds.index[name] = c
	}
	return ds, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.columns) }

// Columns returns all column names in order.
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.name
	}
	return names
}

// NumericColumns returns the names of numeric columns in order.
func (d *Dataset) NumericColumns() []string {
	names := make([]string, 0, len(d.columns))
	for _, c := range d.columns {
		if c.kind == Numeric {
			names = append(names, c.name)
		}
	}
	return names
}

// Descriptors returns name and kind for every column.
func (d *Dataset) Descriptors() []Descriptor {
	out := make([]Descriptor, len(d.columns))
	for i, c := range d.columns {
		out[i] = Descriptor{Name: c.name, Kind: c.kind}
	}
	return out
}

// Has reports whether a column with the given name exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// ColumnAt returns the i-th column.
func (d *Dataset) ColumnAt(i int) *Column { return d.columns[i] }

// Row returns the raw cells of row i, with missing cells as "".
func (d *Dataset) Row(i int) []string {
	row := make([]string, len(d.columns))
	for c, col := range d.columns {
		row[c] = col.Raw(i)
	}
	return row
}

// Records returns every row as raw cells.
func (d *Dataset) Records() [][]string {
	out := make([][]string, d.rows)
	for r := range out {
		out[r] = d.Row(r)
	}
	return out
}

// Subset returns a dataset holding only the given rows, in the given order.
// Column kinds are carried over unchanged.
func (d *Dataset) Subset(rows []int) *Dataset {
	out := &Dataset{
		columns: make([]*Column, len(d.columns)),
		index:   make(map[string]int, len(d.columns)),
		rows:    len(rows),
	}
	for c, col := range d.columns {
		out.columns[c] = col.subset(rows)
		out.index[col.name] = c
	}
	return out
}

// MapText returns a copy whose non-missing text cells are replaced by
// fn(cell). Numeric columns and column kinds are carried over unchanged.
func (d *Dataset) MapText(fn func(string) string) *Dataset {
	out := d.Subset(allRows(d.rows))
	for _, col := range out.columns {
		if col.kind != Text {
			continue
		}
		for i, s := range col.raw {
			if !col.missing[i] {
				col.raw[i] = fn(s)
			}
		}
	}
	return out
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// Reinfer rebuilds the dataset from its raw cells, re-running kind inference.
func (d *Dataset) Reinfer() *Dataset {
	out, err := New(d.Columns(), d.Records())
	if err != nil {
		// Records always match the header width here.
		return d
	}
	return out
}

// WriteCSV writes the dataset as comma-separated text with a header row.
// Missing cells are written as empty fields.
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for r := 0; r < d.rows; r++ {
		row := d.Row(r)
		if len(row) == 1 && row[0] == "" {
			// A lone empty field would be written as a blank line and
			// skipped on read, so quote it explicitly.
			cw.Flush()
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return fmt.Errorf("write row %d: %w", r+1, err)
			}
			continue
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
