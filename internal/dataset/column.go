package dataset

import "strings"

// Column is one named, typed column of a Dataset.
type Column struct {
	name    string
	kind    Kind
	raw     []string
	nums    []float64
	missing []bool
}

// newColumn classifies each cell and infers the column kind.
// A column is numeric when every non-missing cell parses as a number;
// a column with no values at all is numeric too.
func newColumn(name string, cells []string) *Column {
	col := &Column{
		name:    name,
		kind:    Numeric,
		raw:     cells,
		missing: make([]bool, len(cells)),
	}

	nums := make([]float64, len(cells))
	for i, s := range cells {
		if IsMissing(s) {
			col.missing[i] = true
			continue
		}
		if col.kind == Numeric {
			f, ok := ParseNumber(s)
			if !ok {
				col.kind = Text
				continue
			}
			nums[i] = f
		}
	}
	if col.kind == Numeric {
		col.nums = nums
	}
	return col
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the inferred kind.
func (c *Column) Kind() Kind { return c.kind }

// IsNumeric reports whether the column was inferred as numeric.
func (c *Column) IsNumeric() bool { return c.kind == Numeric }

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.raw) }

// IsMissing reports whether cell i is missing.
func (c *Column) IsMissing(i int) bool { return c.missing[i] }

// Raw returns the original text of cell i, or "" when missing.
func (c *Column) Raw(i int) string {
	if c.missing[i] {
		return ""
	}
	return c.raw[i]
}

// Float returns the numeric value of cell i.
// ok is false for missing cells and for text columns.
func (c *Column) Float(i int) (float64, bool) {
	if c.kind != Numeric || c.missing[i] {
		return 0, false
	}
	return c.nums[i], true
}

// Value returns cell i as float64 (numeric column), string (text column)
// or nil (missing).
func (c *Column) Value(i int) any {
	if c.missing[i] {
		return nil
	}
	if c.kind == Numeric {
		return c.nums[i]
	}
	return c.raw[i]
}

// Values returns every cell as Value would.
func (c *Column) Values() []any {
	out := make([]any, len(c.raw))
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}

// Floats returns the non-missing numeric values in row order.
func (c *Column) Floats() []float64 {
	if c.kind != Numeric {
		return nil
	}
	out := make([]float64, 0, len(c.nums))
	for i, f := range c.nums {
		if !c.missing[i] {
			out = append(out, f)
		}
	}
	return out
}

// Display renders cell i for hover text; missing cells render as "nan".
func (c *Column) Display(i int) string {
	if c.missing[i] {
		return "nan"
	}
	return strings.TrimSpace(c.raw[i])
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.missing {
		if m {
			n++
		}
	}
	return n
}

// UniqueCount returns the number of distinct non-missing values.
// Numeric cells compare by value, so "1" and "1.0" count once.
func (c *Column) UniqueCount() int {
	if c.kind == Numeric {
		seen := make(map[float64]struct{})
		for i, f := range c.nums {
			if !c.missing[i] {
				seen[f] = struct{}{}
			}
		}
		return len(seen)
	}
	seen := make(map[string]struct{})
	for i, s := range c.raw {
		if !c.missing[i] {
			seen[s] = struct{}{}
		}
	}
	return len(seen)
}

func (c *Column) subset(rows []int) *Column {
	out := &Column{
		name:    c.name,
		kind:    c.kind,
		raw:     make([]string, len(rows)),
		missing: make([]bool, len(rows)),
	}
	if c.nums != nil {
		out.nums = make([]float64, len(rows))
	}
	for j, r := range rows {
		out.raw[j] = c.raw[r]
		out.missing[j] = c.missing[r]
		if c.nums != nil {
			out.nums[j] = c.nums[r]
		}
	}
	return out
}
