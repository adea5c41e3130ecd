package process

import (
	"slices"
	"strings"

	"github.com/JonMunkholm/graphtool/internal/dataset"
)

// clean applies the selected passes in a fixed order: duplicates, empty,
// text, types.
func clean(ds *dataset.Dataset, ops []string) (*dataset.Dataset, error) {
	if err := checkOps("clean_ops", ops, []string{OpDuplicates, OpEmpty, OpText, OpTypes}); err != nil {
		return nil, err
	}

	out := ds
	if slices.Contains(ops, OpDuplicates) {
		out = dropDuplicates(out)
	}
	if slices.Contains(ops, OpEmpty) {
		out = dropIncomplete(out)
	}
	if slices.Contains(ops, OpText) {
		out = out.MapText(func(s string) string {
			return strings.ToLower(strings.TrimSpace(s))
		})
	}
	if slices.Contains(ops, OpTypes) {
		out = out.Reinfer()
	}
	return out, nil
}

// dropDuplicates keeps the first of each set of identical rows. Numeric
// cells compare by value and missing cells equal each other.
func dropDuplicates(ds *dataset.Dataset) *dataset.Dataset {
	seen := make(map[string]struct{}, ds.Len())
	keep := make([]int, 0, ds.Len())

	var key strings.Builder
	for r := range ds.Len() {
		key.Reset()
		for c := range ds.Width() {
			col := ds.ColumnAt(c)
			switch {
			case col.IsMissing(r):
				key.WriteString("\x01")
			case col.IsNumeric():
				f, _ := col.Float(r)
				key.WriteString(dataset.FormatNumber(f))
			default:
				key.WriteString(col.Raw(r))
			}
			key.WriteByte(0)
		}
		if _, dup := seen[key.String()]; dup {
			continue
		}
		seen[key.String()] = struct{}{}
		keep = append(keep, r)
	}
	return ds.Subset(keep)
}

// dropIncomplete removes every row with at least one missing cell.
func dropIncomplete(ds *dataset.Dataset) *dataset.Dataset {
	keep := make([]int, 0, ds.Len())
rows:
	for r := range ds.Len() {
		for c := range ds.Width() {
			if ds.ColumnAt(c).IsMissing(r) {
				continue rows
			}
		}
		keep = append(keep, r)
	}
	return ds.Subset(keep)
}
