package process

import (
	"fmt"

	"github.com/JonMunkholm/graphtool/internal/dataset"
)

// filter keeps the rows whose cell in column equals value. A numeric
// column compares by number when value parses as one; otherwise cells
// compare as their exact text, with missing cells read as "nan".
func filter(ds *dataset.Dataset, column, value string) (*dataset.Dataset, error) {
	if column == "" || value == "" {
		return nil, fmt.Errorf("%w: filter_column and filter_value are required", ErrInvalidRequest)
	}
	col, ok := ds.Column(column)
	if !ok {
		return nil, fmt.Errorf("%w: filter_column references unknown column %q", ErrInvalidRequest, column)
	}

	var keep []int
	if want, isNum := dataset.ParseNumber(value); isNum && col.IsNumeric() {
		for i := range col.Len() {
			if f, ok := col.Float(i); ok && f == want {
				keep = append(keep, i)
			}
		}
	} else {
		for i := range col.Len() {
			text := "nan"
			if !col.IsMissing(i) {
				text = col.Raw(i)
			}
			if text == value {
				keep = append(keep, i)
			}
		}
	}
	return ds.Subset(keep), nil
}
