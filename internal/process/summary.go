package process

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JonMunkholm/graphtool/internal/dataset"
)

// describeRows are the statistic names of a basic summary, in order.
var describeRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

func summarize(ds *dataset.Dataset, kind string) (*dataset.Dataset, error) {
	switch kind {
	case SummaryBasic:
		return describe(ds)
	case SummaryQuality:
		return quality(ds)
	case SummaryColumns:
		return columnAnalysis(ds)
	case "":
		return nil, fmt.Errorf("%w: summary_type is required", ErrInvalidRequest)
	default:
		return nil, fmt.Errorf("%w: unknown summary_type %q", ErrInvalidRequest, kind)
	}
}

// describe reports count, mean, std, min, quartiles and max for each
// numeric column, one statistic per row.
func describe(ds *dataset.Dataset) (*dataset.Dataset, error) {
	numeric := ds.NumericColumns()
	if len(numeric) == 0 {
		return nil, fmt.Errorf("%w: no numeric columns to describe", ErrInvalidRequest)
	}

	rows := make([][]string, len(describeRows))
	for i, name := range describeRows {
		rows[i] = []string{name}
	}
	for _, name := range numeric {
		col, _ := ds.Column(name)
		xs := col.Floats()
		lo, hi := minMax(xs)
		values := []float64{
			float64(len(xs)),
			mean(xs),
			sampleStd(xs),
			lo,
			quantile(xs, 0.25),
			quantile(xs, 0.5),
			quantile(xs, 0.75),
			hi,
		}
		for i, v := range values {
			rows[i] = append(rows[i], dataset.FormatNumber(v))
		}
	}

	return dataset.New(append([]string{"index"}, numeric...), rows)
}

// quality reports row, missing and distinct counts for every column.
func quality(ds *dataset.Dataset) (*dataset.Dataset, error) {
	header := []string{"Column", "Total_Rows", "Null_Count", "Null_Percentage", "Unique_Values", "Data_Type"}
	total := ds.Len()

	rows := make([][]string, 0, ds.Width())
	for i := range ds.Width() {
		col := ds.ColumnAt(i)
		nulls := col.MissingCount()
		pct := math.NaN()
		if total > 0 {
			pct = math.Round(float64(nulls)/float64(total)*100*100) / 100
		}
		rows = append(rows, []string{
			col.Name(),
			strconv.Itoa(total),
			strconv.Itoa(nulls),
			dataset.FormatNumber(pct),
			strconv.Itoa(col.UniqueCount()),
			dtype(col),
		})
	}
	return dataset.New(header, rows)
}

// columnAnalysis lists each column's type, first three values and
// distinct count.
func columnAnalysis(ds *dataset.Dataset) (*dataset.Dataset, error) {
	header := []string{"Column", "Data_Type", "Sample_Values", "Unique_Count"}

	rows := make([][]string, 0, ds.Width())
	for i := range ds.Width() {
		col := ds.ColumnAt(i)
		n := min(3, col.Len())
		samples := make([]string, n)
		for r := range n {
			samples[r] = col.Display(r)
		}
		rows = append(rows, []string{
			col.Name(),
			dtype(col),
			strings.Join(samples, ", "),
			strconv.Itoa(col.UniqueCount()),
		})
	}
	return dataset.New(header, rows)
}

// dtype names the storage type a column would have in a dataframe:
// int64 for complete whole-number columns, float64 for other numeric
// columns and object for text.
func dtype(col *dataset.Column) string {
	if !col.IsNumeric() {
		return "object"
	}
	if col.Len() == 0 || col.MissingCount() > 0 {
		return "float64"
	}
	for i := range col.Len() {
		f, _ := col.Float(i)
		if f != math.Trunc(f) || math.IsInf(f, 0) || strings.ContainsAny(col.Raw(i), ".eE") {
			return "float64"
		}
	}
	return "int64"
}
