package process

import (
	"math"
	"slices"

	"github.com/JonMunkholm/graphtool/internal/dataset"
)

// statistics reports the selected measures for every numeric column.
// Column order in the result is fixed regardless of op order.
func statistics(ds *dataset.Dataset, ops []string) (*dataset.Dataset, error) {
	if err := checkOps("stats_ops", ops, []string{OpMean, OpMedian, OpStd, OpMinMax}); err != nil {
		return nil, err
	}

	header := []string{"Column"}
	has := func(op string) bool { return slices.Contains(ops, op) }
	if has(OpMean) {
		header = append(header, "Mean")
	}
	if has(OpMedian) {
		header = append(header, "Median")
	}
	if has(OpStd) {
		header = append(header, "Standard_Deviation")
	}
	if has(OpMinMax) {
		header = append(header, "Min", "Max")
	}

	numeric := ds.NumericColumns()
	rows := make([][]string, 0, len(numeric))
	for _, name := range numeric {
		col, _ := ds.Column(name)
		xs := col.Floats()

		row := []string{name}
		if has(OpMean) {
			row = append(row, dataset.FormatNumber(mean(xs)))
		}
		if has(OpMedian) {
			row = append(row, dataset.FormatNumber(quantile(xs, 0.5)))
		}
		if has(OpStd) {
			row = append(row, dataset.FormatNumber(sampleStd(xs)))
		}
		if has(OpMinMax) {
			lo, hi := minMax(xs)
			row = append(row, dataset.FormatNumber(lo), dataset.FormatNumber(hi))
		}
		rows = append(rows, row)
	}
	return dataset.New(header, rows)
}

// The helpers below return NaN when there is nothing to measure; NaN is
// written out as a missing cell.

func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// sampleStd is the standard deviation with n-1 degrees of freedom.
func sampleStd(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return math.NaN()
	}
	m := mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

func minMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi := x[0], x[0]
	for _, v := range x[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// quantile interpolates linearly between the closest ranks.
func quantile(x []float64, q float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	cp := slices.Clone(x)
	slices.Sort(cp)
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return cp[lo]
	}
	frac := pos - float64(lo)
	return cp[lo] + (cp[hi]-cp[lo])*frac
}
