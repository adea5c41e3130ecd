// Package process derives new datasets from an uploaded one: summary
// reports, row filters, per-column statistics and cleaning passes.
//
// Every operation is pure. The source dataset is never modified and the
// result is a fresh dataset ready to be exported as CSV.
package process

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/JonMunkholm/graphtool/internal/dataset"
)

// ErrInvalidRequest marks an unknown process type, a missing option or an
// option naming a column the dataset lacks.
var ErrInvalidRequest = errors.New("invalid processing request")

// Type selects the operation.
type Type string

const (
	Summary Type = "summary"
	Filter  Type = "filter"
	Stats   Type = "stats"
	Clean   Type = "clean"
)

// Summary kinds.
const (
	SummaryBasic   = "basic"
	SummaryQuality = "quality"
	SummaryColumns = "columns"
)

// Statistic and cleaning operation names.
const (
	OpMean   = "mean"
	OpMedian = "median"
	OpStd    = "std"
	OpMinMax = "minmax"

	OpDuplicates = "duplicates"
	OpEmpty      = "empty"
	OpText       = "text"
	OpTypes      = "types"
)

var (
	defaultStatsOps = []string{OpMean, OpMedian}
	defaultCleanOps = []string{OpDuplicates, OpEmpty}
)

// Request describes one processing run. Nil op lists take their defaults:
// mean and median for stats, duplicates and empty for clean.
type Request struct {
	Type         Type     `json:"process_type" yaml:"process_type"`
	SummaryType  string   `json:"summary_type,omitempty" yaml:"summary_type,omitempty"`
	FilterColumn string   `json:"filter_column,omitempty" yaml:"filter_column,omitempty"`
	FilterValue  string   `json:"filter_value,omitempty" yaml:"filter_value,omitempty"`
	StatsOps     []string `json:"stats_ops,omitempty" yaml:"stats_ops,omitempty"`
	CleanOps     []string `json:"clean_ops,omitempty" yaml:"clean_ops,omitempty"`
}

// Result is a processed dataset plus a one-line description of the run.
type Result struct {
	Data    *dataset.Dataset
	Message string
}

// Run applies req to ds.
func Run(ds *dataset.Dataset, req Request) (*Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: no dataset", ErrInvalidRequest)
	}

	switch req.Type {
	case Summary:
		out, err := summarize(ds, req.SummaryType)
		if err != nil {
			return nil, err
		}
		return &Result{out, fmt.Sprintf("Summary report generated: %d rows.", out.Len())}, nil

	case Filter:
		out, err := filter(ds, req.FilterColumn, req.FilterValue)
		if err != nil {
			return nil, err
		}
		return &Result{out, fmt.Sprintf("Data filtered: %d rows remaining (from %d original).", out.Len(), ds.Len())}, nil

	case Stats:
		ops := req.StatsOps
		if ops == nil {
			ops = defaultStatsOps
		}
		out, err := statistics(ds, ops)
		if err != nil {
			return nil, err
		}
		return &Result{out, fmt.Sprintf("Statistics calculated for %d columns.", out.Len())}, nil

	case Clean:
		ops := req.CleanOps
		if ops == nil {
			ops = defaultCleanOps
		}
		out, err := clean(ds, ops)
		if err != nil {
			return nil, err
		}
		return &Result{out, fmt.Sprintf("Data cleaned: %d rows remaining (from %d original).", out.Len(), ds.Len())}, nil

	case "":
		return nil, fmt.Errorf("%w: process_type is required", ErrInvalidRequest)
	default:
		return nil, fmt.Errorf("%w: unknown process_type %q", ErrInvalidRequest, req.Type)
	}
}

// DecodeRequest builds a Request from loosely typed form or JSON values.
// Op lists accept either a list or a comma-separated string. Column names
// and filter values are kept exactly as sent.
func DecodeRequest(raw map[string]any) (Request, error) {
	var req Request
	var err error

	str := func(key string) string {
		if err != nil {
			return ""
		}
		v, ok := raw[key]
		if !ok || v == nil {
			return ""
		}
		var s string
		s, err = cast.ToStringE(v)
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrInvalidRequest, key, err)
		}
		return s
	}
	list := func(key string) []string {
		if err != nil {
			return nil
		}
		v, ok := raw[key]
		if !ok || v == nil {
			return nil
		}
		if s, isStr := v.(string); isStr {
			return splitOps(s)
		}
		var out []string
		out, err = cast.ToStringSliceE(v)
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrInvalidRequest, key, err)
		}
		return out
	}

	req.Type = Type(strings.TrimSpace(str("process_type")))
	req.SummaryType = strings.TrimSpace(str("summary_type"))
	req.FilterColumn = str("filter_column")
	req.FilterValue = str("filter_value")
	req.StatsOps = list("stats_ops")
	req.CleanOps = list("clean_ops")
	return req, err
}

func splitOps(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Filename names a processed download by its creation time.
func Filename(now time.Time) string {
	return "processed_data_" + now.Format("20060102_150405") + ".csv"
}

func checkOps(field string, ops, known []string) error {
	for _, op := range ops {
		if !slices.Contains(known, op) {
			return fmt.Errorf("%w: %s: unknown operation %q", ErrInvalidRequest, field, op)
		}
	}
	return nil
}
