// Package chart builds renderable chart descriptions from a dataset and a
// declarative configuration.
//
// Each chart type has its own configuration variant carrying only the
// fields it uses. Decode builds the right variant from a loosely typed
// key/value map and rejects missing required bindings up front; Build
// checks every referenced column against the dataset before producing a
// Figure, so a series is never dropped silently.
package chart

import (
	"math"

	"github.com/JonMunkholm/graphtool/internal/dataset"
)

// GraphType selects the chart variant.
type GraphType string

const (
	GraphScatter      GraphType = "scatter"
	GraphSingleLine   GraphType = "single_line"
	GraphDualLine     GraphType = "dual_line"
	GraphScatterOnMap GraphType = "scatter_on_map"
)

// GraphTypes lists the recognized chart types.
var GraphTypes = []GraphType{GraphScatter, GraphSingleLine, GraphDualLine, GraphScatterOnMap}

// Config is implemented by *ScatterConfig, *LineConfig, *DualLineConfig
// and *MapConfig.
type Config interface {
	GraphType() GraphType

	// Check reports a missing required binding.
	Check() error

	// Validate runs Check and verifies every referenced column exists in ds.
	Validate(ds *dataset.Dataset) error

	build(ds *dataset.Dataset) *Figure
}

// Range is an optional axis clamp. It applies only when Min is set; Max
// may be nil, leaving the upper bound auto-scaled.
type Range struct {
	Min *float64
	Max *float64
}

func (r Range) axisRange() *AxisRange {
	if r.Min == nil {
		return nil
	}
	return &AxisRange{r.Min, r.Max}
}

func (r Range) check(minField, maxField string) error {
	if r.Min != nil && !isFinite(*r.Min) {
		return invalid(minField, "must be a finite number")
	}
	if r.Max != nil && !isFinite(*r.Max) {
		return invalid(maxField, "must be a finite number")
	}
	return nil
}

// XYConfig is shared by the scatter and single-axis line variants.
type XYConfig struct {
	Title     string
	XColumn   string
	YColumns  []string
	XTitle    string
	YTitle    string
	LightMode bool
	XRange    Range
	YRange    Range
}

func (c *XYConfig) Check() error {
	if c.XColumn == "" {
		return invalid("x_column", "is required")
	}
	if len(c.YColumns) == 0 {
		return invalid("y_columns", "requires at least one column")
	}
	if err := checkNames("y_columns", c.YColumns); err != nil {
		return err
	}
	if err := c.XRange.check("x_min", "x_max"); err != nil {
		return err
	}
	return c.YRange.check("y_min", "y_max")
}

func (c *XYConfig) Validate(ds *dataset.Dataset) error {
	if err := c.Check(); err != nil {
		return err
	}
	if err := requireColumn(ds, "x_column", c.XColumn); err != nil {
		return err
	}
	return requireColumns(ds, "y_columns", c.YColumns)
}

func (c *XYConfig) layout(defaultTitle string) Layout {
	return Layout{
		Title:    Title{Text: or(c.Title, defaultTitle)},
		Template: ThemeFor(c.LightMode),
		XAxis:    &Axis{Title: Title{Text: or(c.XTitle, c.XColumn)}, Range: c.XRange.axisRange()},
		YAxis:    &Axis{Title: Title{Text: or(c.YTitle, defaultYTitle)}, Range: c.YRange.axisRange()},
	}
}

// ScatterConfig plots each y column as markers against x.
type ScatterConfig struct {
	XYConfig
}

func (*ScatterConfig) GraphType() GraphType { return GraphScatter }

// LineConfig plots each y column as lines with markers against x.
type LineConfig struct {
	XYConfig
}

func (*LineConfig) GraphType() GraphType { return GraphSingleLine }

// DualLineConfig plots two independently scaled groups of series that
// share the x axis.
type DualLineConfig struct {
	Title     string
	XColumn   string
	Y1Columns []string
	Y2Columns []string
	XTitle    string
	Y1Title   string
	Y2Title   string
	LightMode bool
	XRange    Range
	Y1Range   Range
	Y2Range   Range
}

func (*DualLineConfig) GraphType() GraphType { return GraphDualLine }

func (c *DualLineConfig) Check() error {
	if c.XColumn == "" {
		return invalid("x_column", "is required")
	}
	if len(c.Y1Columns)+len(c.Y2Columns) == 0 {
		return invalid("y1_columns", "or y2_columns requires at least one column")
	}
	if err := checkNames("y1_columns", c.Y1Columns); err != nil {
		return err
	}
	if err := checkNames("y2_columns", c.Y2Columns); err != nil {
		return err
	}
	if err := c.XRange.check("x_min", "x_max"); err != nil {
		return err
	}
	if err := c.Y1Range.check("y1_min", "y1_max"); err != nil {
		return err
	}
	return c.Y2Range.check("y2_min", "y2_max")
}

func (c *DualLineConfig) Validate(ds *dataset.Dataset) error {
	if err := c.Check(); err != nil {
		return err
	}
	if err := requireColumn(ds, "x_column", c.XColumn); err != nil {
		return err
	}
	if err := requireColumns(ds, "y1_columns", c.Y1Columns); err != nil {
		return err
	}
	return requireColumns(ds, "y2_columns", c.Y2Columns)
}

// MapConfig plots points by latitude and longitude.
type MapConfig struct {
	Title           string
	LatitudeColumn  string
	LongitudeColumn string
	HoverColumns    []string
	ColorColumn     string
	SizeColumn      string
	MapStyle        string
	LightMode       bool
}

func (*MapConfig) GraphType() GraphType { return GraphScatterOnMap }

func (c *MapConfig) Check() error {
	if c.LatitudeColumn == "" {
		return missingAxis("latitude_column")
	}
	if c.LongitudeColumn == "" {
		return missingAxis("longitude_column")
	}
	return nil
}

// Validate requires numeric latitude, longitude, color and size columns.
// Hover columns are not checked: absent ones contribute no hover text.
func (c *MapConfig) Validate(ds *dataset.Dataset) error {
	if err := c.Check(); err != nil {
		return err
	}
	for _, b := range []struct{ field, name string }{
		{"latitude_column", c.LatitudeColumn},
		{"longitude_column", c.LongitudeColumn},
	} {
		col, err := numericColumn(ds, b.field, b.name)
		if err != nil {
			return err
		}
		if len(col.Floats()) == 0 {
			return invalid(b.field, "column %q has no values", b.name)
		}
	}
	if c.ColorColumn != "" {
		if _, err := numericColumn(ds, "color_column", c.ColorColumn); err != nil {
			return err
		}
	}
	if c.SizeColumn != "" {
		if _, err := numericColumn(ds, "size_column", c.SizeColumn); err != nil {
			return err
		}
	}
	return nil
}

func requireColumn(ds *dataset.Dataset, field, name string) error {
	if !ds.Has(name) {
		return invalid(field, "references unknown column %q", name)
	}
	return nil
}

func requireColumns(ds *dataset.Dataset, field string, names []string) error {
	for _, name := range names {
		if err := requireColumn(ds, field, name); err != nil {
			return err
		}
	}
	return nil
}

func numericColumn(ds *dataset.Dataset, field, name string) (*dataset.Column, error) {
	col, ok := ds.Column(name)
	if !ok {
		return nil, invalid(field, "references unknown column %q", name)
	}
	if !col.IsNumeric() {
		return nil, invalid(field, "column %q is not numeric", name)
	}
	return col, nil
}

func checkNames(field string, names []string) error {
	for _, n := range names {
		if n == "" {
			return invalid(field, "contains an empty column name")
		}
	}
	return nil
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
