package chart

import (
	"strings"

	"github.com/JonMunkholm/graphtool/internal/dataset"
)

// Build validates cfg against ds and produces the chart description.
// Errors wrap ErrInvalidConfiguration or ErrMissingAxisBinding.
func Build(ds *dataset.Dataset, cfg Config) (*Figure, error) {
	if cfg == nil {
		return nil, invalid("graph_type", "is required")
	}
	if ds == nil {
		return nil, invalid("dataset", "is required")
	}
	if err := cfg.Validate(ds); err != nil {
		return nil, err
	}
	return cfg.build(ds), nil
}

// values returns a validated column's cells. Infinite values have no JSON
// encoding and plot as gaps, the same as missing cells.
func values(ds *dataset.Dataset, name string) []any {
	col, _ := ds.Column(name)
	return plottable(col.Values())
}

func plottable(vs []any) []any {
	for i, v := range vs {
		if f, ok := v.(float64); ok && !isFinite(f) {
			vs[i] = nil
		}
	}
	return vs
}

func (c *ScatterConfig) build(ds *dataset.Dataset) *Figure {
	x := values(ds, c.XColumn)
	fig := &Figure{Layout: c.layout(defaultScatterTitle)}
	for _, name := range c.YColumns {
		fig.Data = append(fig.Data, Trace{
			Type:   "scatter",
			Mode:   "markers",
			Name:   name,
			X:      x,
			Y:      values(ds, name),
			Marker: &Marker{Size: 8, Opacity: 0.7},
		})
	}
	return fig
}

func (c *LineConfig) build(ds *dataset.Dataset) *Figure {
	x := values(ds, c.XColumn)
	fig := &Figure{Layout: c.layout(defaultLineTitle)}
	for _, name := range c.YColumns {
		fig.Data = append(fig.Data, Trace{
			Type:   "scatter",
			Mode:   "lines+markers",
			Name:   name,
			X:      x,
			Y:      values(ds, name),
			Line:   &Line{Width: 3},
			Marker: &Marker{Size: 6},
		})
	}
	return fig
}

func (c *DualLineConfig) build(ds *dataset.Dataset) *Figure {
	x := values(ds, c.XColumn)
	fig := &Figure{
		Layout: Layout{
			Title:    Title{Text: or(c.Title, defaultDualTitle)},
			Template: ThemeFor(c.LightMode),
			XAxis: &Axis{
				Title: Title{Text: or(c.XTitle, c.XColumn)},
				Range: c.XRange.axisRange(),
			},
			YAxis: &Axis{
				Title: Title{Text: or(c.Y1Title, defaultY1Title)},
				Range: c.Y1Range.axisRange(),
				Side:  "left",
				Color: LeftAxisColor,
			},
			YAxis2: &Axis{
				Title:      Title{Text: or(c.Y2Title, defaultY2Title)},
				Range:      c.Y2Range.axisRange(),
				Side:       "right",
				Overlaying: "y",
				Color:      RightAxisColor,
			},
		},
	}

	groups := []struct {
		axis    string
		color   string
		columns []string
	}{
		{"y", LeftAxisColor, c.Y1Columns},
		{"y2", RightAxisColor, c.Y2Columns},
	}
	for _, g := range groups {
		// Symbol index restarts for each axis group.
		for i, name := range g.columns {
			fig.Data = append(fig.Data, Trace{
				Type:   "scatter",
				Mode:   "lines+markers",
				Name:   name,
				X:      x,
				Y:      values(ds, name),
				YAxis:  g.axis,
				Line:   &Line{Width: 3, Color: g.color},
				Marker: &Marker{Size: 8, Symbol: MarkerSymbol(i), Color: g.color},
			})
		}
	}
	return fig
}

func (c *MapConfig) build(ds *dataset.Dataset) *Figure {
	lat, _ := ds.Column(c.LatitudeColumn)
	lon, _ := ds.Column(c.LongitudeColumn)

	marker := &Marker{Size: 8, Opacity: 0.7}
	if c.ColorColumn != "" {
		marker.Color = values(ds, c.ColorColumn)
		marker.ColorScale = ContinuousColorScale
		marker.ShowScale = true
		marker.ColorBar = &ColorBar{Title: Title{Text: c.ColorColumn}}
	}
	if c.SizeColumn != "" {
		marker.Size = values(ds, c.SizeColumn)
	}

	trace := Trace{
		Type:   "scattermapbox",
		Mode:   "markers",
		Name:   mapTraceName,
		Lat:    plottable(lat.Values()),
		Lon:    plottable(lon.Values()),
		Marker: marker,
		Text:   HoverText(ds, c.HoverColumns),
	}
	if len(trace.Text) > 0 {
		trace.HoverTemplate = mapHoverTemplate
	}

	return &Figure{
		Data: []Trace{trace},
		Layout: Layout{
			Title:    Title{Text: or(c.Title, defaultMapTitle)},
			Template: ThemeFor(c.LightMode),
			Mapbox: &Mapbox{
				Style:  or(c.MapStyle, defaultMapStyle),
				Center: LatLon{Lat: mean(lat.Floats()), Lon: mean(lon.Floats())},
				Zoom:   defaultMapZoom,
			},
			Margin: &Margin{L: 0, R: 0, T: 50, B: 0},
			Height: mapHeight,
		},
	}
}

// HoverText builds one "column: value" string per row, joined with <br>.
// Columns missing from ds are skipped; a row with no hover columns gets
// the empty string.
func HoverText(ds *dataset.Dataset, columns []string) []string {
	var present []*dataset.Column
	for _, name := range columns {
		if col, ok := ds.Column(name); ok {
			present = append(present, col)
		}
	}

	out := make([]string, ds.Len())
	if len(present) == 0 {
		return out
	}
	parts := make([]string, len(present))
	for r := range out {
		for i, col := range present {
			parts[i] = col.Name() + ": " + col.Display(r)
		}
		out[r] = strings.Join(parts, "<br>")
	}
	return out
}

func mean(xs []float64) float64 {
	var sum float64
	n := 0
	for _, x := range xs {
		if isFinite(x) {
			sum += x
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
