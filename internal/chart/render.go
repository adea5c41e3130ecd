package chart

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ErrEmptyFigure is returned when a figure has no traces to draw.
var ErrEmptyFigure = errors.New("figure has no traces")

type renderer interface {
	Render(w io.Writer) error
}

// RenderHTML writes fig as a standalone HTML page drawn with ECharts.
// Missing points are skipped. Map figures are drawn on a world outline
// since tile styles have no ECharts equivalent.
func RenderHTML(w io.Writer, fig *Figure) error {
	if fig == nil || len(fig.Data) == 0 {
		return ErrEmptyFigure
	}

	var r renderer
	switch {
	case fig.Data[0].Type == "scattermapbox":
		r = renderGeo(fig)
	case strings.Contains(fig.Data[0].Mode, "lines"):
		r = renderLine(fig)
	default:
		r = renderScatter(fig)
	}
	return r.Render(w)
}

func globalOpts(fig *Figure) []charts.GlobalOpts {
	theme := ""
	if fig.Layout.Template == ThemeDark {
		theme = types.ThemeChalk
	}
	height := "600px"
	if fig.Layout.Height > 0 {
		height = strconv.Itoa(fig.Layout.Height) + "px"
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fig.Layout.Title.Text,
			Theme:     theme,
			Width:     "100%",
			Height:    height,
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Layout.Title.Text}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
	}
}

func xAxisOpts(fig *Figure) opts.XAxis {
	ax := opts.XAxis{Type: "value"}
	if a := fig.Layout.XAxis; a != nil {
		ax.Name = a.Title.Text
		ax.Min, ax.Max = bounds(a.Range)
	}
	if !numericPoints(fig.Data[0].X) {
		ax.Type = "category"
	}
	return ax
}

func yAxisOpts(a *Axis) opts.YAxis {
	ax := opts.YAxis{Type: "value"}
	if a != nil {
		ax.Name = a.Title.Text
		ax.Min, ax.Max = bounds(a.Range)
	}
	return ax
}

func renderScatter(fig *Figure) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(globalOpts(fig),
		charts.WithXAxisOpts(xAxisOpts(fig)),
		charts.WithYAxisOpts(yAxisOpts(fig.Layout.YAxis)),
	)...)

	for _, t := range fig.Data {
		var data []opts.ScatterData
		for i := range t.X {
			if p, ok := point(t, i); ok {
				data = append(data, opts.ScatterData{Value: p, SymbolSize: markerSize(t.Marker)})
			}
		}
		sc.AddSeries(t.Name, data)
	}
	return sc
}

func renderLine(fig *Figure) *charts.Line {
	ln := charts.NewLine()
	ln.SetGlobalOptions(append(globalOpts(fig),
		charts.WithXAxisOpts(xAxisOpts(fig)),
		charts.WithYAxisOpts(yAxisOpts(fig.Layout.YAxis)),
	)...)
	if fig.Layout.YAxis2 != nil {
		ln.ExtendYAxis(yAxisOpts(fig.Layout.YAxis2))
	}

	for _, t := range fig.Data {
		symbol := ""
		if t.Marker != nil {
			symbol = echartsSymbols[t.Marker.Symbol]
		}
		var data []opts.LineData
		for i := range t.X {
			if p, ok := point(t, i); ok {
				data = append(data, opts.LineData{Value: p, Symbol: symbol, SymbolSize: markerSize(t.Marker)})
			}
		}

		series := []charts.SeriesOpts{}
		if t.YAxis == "y2" {
			series = append(series, charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))
		}
		if t.Line != nil {
			series = append(series, charts.WithLineStyleOpts(opts.LineStyle{
				Width: float32(t.Line.Width),
				Color: t.Line.Color,
			}))
			if t.Line.Color != "" {
				series = append(series, charts.WithItemStyleOpts(opts.ItemStyle{Color: t.Line.Color}))
			}
		}
		ln.AddSeries(t.Name, data, series...)
	}
	return ln
}

func renderGeo(fig *Figure) *charts.Geo {
	geo := charts.NewGeo()
	geo.SetGlobalOptions(append(globalOpts(fig),
		charts.WithGeoComponentOpts(opts.GeoComponent{Map: "world"}),
	)...)

	t := fig.Data[0]
	var colors []any
	if t.Marker != nil {
		colors, _ = t.Marker.Color.([]any)
	}

	var (
		data     []opts.GeoData
		low, top float64
		seen     bool
	)
	for i := range t.Lat {
		lat, ok1 := t.Lat[i].(float64)
		lon, ok2 := t.Lon[i].(float64)
		if !ok1 || !ok2 {
			continue
		}
		value := []float64{lon, lat}
		if colors != nil {
			c, ok := colors[i].(float64)
			if !ok {
				continue
			}
			value = append(value, c)
			if !seen || c < low {
				low = c
			}
			if !seen || c > top {
				top = c
			}
			seen = true
		}
		name := ""
		if i < len(t.Text) {
			name = strings.ReplaceAll(t.Text[i], "<br>", ", ")
		}
		data = append(data, opts.GeoData{Name: name, Value: value})
	}

	if seen {
		geo.SetGlobalOptions(charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(low),
			Max:        float32(top),
			InRange:    &opts.VisualMapInRange{Color: viridisStops},
		}))
	}
	geo.AddSeries(t.Name, types.ChartScatter, data)
	return geo
}

// point returns the [x, y] pair for row i, or false when either is missing.
func point(t Trace, i int) ([]any, bool) {
	if i >= len(t.Y) || t.X[i] == nil || t.Y[i] == nil {
		return nil, false
	}
	return []any{t.X[i], t.Y[i]}, true
}

func numericPoints(vs []any) bool {
	for _, v := range vs {
		if v == nil {
			continue
		}
		if _, ok := v.(float64); !ok {
			return false
		}
	}
	return true
}

func markerSize(m *Marker) int {
	if m == nil {
		return 0
	}
	if n, ok := m.Size.(int); ok {
		return n
	}
	return 0
}

func bounds(r *AxisRange) (lo, hi any) {
	if r == nil {
		return nil, nil
	}
	if r.Min() != nil {
		lo = *r.Min()
	}
	if r.Max() != nil {
		hi = *r.Max()
	}
	return lo, hi
}

