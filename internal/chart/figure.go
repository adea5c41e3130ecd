package chart

import "encoding/json"

// Figure is a renderable chart description: traces plus a layout block.
// Field names and JSON tags follow the plotly figure schema so the result
// can be handed directly to Plotly.newPlot.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one plotted series.
type Trace struct {
	Type          string   `json:"type"`
	Mode          string   `json:"mode"`
	Name          string   `json:"name"`
	X             []any    `json:"x,omitempty"`
	Y             []any    `json:"y,omitempty"`
	Lat           []any    `json:"lat,omitempty"`
	Lon           []any    `json:"lon,omitempty"`
	Text          []string `json:"text,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
	YAxis         string   `json:"yaxis,omitempty"`
	Marker        *Marker  `json:"marker,omitempty"`
	Line          *Line    `json:"line,omitempty"`
}

// Marker styles trace points. Size and Color hold either a single value
// or one value per point.
type Marker struct {
	Size       any       `json:"size,omitempty"`
	Opacity    float64   `json:"opacity,omitempty"`
	Symbol     string    `json:"symbol,omitempty"`
	Color      any       `json:"color,omitempty"`
	ColorScale string    `json:"colorscale,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

type ColorBar struct {
	Title Title `json:"title"`
}

type Line struct {
	Width float64 `json:"width,omitempty"`
	Color string  `json:"color,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

// Layout holds titles, theme, axes and the map viewport.
type Layout struct {
	Title    Title   `json:"title"`
	Template Theme   `json:"template,omitempty"`
	XAxis    *Axis   `json:"xaxis,omitempty"`
	YAxis    *Axis   `json:"yaxis,omitempty"`
	YAxis2   *Axis   `json:"yaxis2,omitempty"`
	Mapbox   *Mapbox `json:"mapbox,omitempty"`
	Margin   *Margin `json:"margin,omitempty"`
	Height   int     `json:"height,omitempty"`
}

type Axis struct {
	Title      Title      `json:"title"`
	Range      *AxisRange `json:"range,omitempty"`
	Side       string     `json:"side,omitempty"`
	Overlaying string     `json:"overlaying,omitempty"`
	Color      string     `json:"color,omitempty"`
}

// AxisRange is a [min, max] pair; a nil max serializes as null and leaves
// the upper bound to the renderer's autoscale.
type AxisRange [2]*float64

func (r AxisRange) Min() *float64 { return r[0] }
func (r AxisRange) Max() *float64 { return r[1] }

type Mapbox struct {
	Style  string  `json:"style"`
	Center LatLon  `json:"center"`
	Zoom   float64 `json:"zoom"`
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// JSON encodes the figure.
func (f *Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}
