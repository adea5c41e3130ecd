package chart

// Theme names a fixed visual template.
type Theme string

const (
	ThemeLight Theme = "plotly_white"
	ThemeDark  Theme = "plotly_dark"
)

// ThemeFor maps the light_mode switch to a template.
func ThemeFor(lightMode bool) Theme {
	if lightMode {
		return ThemeLight
	}
	return ThemeDark
}

// Dual-axis series colors. Every trace on an axis shares its axis color.
const (
	LeftAxisColor  = "#1f77b4"
	RightAxisColor = "#ff7f0e"
)

// ContinuousColorScale colors map points by a numeric column.
const ContinuousColorScale = "Viridis"

// MarkerSymbols is the ordered marker palette for dual-axis traces.
// Trace i within an axis group uses MarkerSymbols[i % len(MarkerSymbols)],
// so the twelfth series on one axis wraps back to "circle".
var MarkerSymbols = [...]string{
	"circle",
	"x",
	"square",
	"diamond",
	"triangle-up",
	"pentagon",
	"hexagon",
	"star",
	"triangle-down",
	"triangle-left",
	"triangle-right",
}

// MarkerSymbol returns the palette entry for trace index i.
func MarkerSymbol(i int) string {
	return MarkerSymbols[i%len(MarkerSymbols)]
}

// echartsSymbols maps each palette entry to an ECharts symbol.
// Shapes ECharts lacks are drawn as 10x10 SVG paths.
var echartsSymbols = map[string]string{
	"circle":         "circle",
	"x":              "path://M2,0L5,3L8,0L10,2L7,5L10,8L8,10L5,7L2,10L0,8L3,5L0,2Z",
	"square":         "rect",
	"diamond":        "diamond",
	"triangle-up":    "triangle",
	"pentagon":       "path://M5,0L10,3.8L8.1,10L1.9,10L0,3.8Z",
	"hexagon":        "path://M2.5,0L7.5,0L10,5L7.5,10L2.5,10L0,5Z",
	"star":           "path://M5,0L6.2,3.8L10,3.8L6.9,6.2L8.1,10L5,7.6L1.9,10L3.1,6.2L0,3.8L3.8,3.8Z",
	"triangle-down":  "path://M0,0L10,0L5,10Z",
	"triangle-left":  "path://M10,0L10,10L0,5Z",
	"triangle-right": "path://M0,0L10,5L0,10Z",
}

// viridisStops approximates the Viridis scale for the HTML renderer.
var viridisStops = []string{"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Default titles and sizes per chart type.
const (
	defaultScatterTitle = "Scatter Plot"
	defaultLineTitle    = "Line Chart"
	defaultDualTitle    = "Dual Axis Line Chart"
	defaultMapTitle     = "Scatter Plot on Map"
	defaultYTitle       = "Values"
	defaultY1Title      = "Left Y-Axis"
	defaultY2Title      = "Right Y-Axis"
	defaultMapStyle     = "satellite"
	defaultMapZoom      = 3
	mapTraceName        = "Data Points"
	mapHoverTemplate    = "%{text}<extra></extra>"
	mapHeight           = 600
)
