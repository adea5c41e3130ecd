package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// rawConfig is the flat option table accepted from clients. Unknown keys
// are ignored.
type rawConfig struct {
	GraphType string `mapstructure:"graph_type"`
	Title     string `mapstructure:"title"`
	LightMode *bool  `mapstructure:"light_mode"`

	XColumn   string   `mapstructure:"x_column"`
	YColumns  []string `mapstructure:"y_columns"`
	Y1Columns []string `mapstructure:"y1_columns"`
	Y2Columns []string `mapstructure:"y2_columns"`

	XTitle  string `mapstructure:"x_title"`
	YTitle  string `mapstructure:"y_title"`
	Y1Title string `mapstructure:"y1_title"`
	Y2Title string `mapstructure:"y2_title"`

	XMin  *float64 `mapstructure:"x_min"`
	XMax  *float64 `mapstructure:"x_max"`
	YMin  *float64 `mapstructure:"y_min"`
	YMax  *float64 `mapstructure:"y_max"`
	Y1Min *float64 `mapstructure:"y1_min"`
	Y1Max *float64 `mapstructure:"y1_max"`
	Y2Min *float64 `mapstructure:"y2_min"`
	Y2Max *float64 `mapstructure:"y2_max"`

	LatitudeColumn  string   `mapstructure:"latitude_column"`
	LongitudeColumn string   `mapstructure:"longitude_column"`
	HoverColumns    []string `mapstructure:"hover_columns"`
	ColorColumn     string   `mapstructure:"color_column"`
	SizeColumn      string   `mapstructure:"size_column"`
	MapType         string   `mapstructure:"map_type"`
}

// Decode builds the configuration variant named by raw["graph_type"].
//
// Values are weakly typed, as HTML forms send them: "5" is accepted for a
// number, "true" for a boolean, and a single string for a column list.
// Keys whose value is null or blank count as absent. light_mode defaults
// to true.
func Decode(raw map[string]any) (Config, error) {
	var rc rawConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rc,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(dropBlank(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	light := true
	if rc.LightMode != nil {
		light = *rc.LightMode
	}

	var cfg Config
	switch GraphType(strings.TrimSpace(rc.GraphType)) {
	case "":
		return nil, invalid("graph_type", "is required")
	case GraphScatter:
		cfg = &ScatterConfig{XYConfig: rc.xy(light)}
	case GraphSingleLine:
		cfg = &LineConfig{XYConfig: rc.xy(light)}
	case GraphDualLine:
		cfg = &DualLineConfig{
			Title:     rc.Title,
			XColumn:   rc.XColumn,
			Y1Columns: rc.Y1Columns,
			Y2Columns: rc.Y2Columns,
			XTitle:    rc.XTitle,
			Y1Title:   rc.Y1Title,
			Y2Title:   rc.Y2Title,
			LightMode: light,
			XRange:    Range{Min: rc.XMin, Max: rc.XMax},
			Y1Range:   Range{Min: rc.Y1Min, Max: rc.Y1Max},
			Y2Range:   Range{Min: rc.Y2Min, Max: rc.Y2Max},
		}
	case GraphScatterOnMap:
		cfg = &MapConfig{
			Title:           rc.Title,
			LatitudeColumn:  rc.LatitudeColumn,
			LongitudeColumn: rc.LongitudeColumn,
			HoverColumns:    rc.HoverColumns,
			ColorColumn:     rc.ColorColumn,
			SizeColumn:      rc.SizeColumn,
			MapStyle:        rc.MapType,
			LightMode:       light,
		}
	default:
		return nil, invalid("graph_type", "has unrecognized value %q", rc.GraphType)
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (rc *rawConfig) xy(light bool) XYConfig {
	return XYConfig{
		Title:     rc.Title,
		XColumn:   rc.XColumn,
		YColumns:  rc.YColumns,
		XTitle:    rc.XTitle,
		YTitle:    rc.YTitle,
		LightMode: light,
		XRange:    Range{Min: rc.XMin, Max: rc.XMax},
		YRange:    Range{Min: rc.YMin, Max: rc.YMax},
	}
}

// DecodeJSON decodes a JSON object into a configuration.
func DecodeJSON(data []byte) (Config, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return Decode(raw)
}

// DecodeYAML decodes a YAML mapping into a configuration.
func DecodeYAML(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return Decode(raw)
}

func dropBlank(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(t) == "" {
				continue
			}
		}
		out[k] = v
	}
	return out
}
