package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/graphtool/internal/chart"
	"github.com/JonMunkholm/graphtool/internal/config"
)

func newChartCmd(a *app) *cobra.Command {
	var (
		configPath string
		htmlPath   string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "chart <file>",
		Short: "Build a chart from a file and a chart configuration",
		Long: `Build a chart from a file. The chart configuration is a yaml, json or toml
file with the same keys the web form sends, for example:

  graph_type: dual_line
  x_column: day
  y1_columns: [temp]
  y2_columns: [rain]

The figure is written as JSON, or as an interactive HTML page with --html.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readChartConfig(configPath)
			if err != nil {
				return err
			}

			svc, sum, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer svc.Close()

			fig, err := svc.BuildFigure(sum.DatasetID, cfg)
			if err != nil {
				return err
			}

			if htmlPath != "" {
				out, err := a.create(htmlPath)
				if err != nil {
					return err
				}
				if err := chart.RenderHTML(out, fig); err != nil {
					out.Close()
					return err
				}
				return out.Close()
			}

			out, err := a.create(output)
			if err != nil {
				return err
			}
			if err := json.NewEncoder(out).Encode(fig); err != nil {
				out.Close()
				return fmt.Errorf("write figure: %w", err)
			}
			return out.Close()
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "chart configuration file (yaml, json or toml)")
	cmd.Flags().StringVar(&htmlPath, "html", "", "write an HTML page to this path instead of figure JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "figure JSON path (default stdout)")
	_ = cmd.MarkFlagRequired("config")
	cmd.MarkFlagsMutuallyExclusive("html", "output")
	return cmd
}

// readChartConfig decodes a chart configuration file by extension. Formats
// other than json and yaml go through viper.
func readChartConfig(path string) (chart.Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return chart.DecodeJSON(data)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return chart.DecodeYAML(data)
	default:
		raw, err := config.ReadOptionFile(path)
		if err != nil {
			return nil, err
		}
		return chart.Decode(raw)
	}
}
