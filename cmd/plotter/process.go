package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/graphtool/internal/process"
)

func newProcessCmd(a *app) *cobra.Command {
	var (
		kind    string
		summary string
		column  string
		value   string
		ops     []string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Summarize, filter, compute statistics on or clean a file",
		Example: `  plotter process data.csv --type summary --summary quality
  plotter process data.csv --type filter --column site --value north -o north.csv
  plotter process data.csv --type stats --ops mean,std
  plotter process data.csv --type clean --ops duplicates,empty,text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := map[string]any{
				"process_type":  kind,
				"summary_type":  summary,
				"filter_column": column,
				"filter_value":  value,
			}
			if cmd.Flags().Changed("ops") {
				switch process.Type(kind) {
				case process.Stats:
					raw["stats_ops"] = ops
				case process.Clean:
					raw["clean_ops"] = ops
				}
			}
			req, err := process.DecodeRequest(raw)
			if err != nil {
				return err
			}

			svc, sum, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer svc.Close()

			res, err := svc.Process(sum.DatasetID, req)
			if err != nil {
				return err
			}

			out, err := a.create(output)
			if err != nil {
				return err
			}
			if err := res.Data.WriteCSV(out); err != nil {
				out.Close()
				return fmt.Errorf("write result: %w", err)
			}
			if err := out.Close(); err != nil {
				return err
			}
			fmt.Fprintln(a.stderr, "✓", res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "process type: summary, filter, stats or clean")
	cmd.Flags().StringVar(&summary, "summary", "basic", "summary kind: basic, quality or columns")
	cmd.Flags().StringVar(&column, "column", "", "filter column")
	cmd.Flags().StringVar(&value, "value", "", "filter value")
	cmd.Flags().StringSliceVar(&ops, "ops", nil, "stats or clean operations, comma separated")
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV output path (default stdout)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
