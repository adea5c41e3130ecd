package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/graphtool/internal/config"
	"github.com/JonMunkholm/graphtool/internal/core"
	"github.com/JonMunkholm/graphtool/internal/ingest"
	"github.com/JonMunkholm/graphtool/internal/logging"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	settingsPath string
	strict       bool
	settings     *config.CLI

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "plotter",
		Short:         "Inspect, chart and process CSV, text, JSON and zip files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadSettings(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.settingsPath, "settings", "", "settings file (default is ~/.graphtool/config.yaml)")
	root.PersistentFlags().BoolVar(&a.strict, "strict", false, "reject text files without a confident delimiter")

	root.AddCommand(
		newColumnsCmd(a),
		newChartCmd(a),
		newProcessCmd(a),
	)
	return root
}

func (a *app) loadSettings(cmd *cobra.Command) error {
	s, err := config.LoadCLI(a.settingsPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("strict") {
		s.Strict = a.strict
	}
	a.settings = s
	return nil
}

// open ingests path into a fresh single-use service.
// The caller must Close the returned service.
func (a *app) open(ctx context.Context, path string) (*core.Service, *core.UploadSummary, error) {
	if _, err := ingest.Detect(path); err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.Size() > a.settings.MaxFileSize {
		return nil, nil, fmt.Errorf("%s: %w: %d bytes exceeds %d", path, core.ErrFileTooLarge, info.Size(), a.settings.MaxFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	svc := core.NewService(core.Options{
		Strict:      a.settings.Strict,
		MaxFileSize: a.settings.MaxFileSize,
		Logger: logging.New(a.stderr, a.settings.LogLevel, a.settings.LogFormat),
	})
	sum, err := svc.Ingest(ctx, filepath.Base(path), content)
	if err != nil {
		svc.Close()
		return nil, nil, err
	}
	switch {
	case sum.LowConfidence && len(sum.Columns) == 1:
		fmt.Fprintf(a.stderr, "⚠ Warning: %s parsed as a single column; check the delimiter\n", path)
	case sum.LowConfidence:
		fmt.Fprintf(a.stderr, "⚠ Warning: %s was split on whitespace only; check the columns\n", path)
	}
	return svc, sum, nil
}

// create opens path for writing, or returns stdout for "" and "-".
func (a *app) create(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{a.stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
