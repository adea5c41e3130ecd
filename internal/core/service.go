package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JonMunkholm/graphtool/internal/chart"
	"github.com/JonMunkholm/graphtool/internal/dataset"
	"github.com/JonMunkholm/graphtool/internal/ingest"
	"github.com/JonMunkholm/graphtool/internal/process"
)

var (
	// ErrFileTooLarge is returned when an upload exceeds the size ceiling.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoFile is returned when an upload request carries no file.
	ErrNoFile = errors.New("no file provided")
)

// Options configures a Service. Zero values take the package defaults.
type Options struct {
	Strict        bool
	MaxFileSize   int64
	MaxConcurrent int
	MaxWait       time.Duration
	SessionTTL    time.Duration
	SweepInterval time.Duration
	Logger        *slog.Logger
}

// Service ties ingestion, the session store and the chart and process
// packages together for the web and CLI front ends.
type Service struct {
	parser  *ingest.Parser
	store   *DatasetStore
	limiter *IngestLimiter
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a Service and starts its session sweeper.
// Call Close to stop it.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		parser:  ingest.New(ingest.Options{Strict: opts.Strict, MaxMemberSize: opts.MaxFileSize, Logger: logger}),
		store:   NewDatasetStore(opts.SessionTTL, opts.SweepInterval),
		limiter: NewIngestLimiter(opts.MaxConcurrent, opts.MaxWait),
		log:     logger,
		now:     time.Now,
	}
}

// UploadSummary describes a stored upload.
type UploadSummary struct {
	DatasetID      string               `json:"dataset_id" yaml:"dataset_id"`
	FileName       string               `json:"file_name" yaml:"file_name"`
	FileType       ingest.Format        `json:"file_type" yaml:"file_type"`
	Member         string               `json:"member,omitempty" yaml:"member,omitempty"`
	Encoding       string               `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Strategy       string               `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	LowConfidence  bool                 `json:"low_confidence" yaml:"low_confidence"`
	RowCount       int                  `json:"row_count" yaml:"row_count"`
	Columns        []string             `json:"columns" yaml:"columns"`
	NumericColumns []string             `json:"numeric_columns" yaml:"numeric_columns"`
	Descriptors    []dataset.Descriptor `json:"descriptors" yaml:"descriptors"`
}

// ColumnsInfo lists a dataset's columns for populating pickers.
type ColumnsInfo struct {
	Columns        []string             `json:"columns" yaml:"columns"`
	NumericColumns []string             `json:"numeric_columns" yaml:"numeric_columns"`
	Descriptors    []dataset.Descriptor `json:"descriptors" yaml:"descriptors"`
}

func summarize(u *Upload) *UploadSummary {
	res := u.Result
	ds := res.Dataset
	return &UploadSummary{
		DatasetID:      u.ID,
		FileName:       u.FileName,
		FileType:       res.Format,
		Member:         res.Member,
		Encoding:       res.Encoding,
		Strategy:       res.Strategy,
		LowConfidence:  res.LowConfidence,
		RowCount:       ds.Len(),
		Columns:        ds.Columns(),
		NumericColumns: ds.NumericColumns(),
		Descriptors:    ds.Descriptors(),
	}
}

// Ingest parses an uploaded file and stores the dataset for the session.
// Parsing waits for a limiter slot; ctx bounds only that wait.
func (s *Service) Ingest(ctx context.Context, fileName string, content []byte) (*UploadSummary, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	start := time.Now()
	res, err := s.parser.Ingest(fileName, content)
	if err != nil {
		s.log.Warn("ingest failed",
			"file", fileName,
			"size", len(content),
			"error", err,
		)
		return nil, err
	}

	u := s.store.Put(fileName, res)
	s.log.Info("dataset ingested",
		"dataset_id", u.ID,
		"file", fileName,
		"format", res.Format,
		"strategy", res.Strategy,
		"rows", res.Dataset.Len(),
		"columns", res.Dataset.Width(),
		"low_confidence", res.LowConfidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return summarize(u), nil
}

// Dataset returns the stored dataset for id.
func (s *Service) Dataset(id string) (*dataset.Dataset, error) {
	u, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return u.Result.Dataset, nil
}

// Summary returns the upload metadata for id.
func (s *Service) Summary(id string) (*UploadSummary, error) {
	u, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return summarize(u), nil
}

// Columns lists the columns of dataset id.
func (s *Service) Columns(id string) (*ColumnsInfo, error) {
	ds, err := s.Dataset(id)
	if err != nil {
		return nil, err
	}
	return &ColumnsInfo{
		Columns:        ds.Columns(),
		NumericColumns: ds.NumericColumns(),
		Descriptors:    ds.Descriptors(),
	}, nil
}

// BuildChart decodes raw and builds a figure from dataset id.
func (s *Service) BuildChart(id string, raw map[string]any) (*chart.Figure, error) {
	ds, err := s.Dataset(id)
	if err != nil {
		return nil, err
	}
	cfg, err := chart.Decode(raw)
	if err != nil {
		return nil, err
	}
	return s.build(id, ds, cfg)
}

// BuildFigure builds a figure from dataset id for a decoded configuration.
func (s *Service) BuildFigure(id string, cfg chart.Config) (*chart.Figure, error) {
	ds, err := s.Dataset(id)
	if err != nil {
		return nil, err
	}
	return s.build(id, ds, cfg)
}

func (s *Service) build(id string, ds *dataset.Dataset, cfg chart.Config) (*chart.Figure, error) {
	fig, err := chart.Build(ds, cfg)
	if err != nil {
		return nil, err
	}
	s.log.Debug("chart built",
		"dataset_id", id,
		"graph_type", cfg.GraphType(),
		"traces", len(fig.Data),
	)
	return fig, nil
}

// RenderChart builds a figure and writes it to w as an HTML page.
func (s *Service) RenderChart(w io.Writer, id string, raw map[string]any) error {
	fig, err := s.BuildChart(id, raw)
	if err != nil {
		return err
	}
	return chart.RenderHTML(w, fig)
}

// ProcessResult is a processed dataset with its download name.
type ProcessResult struct {
	*process.Result
	FileName string
}

// Process runs req against dataset id.
func (s *Service) Process(id string, req process.Request) (*ProcessResult, error) {
	ds, err := s.Dataset(id)
	if err != nil {
		return nil, err
	}
	res, err := process.Run(ds, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("dataset processed",
		"dataset_id", id,
		"process_type", req.Type,
		"rows_in", ds.Len(),
		"rows_out", res.Data.Len(),
	)
	return &ProcessResult{Result: res, FileName: process.Filename(s.now())}, nil
}

// Export writes dataset id to w as CSV and returns the download name.
func (s *Service) Export(w io.Writer, id string) (string, error) {
	ds, err := s.Dataset(id)
	if err != nil {
		return "", err
	}
	if err := ds.WriteCSV(w); err != nil {
		return "", fmt.Errorf("export %s: %w", id, err)
	}
	return id + ".csv", nil
}

// Drop removes dataset id from the session store.
func (s *Service) Drop(id string) error {
	return s.store.Delete(id)
}

// DatasetCount is the number of datasets held for live sessions.
func (s *Service) DatasetCount() int {
	return s.store.Len()
}

// LimiterStatus reports ingest concurrency.
func (s *Service) LimiterStatus() IngestLimiterStatus {
	return s.limiter.Status()
}

// WaitForIngests blocks until in-flight ingests finish or ctx ends.
func (s *Service) WaitForIngests(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// Close stops the session sweeper.
func (s *Service) Close() {
	s.store.Close()
}
