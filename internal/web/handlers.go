package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/graphtool/internal/chart"
	"github.com/JonMunkholm/graphtool/internal/core"
	"github.com/JonMunkholm/graphtool/internal/ingest"
	"github.com/JonMunkholm/graphtool/internal/logging"
	"github.com/JonMunkholm/graphtool/internal/process"
	"github.com/JonMunkholm/graphtool/internal/web/templates"
)

const (
	// maxFormBytes bounds chart and process request bodies.
	maxFormBytes = 1 << 20

	// multipartSlack covers the multipart envelope around the file.
	multipartSlack = 1 << 20

	// multipartMemory is how much of an upload is buffered before spilling
	// to a temp file.
	multipartMemory = 32 << 20
)

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Index(formatSize(s.cfg.Upload.MaxFileSize)).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render index", "error", err)
	}
}

// handleHealth reports liveness with the session and ingest counters.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":   "ok",
		"datasets": s.service.DatasetCount(),
		"ingest":   s.service.LimiterStatus(),
	})
}

// handleUploadQueueStatus returns the current state of the ingest limiter.
func (s *Server) handleUploadQueueStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.LimiterStatus())
}

// handleUpload parses a multipart upload and stores the dataset.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartSlack)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, fmt.Errorf("%w: %v", core.ErrFileTooLarge, err))
			return
		}
		respondError(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err))
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		respondError(w, r, fmt.Errorf("%w: %d bytes exceeds %d", core.ErrFileTooLarge, header.Size, maxSize))
		return
	}
	if _, err := ingest.Detect(header.Filename); err != nil {
		respondError(w, r, err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, fmt.Errorf("read upload: %w", err))
		return
	}

	summary, err := s.service.Ingest(r.Context(), header.Filename, content)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(),
		"dataset_id", summary.DatasetID,
		"file", header.Filename,
	).Info("upload stored", "rows", summary.RowCount)

	writeJSON(w, r, http.StatusCreated, summary)
}

// handleSummary returns the upload metadata of a stored dataset.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Summary(chi.URLParam(r, "datasetID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

// handleColumns lists the columns of a stored dataset.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	cols, err := s.service.Columns(chi.URLParam(r, "datasetID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cols)
}

// handleChart builds a chart and returns the figure JSON.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(w, r, chart.ErrInvalidConfiguration)
	if err != nil {
		respondError(w, r, err)
		return
	}

	fig, err := s.service.BuildChart(chi.URLParam(r, "datasetID"), raw)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fig)
}

// handleChartHTML builds a chart and returns it as an interactive page.
func (s *Server) handleChartHTML(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(w, r, chart.ErrInvalidConfiguration)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Rendered into a buffer so a failure can still change the status.
	var buf bytes.Buffer
	if err := s.service.RenderChart(&buf, chi.URLParam(r, "datasetID"), raw); err != nil {
		respondError(w, r, err)
		return
	}

	if s.cfg.Security.EnableCSP {
		w.Header().Set("Content-Security-Policy", chartCSP)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// handleProcess runs a processing request and returns the result as CSV.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(w, r, process.ErrInvalidRequest)
	if err != nil {
		respondError(w, r, err)
		return
	}

	req, err := process.DecodeRequest(raw)
	if err != nil {
		respondError(w, r, err)
		return
	}

	res, err := s.service.Process(chi.URLParam(r, "datasetID"), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := res.Data.WriteCSV(&buf); err != nil {
		respondError(w, r, fmt.Errorf("write processed csv: %w", err))
		return
	}

	w.Header().Set("X-Process-Message", res.Message)
	writeCSV(w, res.FileName, &buf)
}

// handleExport downloads a stored dataset as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := s.service.Export(&buf, chi.URLParam(r, "datasetID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeCSV(w, name, &buf)
}

// handleDrop removes a stored dataset.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Drop(chi.URLParam(r, "datasetID")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCSV(w http.ResponseWriter, name string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	body.WriteTo(w)
}

// decodeBody reads a JSON object or a form into a loosely typed option
// map. Form keys sent more than once become lists. An unreadable body is
// reported as kind.
func decodeBody(w http.ResponseWriter, r *http.Request, kind error) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		raw := map[string]any{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, badBody(err, kind)
		}
		return raw, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, badBody(err, kind)
	}
	raw := make(map[string]any, len(r.PostForm))
	for key, vals := range r.PostForm {
		if len(vals) == 1 {
			raw[key] = vals[0]
		} else {
			raw[key] = vals
		}
	}
	return raw, nil
}

func badBody(err, kind error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: %v", core.ErrFileTooLarge, err)
	}
	return fmt.Errorf("%w: request body: %v", kind, err)
}

// clientIP is the rate limiting key: the host part of r.RemoteAddr.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// formatSize renders a byte count with a binary unit.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.4g %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
