package ingest

import (
	"errors"
	"log/slog"

	"github.com/JonMunkholm/graphtool/internal/dataset"
)

// Options controls parser behavior.
type Options struct {
	// Strict rejects low-confidence text parses instead of returning them
	// flagged.
	Strict bool

	// MaxMemberSize caps the decompressed size of a zip member.
	// Defaults to DefaultMaxMemberSize.
	MaxMemberSize int64

	// Logger receives attempt diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Result is a parsed upload plus how it was read.
type Result struct {
	Dataset  *dataset.Dataset
	Format   Format
	Strategy string
	Encoding string

	// Member is the archive entry that was parsed, for zip uploads.
	Member string

	// LowConfidence is set when the chosen parse has a single column, or
	// when whitespace splitting won over a single-column parse.
	LowConfidence bool

	// Attempts lists every strategy tried, in order, including failures.
	Attempts []Attempt
}

// Parser converts file content to datasets. It holds no per-file state and
// is safe for concurrent use.
type Parser struct {
	opts Options
	log  *slog.Logger
}

// New creates a Parser.
func New(opts Options) *Parser {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Parser{opts: opts, log: log}
}

// Ingest detects the format from the file name and parses content.
func (p *Parser) Ingest(name string, content []byte) (*Result, error) {
	format, err := Detect(name)
	if err != nil {
		return nil, err
	}
	res, err := p.Parse(content, format)
	if err != nil {
		p.log.Debug("ingest failed", "file", name, "format", format, "error", err)
		return nil, err
	}
	p.log.Debug("ingest complete",
		"file", name,
		"format", format,
		"strategy", res.Strategy,
		"encoding", res.Encoding,
		"rows", res.Dataset.Len(),
		"columns", res.Dataset.Width(),
	)
	return res, nil
}

// Parse reads content according to format.
func (p *Parser) Parse(content []byte, format Format) (*Result, error) {
	if len(content) == 0 {
		return nil, &ParseError{Format: format, Err: ErrEmptyFile}
	}

	switch format {
	case FormatCSV:
		return p.parseText(content, format, []strategy{commaStrategy})
	case FormatTXT, FormatLog:
		return p.parseText(content, format, textChain)
	case FormatJSON:
		text, enc := decodeText(content)
		ds, err := parseJSON(text)
		attempt := Attempt{Strategy: "json", Err: err}
		if err != nil {
			return nil, &ParseError{Format: format, Attempts: []Attempt{attempt}, Err: err}
		}
		attempt.Columns = ds.Width()
		return &Result{Dataset: ds, Format: format, Strategy: "json", Encoding: enc, Attempts: []Attempt{attempt}}, nil
	case FormatZip:
		return p.parseArchive(content)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func (p *Parser) parseArchive(content []byte) (*Result, error) {
	limit := p.opts.MaxMemberSize
	if limit <= 0 {
		limit = DefaultMaxMemberSize
	}
	name, member, err := resolveArchive(content, limit)
	if err != nil {
		if errors.Is(err, ErrNoTabularMember) {
			return nil, err
		}
		return nil, &ParseError{Format: FormatZip, Err: err}
	}
	if len(member) == 0 {
		return nil, &ParseError{Format: FormatZip, Err: ErrEmptyFile}
	}

	res, err := p.parseText(member, FormatCSV, []strategy{commaStrategy})
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Format = FormatZip
		}
		return nil, err
	}
	res.Format = FormatZip
	res.Member = name
	return res, nil
}

// parseText runs the strategies in order. The first multi-column success
// wins. A single-column success is held as a fallback while later
// strategies are tried; it is returned, flagged low-confidence, only when
// nothing better parses. A permissive strategy that wins over such a
// fallback is flagged low-confidence too, since the file may really be a
// single column of text with spaces in it.
func (p *Parser) parseText(content []byte, format Format, chain []strategy) (*Result, error) {
	text, enc := decodeText(content)

	var (
		attempts []Attempt
		fallback *Result
		lastErr  error
	)
	for _, s := range chain {
		ds, err := s.parse(text)
		if err != nil {
			attempts = append(attempts, Attempt{Strategy: s.name, Err: err})
			lastErr = err
			p.log.Debug("parse strategy failed", "format", format, "strategy", s.name, "error", err)
			continue
		}
		attempts = append(attempts, Attempt{Strategy: s.name, Columns: ds.Width()})

		res := &Result{Dataset: ds, Format: format, Strategy: s.name, Encoding: enc}
		if ds.Width() > 1 || len(chain) == 1 {
			res.Attempts = attempts
			if s.permissive && fallback != nil {
				return p.lowConfidence(res, "accepted whitespace split over single-column parse")
			}
			return res, nil
		}
		if fallback == nil {
			fallback = res
		}
	}

	if fallback != nil {
		fallback.Attempts = attempts
		return p.lowConfidence(fallback, "accepted single-column parse")
	}

	return nil, &ParseError{Format: format, Attempts: attempts, Err: lastErr}
}

// lowConfidence flags res, or rejects it in strict mode.
func (p *Parser) lowConfidence(res *Result, msg string) (*Result, error) {
	if p.opts.Strict {
		return nil, &ParseError{Format: res.Format, Attempts: res.Attempts, Err: ErrLowConfidence}
	}
	res.LowConfidence = true
	p.log.Warn(msg,
		"format", res.Format,
		"strategy", res.Strategy,
		"columns", res.Dataset.Width(),
		"attempts", len(res.Attempts),
	)
	return res, nil
}

// Ingest parses a file with default options.
func Ingest(name string, content []byte) (*Result, error) {
	return New(Options{}).Ingest(name, content)
}
