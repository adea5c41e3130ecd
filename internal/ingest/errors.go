package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when the file extension is missing or
	// not one of csv, txt, log, json, zip.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNoTabularMember is returned when an archive holds no .csv member.
	ErrNoTabularMember = errors.New("no csv member found in archive")

	// ErrLowConfidence is returned in strict mode when every strategy that
	// succeeded produced a single column, or only whitespace splitting found
	// more than one.
	ErrLowConfidence = errors.New("no confident delimiter found")

	// ErrMemberTooLarge is returned when the chosen archive member
	// decompresses past the configured ceiling.
	ErrMemberTooLarge = errors.New("archive member too large")

	// ErrEmptyFile is returned for zero-byte uploads.
	ErrEmptyFile = errors.New("empty file")
)

// Attempt records one parse strategy tried for a file.
type Attempt struct {
	Strategy string `json:"strategy"`
	Columns  int    `json:"columns,omitempty"`
	Err      error  `json:"-"`
}

// Failed reports whether the strategy could not parse the content.
func (a Attempt) Failed() bool { return a.Err != nil }

func (a Attempt) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s: %v", a.Strategy, a.Err)
	}
	return fmt.Sprintf("%s: %d column(s)", a.Strategy, a.Columns)
}

// ParseError reports content that could not be parsed under any applicable
// strategy. Err is the last failure; Attempts holds every strategy tried.
type ParseError struct {
	Format   Format
	Attempts []Attempt
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
