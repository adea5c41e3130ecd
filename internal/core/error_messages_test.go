package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/graphtool/internal/chart"
	"github.com/JonMunkholm/graphtool/internal/ingest"
	"github.com/JonMunkholm/graphtool/internal/process"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"unsupported format", fmt.Errorf("upload: %w", ingest.ErrUnsupportedFormat), "FMT001"},
		{"parse error", &ingest.ParseError{Format: ingest.FormatTXT, Err: errors.New("tokenize: bad")}, "PARSE001"},
		{"empty file inside parse error", &ingest.ParseError{Format: ingest.FormatCSV, Err: ingest.ErrEmptyFile}, "FILE005"},
		{"zip without csv", ingest.ErrNoTabularMember, "ZIP001"},
		{"invalid chart configuration", fmt.Errorf("build: %w", chart.ErrInvalidConfiguration), "CFG001"},
		{"missing axis binding", chart.ErrMissingAxisBinding, "CFG002"},
		{"dataset not found", fmt.Errorf("lookup abc: %w", ErrDatasetNotFound), "DS001"},
		{"invalid processing request", process.ErrInvalidRequest, "PROC001"},
		{"too large sentinel", ErrFileTooLarge, "FILE001"},
		{"zip member too large", &ingest.ParseError{Format: ingest.FormatZip, Err: fmt.Errorf("%w: data.csv", ingest.ErrMemberTooLarge)}, "FILE001"},
		{"too large text", errors.New("http: request body too large"), "FILE001"},
		{"no file", ErrNoFile, "FILE004"},
		{"busy", ErrTooManyIngests, "UPL002"},
		{"cancelled", fmt.Errorf("read: %w", context.Canceled), "UPL004"},
		{"deadline", context.DeadlineExceeded, "UPL005"},
		{"rate limit text", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive text", errors.New("DATASET NOT FOUND"), "DS001"},
		{"unknown error returns default", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrDatasetNotFound)

	expected := "Dataset not found (Code: DS001). The session may have expired. Please upload the file again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", chart.ErrInvalidConfiguration, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("decode: %w", process.ErrInvalidRequest)
		userErr := NewUserError(techErr)

		if userErr.Error() != "Invalid processing request" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, process.ErrInvalidRequest) {
			t.Error("Unwrap() should expose the original error chain")
		}
	})
}
