package core

// error_messages.go maps technical errors to user-facing messages with
// codes for support reference.
//
// # Error Codes Reference
//
// # Ingest Errors
//
//	FMT001 - Unsupported format: the file extension is not csv, txt, log, json or zip
//	         Action: Upload a .csv, .txt, .log, .json or .zip file
//	         Matches: ingest.ErrUnsupportedFormat, "unsupported file format"
//
//	PARSE001 - Unreadable file: no tokenizer could read the content
//	           Action: Check that the file is delimited text or JSON with a header row
//	           Matches: *ingest.ParseError
//
//	ZIP001 - No CSV in archive: the zip holds no .csv member
//	         Action: Add a .csv file to the archive
//	         Matches: ingest.ErrNoTabularMember
//
// # Chart Errors
//
//	CFG001 - Invalid chart configuration
//	         Action: Select a graph type and columns that exist in the dataset
//	         Matches: chart.ErrInvalidConfiguration
//
//	CFG002 - Missing map coordinates
//	         Action: Select both a latitude and a longitude column
//	         Matches: chart.ErrMissingAxisBinding
//
// # Dataset and Processing Errors
//
//	DS001 - Dataset not found: the id is unknown or the session expired
//	        Action: Upload the file again
//	        Matches: ErrDatasetNotFound, "dataset not found"
//
//	PROC001 - Invalid processing request
//	          Action: Choose a process type and its options
//	          Matches: process.ErrInvalidRequest
//
// # File Errors
//
//	FILE001 - File too large        Matches: ErrFileTooLarge, ingest.ErrMemberTooLarge, "file too large"
//	FILE004 - No file selected      Matches: ErrNoFile, "no file provided"
//	FILE005 - Empty file            Matches: ingest.ErrEmptyFile, "empty file"
//
// # Upload Errors
//
//	UPL002 - System busy            Matches: ErrTooManyIngests, "too many concurrent"
//	UPL004 - Request cancelled      Matches: context.Canceled
//	UPL005 - Request timeout        Matches: context.DeadlineExceeded
//
// # Rate Limiting
//
//	RATE001 - Too many requests     Matches: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the application logs for the
// original error when users report ERR000.
//
// # Matching
//
// Typed checks (errors.Is / errors.As) run first, in table order, so a
// ParseError caused by an empty file still reports FILE005. Substring
// patterns run second and catch errors that crossed a boundary as plain
// text. Both lists are first-match-wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/graphtool/internal/chart"
	"github.com/JonMunkholm/graphtool/internal/ingest"
	"github.com/JonMunkholm/graphtool/internal/process"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

var (
	msgUnsupported = UserMessage{
		Message: "Unsupported file format",
		Action:  "Upload a .csv, .txt, .log, .json or .zip file",
		Code:    "FMT001",
	}
	msgParse = UserMessage{
		Message: "The file could not be read as a table",
		Action:  "Check that the file is delimited text or JSON with a header row",
		Code:    "PARSE001",
	}
	msgNoMember = UserMessage{
		Message: "No CSV file found in the archive",
		Action:  "Add a .csv file to the archive",
		Code:    "ZIP001",
	}
	msgConfig = UserMessage{
		Message: "Invalid chart configuration",
		Action:  "Select a graph type and columns that exist in the dataset",
		Code:    "CFG001",
	}
	msgAxis = UserMessage{
		Message: "Map charts need latitude and longitude columns",
		Action:  "Select both a latitude and a longitude column",
		Code:    "CFG002",
	}
	msgNotFound = UserMessage{
		Message: "Dataset not found",
		Action:  "The session may have expired. Please upload the file again",
		Code:    "DS001",
	}
	msgProcess = UserMessage{
		Message: "Invalid processing request",
		Action:  "Choose a process type and fill in its options",
		Code:    "PROC001",
	}
	msgTooLarge = UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Split the file into smaller chunks",
		Code:    "FILE001",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please select a file to upload",
		Code:    "FILE004",
	}
	msgEmpty = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Please upload a file with a header row",
		Code:    "FILE005",
	}
	msgBusy = UserMessage{
		Message: "System is busy processing other uploads",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try uploading a smaller file or check your connection",
		Code:    "UPL005",
	}
	msgRate = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
)

// errorKinds are matched with errors.Is / errors.As before any pattern.
var errorKinds = []struct {
	match func(error) bool
	msg   UserMessage
}{
	{is(ingest.ErrEmptyFile), msgEmpty},
	{is(ingest.ErrUnsupportedFormat), msgUnsupported},
	{is(ingest.ErrNoTabularMember), msgNoMember},
	{is(ingest.ErrMemberTooLarge), msgTooLarge},
	{func(err error) bool {
		var pe *ingest.ParseError
		return errors.As(err, &pe)
	}, msgParse},
	{is(chart.ErrMissingAxisBinding), msgAxis},
	{is(chart.ErrInvalidConfiguration), msgConfig},
	{is(process.ErrInvalidRequest), msgProcess},
	{is(ErrDatasetNotFound), msgNotFound},
	{is(ErrFileTooLarge), msgTooLarge},
	{is(ErrNoFile), msgNoFile},
	{is(ErrTooManyIngests), msgBusy},
	{is(context.Canceled), msgCancelled},
	{is(context.DeadlineExceeded), msgTimeout},
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps lower-case substrings of error text to messages.
var errorPatterns = []errorPattern{
	{"unsupported file format", msgUnsupported},
	{"dataset not found", msgNotFound},
	{"file too large", msgTooLarge},
	{"request body too large", msgTooLarge},
	{"no file provided", msgNoFile},
	{"empty file", msgEmpty},
	{"too many concurrent", msgBusy},
	{"context canceled", msgCancelled},
	{"context deadline exceeded", msgTimeout},
	{"rate limit", msgRate},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if k.match(err) {
			return k.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
