package models

import "errors"

// FailureKind is the closed set of parse failure categories.
type FailureKind string

const (
	// FailureEmptyReport means the format was recognized but the report
	// contained no usable campaign data.
	FailureEmptyReport FailureKind = "empty_report"
	// FailureUnsupportedFormat means no detector signature matched.
	FailureUnsupportedFormat FailureKind = "unsupported_format"
	// FailureInvalidCampaign means a recognized single-campaign report
	// produced a record that failed validation.
	FailureInvalidCampaign FailureKind = "invalid_campaign"
)

// ParseError is a tagged per-input failure. It is propagated as a value;
// one input failing never aborts the rest of the batch.
type ParseError struct {
	Kind     FailureKind
	Message  string
	Filename string
}

func (e *ParseError) Error() string {
	if e.Filename != "" {
		return e.Filename + ": " + e.Message
	}
	return e.Message
}

// EmptyReport builds a FailureEmptyReport error.
func EmptyReport(message string) *ParseError {
	return &ParseError{Kind: FailureEmptyReport, Message: message}
}

// UnsupportedFormat builds a FailureUnsupportedFormat error.
func UnsupportedFormat(message string) *ParseError {
	return &ParseError{Kind: FailureUnsupportedFormat, Message: message}
}

// InvalidCampaign builds a FailureInvalidCampaign error.
func InvalidCampaign(message string) *ParseError {
	return &ParseError{Kind: FailureInvalidCampaign, Message: message}
}

// AsParseError unwraps err into a *ParseError if it is one.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
