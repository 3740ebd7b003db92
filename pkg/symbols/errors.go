package symbols

import (
	"errors"
	"fmt"
)

// FormatError is returned when a symbols file contains a line that is not
// of the form "[qualifier] symbol".
type FormatError struct {
	Path    string
	Line    int
	Content string
	// Qualifier is set when the line had two fields but an unsupported
	// qualifier.
	Qualifier string
}

func (e FormatError) Error() string {
	if e.Qualifier != "" {
		return e.Path + ": invalid qualifier: " + e.Qualifier
	}
	return e.Path + ": invalid format: " + e.Content
}

func IsFormatError(err error) bool {
	if err == nil {
		return false
	}
	var v FormatError
	return errors.As(err, &v)
}

// ToolInvocationError is returned when the symbol listing tool could not be
// found, could not be started or exited with a non-zero status.
type ToolInvocationError struct {
	Tool    string
	Library string
	Err     error
}

func (e ToolInvocationError) Error() string {
	return fmt.Sprintf("%s: failed to list symbols with %s: %v", e.Library, e.Tool, e.Err)
}

func (e ToolInvocationError) Unwrap() error { return e.Err }

func IsToolInvocationError(err error) bool {
	if err == nil {
		return false
	}
	var v ToolInvocationError
	return errors.As(err, &v)
}

// ToolOutputError is returned when the listing tool printed a line that does
// not have exactly three fields.
type ToolOutputError struct {
	Tool    string
	Library string
	Line    int
	Content string
}

func (e ToolOutputError) Error() string {
	return fmt.Sprintf("%s: unexpected output from %s on line %d: %q", e.Library, e.Tool, e.Line, e.Content)
}

func IsToolOutputError(err error) bool {
	if err == nil {
		return false
	}
	var v ToolOutputError
	return errors.As(err, &v)
}

// ComplianceViolation describes a single unknown or missing symbol. It is
// never returned by Audit; Report.Err aggregates them for callers that want
// an error value.
type ComplianceViolation struct {
	Library string
	Symbol  string
	Missing bool
}

func (e ComplianceViolation) Error() string {
	if e.Missing {
		return e.Library + ": missing symbol: " + e.Symbol
	}
	return e.Library + ": unknown symbol exported: " + e.Symbol
}
