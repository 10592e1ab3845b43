package errors

import (
	"fmt"
	"time"
)

// ToolUnavailableError reports that the configured binary or server could not
// be reached at all. Callers branch on it to suppress the lint attempt
// instead of surfacing a failure.
type ToolUnavailableError struct {
	Tool string
	Err  error
}

func (e *ToolUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("linter %q is not available: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("linter %q is not available", e.Tool)
}

func (e *ToolUnavailableError) Unwrap() error { return e.Err }

// NewToolUnavailableError creates a new ToolUnavailableError instance.
func NewToolUnavailableError(tool string, err error) error {
	return &ToolUnavailableError{Tool: tool, Err: err}
}

// InvocationError reports a failed tool run: a non-zero exit with stderr
// output, a non-200 response or a transport failure. Terminal for the lint
// pass; no partial alerts are applied.
type InvocationError struct {
	Mode       string // "command" or "server"
	Stderr     string
	StatusCode int
	Err        error
}

func (e *InvocationError) Error() string {
	switch {
	case e.Stderr != "":
		return fmt.Sprintf("%s invocation failed: %s", e.Mode, e.Stderr)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s invocation failed with status %d", e.Mode, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s invocation failed: %v", e.Mode, e.Err)
	}
	return fmt.Sprintf("%s invocation failed", e.Mode)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// NewInvocationError creates a new InvocationError instance.
func NewInvocationError(mode, stderr string, statusCode int, err error) error {
	return &InvocationError{Mode: mode, Stderr: stderr, StatusCode: statusCode, Err: err}
}

// TimeoutError reports that the external tool exceeded the configured deadline.
type TimeoutError struct {
	Mode    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s invocation timed out after %s", e.Mode, e.Timeout)
}

// NewTimeoutError creates a new TimeoutError instance.
func NewTimeoutError(mode string, timeout time.Duration) error {
	return &TimeoutError{Mode: mode, Timeout: timeout}
}

// ParseError reports malformed JSON from the tool. Treated like an
// InvocationError for user visibility.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse linter output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError creates a new ParseError instance.
func NewParseError(err error) error {
	return &ParseError{Err: err}
}

// StaleOffsetError reports an alert whose line no longer exists in the
// document. The alert is dropped; the rest of the batch survives.
type StaleOffsetError struct {
	Line      int
	LineCount int
}

func (e *StaleOffsetError) Error() string {
	return fmt.Sprintf("alert line %d is outside the document (%d lines)", e.Line, e.LineCount)
}

// NewStaleOffsetError creates a new StaleOffsetError instance.
func NewStaleOffsetError(line, lineCount int) error {
	return &StaleOffsetError{Line: line, LineCount: lineCount}
}

// FixError reports a fix that could not be applied: a suggestion index out of
// range or a region that no longer exists. Callers treat it as a no-op.
type FixError struct {
	Reason string
	Err    error
}

func (e *FixError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fix not applied: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("fix not applied: %s", e.Reason)
}

func (e *FixError) Unwrap() error { return e.Err }

// NewFixError creates a new FixError instance.
func NewFixError(reason string, err error) error {
	return &FixError{Reason: reason, Err: err}
}
