package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies the phase or category that produced an error. Provider
// failures keep their original cause and gain the code of the phase that
// surfaced them, so callers can render provider-specific detail.
type Code string

const (
	// CodeValidation - invalid input rejected before touching the provider
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeGitOperation - a provider call failed outside a named phase
	CodeGitOperation Code = "GIT_OPERATION_FAILED"
	// CodeStageFailed - staging a group's paths failed
	CodeStageFailed Code = "STAGE_FAILED"
	// CodeCommitFailed - committing a staged group failed
	CodeCommitFailed Code = "COMMIT_FAILED"
	// CodeBatchCommit - unexpected failure inside a batch run
	CodeBatchCommit Code = "BATCH_COMMIT_ERROR"
	// CodeInboundAnalysis - the inbound analysis pipeline failed
	CodeInboundAnalysis Code = "INBOUND_ANALYSIS_ERROR"
	// CodeParse - malformed provider output (recovered where possible)
	CodeParse Code = "PARSE_ERROR"
	// CodeInternal - unexpected internal state
	CodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a stable code and optional context.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code so callers can test phases with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithContext attaches a key/value pair for diagnostics.
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// DetailedString renders the code, message, cause, and context as one block.
func (e *Error) DetailedString() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Code, e.Message))
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Caused by: %v\n", e.Cause))
	}
	if len(e.Context) > 0 {
		sb.WriteString("Context:\n")
		for k, v := range e.Context {
			sb.WriteString(fmt.Sprintf("  %s: %v\n", k, v))
		}
	}
	return sb.String()
}

// New creates an error with the given code.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with the given code and formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error, preserving the
// cause verbatim. Returns nil when err is nil.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code Code, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Validationf creates a validation error with formatting.
func Validationf(format string, args ...interface{}) *Error {
	return Newf(CodeValidation, format, args...)
}

// StageFailed wraps a staging failure.
func StageFailed(err error, message string) *Error {
	return Wrap(err, CodeStageFailed, message)
}

// CommitFailed wraps a commit failure.
func CommitFailed(err error, message string) *Error {
	return Wrap(err, CodeCommitFailed, message)
}

// InboundAnalysis creates an analysis error of this engine's own making
// (as opposed to a propagated provider failure).
func InboundAnalysis(message string) *Error {
	return New(CodeInboundAnalysis, message)
}

// GetCode returns the code of an error, walking the wrap chain; errors
// without a code report CodeInternal.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
