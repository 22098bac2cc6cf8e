package service

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrorKind classifies failures of the AI recipe generation pipeline.
type ErrorKind string

const (
	ErrorKindNetwork        ErrorKind = "network"
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindTimeout        ErrorKind = "timeout"
	ErrorKindValidation     ErrorKind = "validation"
	ErrorKindResponseFormat ErrorKind = "response_format"
)

// Sentinel errors for each kind. An *AIError matches the sentinel of its kind with errors.Is.
var (
	ErrNetwork        = errors.New("ai: network error")
	ErrAuthentication = errors.New("ai: authentication error")
	ErrTimeout        = errors.New("ai: request timed out")
	ErrValidation     = errors.New("ai: validation error")
	ErrResponseFormat = errors.New("ai: response format error")
)

var kindSentinels = map[ErrorKind]error{
	ErrorKindNetwork:        ErrNetwork,
	ErrorKindAuthentication: ErrAuthentication,
	ErrorKindTimeout:        ErrTimeout,
	ErrorKindValidation:     ErrValidation,
	ErrorKindResponseFormat: ErrResponseFormat,
}

// maxDiagnosticBody caps how much of an upstream body is carried in an error.
const maxDiagnosticBody = 500

// AIError is returned by every fallible operation of the completion client.
type AIError struct {
	Kind       ErrorKind
	StatusCode int    // upstream HTTP status, 0 when no response was received
	Message    string
	Err        error // underlying cause, if any
}

func (e *AIError) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind, or an *AIError of the same kind.
func (e *AIError) Is(target error) bool {
	if sentinel, ok := kindSentinels[e.Kind]; ok && target == sentinel {
		return true
	}
	var other *AIError
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// ErrorKindOf returns the kind of an AI pipeline error, or "" if err is not one.
func ErrorKindOf(err error) ErrorKind {
	var aiErr *AIError
	if errors.As(err, &aiErr) {
		return aiErr.Kind
	}
	return ""
}

func newNetworkError(status int, message string, cause error) *AIError {
	return &AIError{Kind: ErrorKindNetwork, StatusCode: status, Message: message, Err: cause}
}

func newAuthenticationError(message string) *AIError {
	return &AIError{Kind: ErrorKindAuthentication, StatusCode: 401, Message: message}
}

func newTimeoutError(status int, cause error) *AIError {
	return &AIError{Kind: ErrorKindTimeout, StatusCode: status, Message: "request timed out", Err: cause}
}

func newValidationError(message string) *AIError {
	return &AIError{Kind: ErrorKindValidation, Message: message}
}

func newRequestError(message string) *AIError {
	return &AIError{Kind: ErrorKindValidation, Message: message, Err: ErrInvalidRequest}
}

func newResponseFormatError(message string, cause error) *AIError {
	return &AIError{Kind: ErrorKindResponseFormat, Message: message, Err: cause}
}

func truncateBody(body []byte) string {
	if len(body) <= maxDiagnosticBody {
		return string(body)
	}
	cut := maxDiagnosticBody
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
