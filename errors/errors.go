// Package errors defines custom error types for simpledesktop
package errors

import (
	"errors"
	"fmt"
)

// Application error types
var (
	ErrEmptyPage           = errors.New("catalog page contains no wallpapers")
	ErrEmptyCatalog        = errors.New("catalog reports no wallpapers")
	ErrDownloadFailed      = errors.New("failed to download wallpaper")
	ErrScriptExecution     = errors.New("failed to execute script")
	ErrUnsupportedPlatform = errors.New("platform not supported")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// Kind classifies a failure so callers can match on it.
type Kind int

const (
	KindUnknown Kind = iota
	KindDeserialization
	KindRequest
	KindAPI
	KindIO
	KindPlatform
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindDeserialization:
		return "DeserializationError"
	case KindRequest:
		return "RequestError"
	case KindAPI:
		return "ApiError"
	case KindIO:
		return "IoError"
	case KindPlatform:
		return "PlatformError"
	case KindConfiguration:
		return "ConfigurationError"
	default:
		return "UnknownError"
	}
}

// Error is an application error tagged with its Kind
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind and the operation that failed
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Deserialization wraps a JSON decoding failure
func Deserialization(op string, err error) error {
	return New(KindDeserialization, op, err)
}

// Request wraps a transport or HTTP status failure
func Request(op string, err error) error {
	return New(KindRequest, op, err)
}

// API wraps a well-formed but unusable catalog response
func API(op string, err error) error {
	return New(KindAPI, op, err)
}

// IO wraps a local filesystem failure
func IO(op string, err error) error {
	return New(KindIO, op, err)
}

// Platform wraps a failure of an operating system call
func Platform(op string, err error) error {
	return New(KindPlatform, op, err)
}

// Configuration wraps an invalid setting
func Configuration(op string, err error) error {
	return New(KindConfiguration, op, err)
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%s': %s", e.Field, e.Value, e.Message)
}

// APIError represents an unexpected HTTP status from a remote endpoint
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e APIError) Error() string {
	return fmt.Sprintf("API error at %s: status %d - %s", e.Endpoint, e.StatusCode, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, message string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewAPIError creates a new API error
func NewAPIError(endpoint string, statusCode int, message string) error {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}
