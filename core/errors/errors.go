// Package errors provides the error types shared by the lyxnorm packages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a markup construct was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownUnit indicates a length unit with no table entry
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrMalformedLength indicates a length that does not match the length grammar
	ErrMalformedLength = errors.New("malformed length")
)

// NotFoundError represents a missing markup construct with context
type NotFoundError struct {
	Resource string // Kind of construct (e.g., "ERT inset", "header")
	ID       string // Marker or identifier searched for
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// UnitError reports a unit token missing from the unit tables.
type UnitError struct {
	Unit     string // Unit token as written (without the percent marker)
	Length   string // Full length specification
	Relative bool   // Whether the unit appeared in percentage form
}

func (e *UnitError) Error() string {
	kind := "absolute"
	if e.Relative {
		kind = "relative"
	}
	if e.Length != "" {
		return fmt.Sprintf("unknown %s unit %q in length %q", kind, e.Unit, e.Length)
	}
	return fmt.Sprintf("unknown %s unit %q", kind, e.Unit)
}

func (e *UnitError) Unwrap() error {
	return ErrUnknownUnit
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error. A ParseError for the "length"
// format unwraps to ErrMalformedLength.
type ParseError struct {
	Format  string // Format being parsed (e.g., "length", "ERT inset", "request")
	Input   string // Offending input, if short enough to be useful
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("failed to parse %s %q: %s", e.Format, e.Input, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if e.Format == FormatLength {
		return ErrMalformedLength
	}
	return ErrInvalidInput
}

// FormatLength is the ParseError format used for length specifications.
const FormatLength = "length"

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewUnknownUnit creates a UnitError
func NewUnknownUnit(unit, length string, relative bool) *UnitError {
	return &UnitError{
		Unit:     unit,
		Length:   length,
		Relative: relative,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, input, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Input:   input,
		Message: message,
	}
}

// NewMalformedLength creates a ParseError for a length specification,
// keeping the grammar error as the cause message.
func NewMalformedLength(input string, cause error) *ParseError {
	msg := "does not match <sign><magnitude><unit>[%]"
	if cause != nil {
		msg = cause.Error()
	}
	return &ParseError{
		Format:  FormatLength,
		Input:   input,
		Message: msg,
		Err:     ErrMalformedLength,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
