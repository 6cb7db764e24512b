package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a configuration decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ThemeNotFoundError reports a selected theme that is not registered. It is a
// recoverable condition: callers fall back to an empty theme and log it.
type ThemeNotFoundError struct {
	Name      string
	Available []string
}

// NewThemeNotFoundError constructs a ThemeNotFoundError.
func NewThemeNotFoundError(name string, available []string) error {
	return &ThemeNotFoundError{Name: name, Available: append([]string(nil), available...)}
}

func (e *ThemeNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Available) == 0 {
		return fmt.Sprintf("theme %q not found", e.Name)
	}
	return fmt.Sprintf("theme %q not found. Available themes: %s", e.Name, strings.Join(e.Available, ", "))
}

// ScanError wraps a failure to read or decode a single file during a workspace scan.
type ScanError struct {
	Path string
	Err  error
}

// NewScanError constructs a ScanError.
func NewScanError(path string, err error) error {
	return &ScanError{Path: path, Err: err}
}

func (e *ScanError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("scan error on %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("scan error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ScanError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
