package utils

import (
	"errors"
	"fmt"
)

type ErrorType int

const (
	ErrorTypeEncoding ErrorType = iota
	ErrorTypeFileSystem
	ErrorTypeValidation
	ErrorTypeSearch
	ErrorTypeProject
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeEncoding:
		return "encoding"
	case ErrorTypeFileSystem:
		return "filesystem"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeSearch:
		return "search"
	case ErrorTypeProject:
		return "project"
	default:
		return "unknown"
	}
}

// EditorError is the error type surfaced to the user, either as a dialog in
// the GUI or on stderr from the CLI.
type EditorError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *EditorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *EditorError) Unwrap() error {
	return e.Cause
}

func NewEncodingError(message string, cause error) *EditorError {
	return &EditorError{
		Type:    ErrorTypeEncoding,
		Message: message,
		Cause:   cause,
	}
}

func NewFileSystemError(message string, cause error) *EditorError {
	return &EditorError{
		Type:    ErrorTypeFileSystem,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string, cause error) *EditorError {
	return &EditorError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

func NewSearchError(message string, cause error) *EditorError {
	return &EditorError{
		Type:    ErrorTypeSearch,
		Message: message,
		Cause:   cause,
	}
}

func NewProjectError(message string, cause error) *EditorError {
	return &EditorError{
		Type:    ErrorTypeProject,
		Message: message,
		Cause:   cause,
	}
}

func (e *EditorError) WithContext(key string, value interface{}) *EditorError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func isType(err error, t ErrorType) bool {
	var ee *EditorError
	if errors.As(err, &ee) {
		return ee.Type == t
	}
	return false
}

func IsEncodingError(err error) bool {
	return isType(err, ErrorTypeEncoding)
}

func IsFileSystemError(err error) bool {
	return isType(err, ErrorTypeFileSystem)
}

func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

func IsSearchError(err error) bool {
	return isType(err, ErrorTypeSearch)
}

func IsProjectError(err error) bool {
	return isType(err, ErrorTypeProject)
}

// Title is a short heading for dialogs.
func Title(err error) string {
	var ee *EditorError
	if !errors.As(err, &ee) {
		return "Error"
	}
	switch ee.Type {
	case ErrorTypeEncoding:
		return "Encoding Error"
	case ErrorTypeFileSystem:
		return "File Error"
	case ErrorTypeValidation:
		return "Invalid Input"
	case ErrorTypeSearch:
		return "Search Error"
	case ErrorTypeProject:
		return "Project Error"
	}
	return "Error"
}
